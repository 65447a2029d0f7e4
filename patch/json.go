package patch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-synth/synth"
)

// File is the JSON schema for patch files. Absent fields keep the defaults
// of the selected kind.
type File struct {
	Kind          *string     `json:"kind"`
	AttackFrames  *int        `json:"attack_frames"`
	ReleaseFrames *int        `json:"release_frames"`
	TailFrames    *int        `json:"tail_frames"`
	StepSeconds   *float64    `json:"step_seconds"`
	Steps         []bool      `json:"steps"`
	Freq          *float64    `json:"freq"`
	Tracks        [][]float64 `json:"tracks"`
	// TracksMIDI lists voices as MIDI note numbers; negative numbers are rests.
	TracksMIDI [][]int  `json:"tracks_midi"`
	Cutoff     *float64 `json:"cutoff"`
	Q          *float64 `json:"q"`
	Filter     string   `json:"filter"`
	Damping    *float64 `json:"damping"`
	Decay      *float64 `json:"decay"`
	Seed       *int64   `json:"seed"`
}

// LoadJSON loads a patch file and applies it on top of the defaults of its
// kind. fallback is used when the file does not name a kind.
func LoadJSON(path string, fallback Kind) (*Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	kind := fallback
	if f.Kind != nil {
		kind, err = ParseKind(strings.TrimSpace(*f.Kind))
		if err != nil {
			return nil, err
		}
	}
	p, err := NewDefault(kind)
	if err != nil {
		return nil, err
	}
	if err := ApplyFile(p, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ApplyFile applies a parsed patch file onto an existing params object.
// The kind of dst is never changed.
func ApplyFile(dst *Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.AttackFrames != nil {
		if *f.AttackFrames <= 0 {
			return fmt.Errorf("attack_frames must be > 0")
		}
		dst.AttackFrames = *f.AttackFrames
	}
	if f.ReleaseFrames != nil {
		if *f.ReleaseFrames <= 0 {
			return fmt.Errorf("release_frames must be > 0")
		}
		dst.ReleaseFrames = *f.ReleaseFrames
	}
	if f.TailFrames != nil {
		if *f.TailFrames < 0 {
			return fmt.Errorf("tail_frames must be >= 0")
		}
		dst.TailFrames = *f.TailFrames
	}
	if f.StepSeconds != nil {
		if *f.StepSeconds <= 0 {
			return fmt.Errorf("step_seconds must be > 0")
		}
		dst.StepSeconds = *f.StepSeconds
	}
	if f.Steps != nil {
		dst.Steps = append([]bool(nil), f.Steps...)
	}
	if f.Freq != nil {
		if *f.Freq <= 0 {
			return fmt.Errorf("freq must be > 0")
		}
		dst.Freq = *f.Freq
	}

	if f.Tracks != nil && f.TracksMIDI != nil {
		return fmt.Errorf("tracks and tracks_midi are mutually exclusive")
	}
	if f.Tracks != nil {
		dst.Tracks = make([][]float64, len(f.Tracks))
		for i, tr := range f.Tracks {
			dst.Tracks[i] = append([]float64(nil), tr...)
		}
	}
	if f.TracksMIDI != nil {
		dst.Tracks = make([][]float64, len(f.TracksMIDI))
		for i, notes := range f.TracksMIDI {
			for j, n := range notes {
				if n > 127 {
					return fmt.Errorf("tracks_midi[%d][%d] = %d (expected 0..127 or a negative rest)", i, j, n)
				}
			}
			dst.Tracks[i] = synth.NotesToFreqs(notes)
		}
	}

	if f.Cutoff != nil {
		if *f.Cutoff <= 0 {
			return fmt.Errorf("cutoff must be > 0")
		}
		dst.Cutoff = *f.Cutoff
	}
	if f.Q != nil {
		if *f.Q <= 0 {
			return fmt.Errorf("q must be > 0")
		}
		dst.Q = *f.Q
	}
	if f.Filter != "" {
		layout := FilterLayout(strings.ToLower(strings.TrimSpace(f.Filter)))
		if layout != FilterShift && layout != FilterRing {
			return fmt.Errorf("filter must be %q or %q, got %q", FilterShift, FilterRing, f.Filter)
		}
		dst.Layout = layout
	}
	if f.Damping != nil {
		if *f.Damping < 0 || *f.Damping >= 1 {
			return fmt.Errorf("damping must be in [0,1)")
		}
		dst.Damping = *f.Damping
	}
	if f.Decay != nil {
		if *f.Decay <= 0 {
			return fmt.Errorf("decay must be > 0")
		}
		dst.Decay = *f.Decay
	}
	if f.Seed != nil {
		dst.Seed = *f.Seed
	}
	return dst.Validate()
}
