package synth

import "github.com/cwbudde/algo-approx"

// NoteToFreq converts a MIDI note number to its equal-tempered frequency in Hz (A4 = 69 = 440 Hz).
func NoteToFreq(note int) float64 {
	const a4Freq = 440.0
	const a4Note = 69
	const ln2 = 0.69314718055994530942
	exponent := float32(note-a4Note) / 12.0
	return a4Freq * float64(approx.FastExp(exponent*ln2))
}

// NotesToFreqs converts a sequence of MIDI notes; negative notes become rests (0 Hz).
func NotesToFreqs(notes []int) []float64 {
	out := make([]float64, len(notes))
	for i, n := range notes {
		if n < 0 {
			continue
		}
		out[i] = NoteToFreq(n)
	}
	return out
}
