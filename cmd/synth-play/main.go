package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-synth/analysis"
	"github.com/cwbudde/algo-synth/output"
	"github.com/cwbudde/algo-synth/patch"
	"github.com/go-audio/audio"
)

func main() {
	kind := flag.String("kind", "sine", "Demo patch: sine, melody, filter, karplus or polyblep")
	patchPath := flag.String("patch", "", "Patch JSON file path (optional, overrides -kind defaults)")
	sampleRate := flag.Int("sample-rate", 48000, "Output sample rate in Hz")
	channels := flag.Int("channels", 2, "Output channel count (the mono signal is replicated)")
	format := flag.String("format", "f32", "Device sample format: f32, s16 or u8")
	headless := flag.Bool("headless", false, "Render offline instead of opening an audio device")
	analyze := flag.Bool("analyze", false, "Print a JSON analysis report of the rendered patch")
	flag.Parse()

	params, err := loadParams(*kind, *patchPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading patch: %v\n", err)
		os.Exit(1)
	}

	sample, err := output.ParseSampleFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	outFormat, err := output.NewFormat(*sampleRate, *channels, sample)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pl, err := patch.Build(params, *sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building patch: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Patch: %s\n", params.Kind)
	fmt.Printf("Sample rate: %d\n", outFormat.SampleRate)
	fmt.Printf("Channels: %d (%s)\n", outFormat.NumChannels, outFormat.Sample)
	for _, d := range pl.Details {
		fmt.Printf("%s: %s\n", d.Name, d.Value)
	}
	seconds := float64(pl.Frames) / float64(*sampleRate)

	if *headless {
		buf := mustRender(pl, outFormat)
		fmt.Printf("Rendered %d frames (%.2fs)\n", buf.NumFrames(), seconds)
		if *analyze {
			mono, err := output.Channel(buf, 0)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			printReport(mono, *sampleRate)
		}
		return
	}

	if err := play(pl, outFormat, seconds); err != nil {
		fmt.Fprintf(os.Stderr, "Error playing: %v\n", err)
		os.Exit(1)
	}

	if *analyze {
		// Playback consumed the signal tree; analyze a fresh one.
		fresh, err := patch.Build(params, *sampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building patch: %v\n", err)
			os.Exit(1)
		}
		mono, err := output.Channel(mustRender(fresh, outFormat), 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printReport(mono, *sampleRate)
	}
}

func loadParams(kind, path string) (*patch.Params, error) {
	k, err := patch.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return patch.NewDefault(k)
	}
	return patch.LoadJSON(path, k)
}

func play(pl *patch.Pipeline, format output.Format, seconds float64) error {
	dev, err := output.Open(format)
	if err != nil {
		return err
	}
	defer dev.Close()

	done := output.NewCompletion()
	stream, err := output.NewStream(pl.Signal, format, done)
	if err != nil {
		return err
	}

	fmt.Printf("Playing %.2fs...\n", seconds)
	if err := dev.Play(stream); err != nil {
		return err
	}

	// Allow for device latency on top of the signal duration.
	timeout := time.Duration(seconds*float64(time.Second)) + 5*time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := done.Wait(ctx); err != nil {
		dev.Pause()
		if derr := dev.Err(); derr != nil {
			return derr
		}
		return fmt.Errorf("waiting for end of signal after %d frames: %w", stream.Frames(), err)
	}
	dev.Pause()
	fmt.Printf("Done (%d frames)\n", stream.Frames())
	return nil
}

func mustRender(pl *patch.Pipeline, format output.Format) *audio.Float32Buffer {
	buf, err := output.Render(pl.Signal, format, pl.Frames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	return buf
}

func printReport(x []float64, sampleRate int) {
	report, err := analysis.Analyze(x, sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing: %v\n", err)
		os.Exit(1)
	}
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
