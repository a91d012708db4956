// Command grainverb renders an audio file through the granular reverb.
//
// Usage:
//
//	grainverb [flags] input.wav output.wav
//
// The input is downmixed to mono and rendered offline through a
// granular.Engine. The six knobs take raw readings in [0, 1] and are mapped
// to engine parameters the same way a hardware front panel would be. A Lua
// script defining controls(t) may automate them instead.
//
// Examples:
//
//	grainverb -grain 0.2 -feedback 0.4 -reps 0.5 in.wav out.wav
//	grainverb -pitch 0.75 -tail 4 in.aiff out.aiff
//	grainverb -script sweep.lua -chart env.html in.wav out.wav
//	grainverb -play in.wav out.wav
//	grainverb -block 256 -controls 4 -track 440 in.wav out.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-grainverb/dsp/control"
	"github.com/cwbudde/algo-grainverb/dsp/core"
	"github.com/cwbudde/algo-grainverb/dsp/dither"
	"github.com/cwbudde/algo-grainverb/dsp/granular"
	"github.com/cwbudde/algo-grainverb/internal/audiofile"
	"github.com/cwbudde/algo-grainverb/internal/automation"
	"github.com/cwbudde/algo-grainverb/internal/playback"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const minRequiredArgs = 2

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var knobs control.Readings

	flag.Float64Var(&knobs.Volume, "volume", 0.5, "Output volume knob [0,1]")
	flag.Float64Var(&knobs.GrainSize, "grain", 0.1, "Grain size knob [0,1]")
	flag.Float64Var(&knobs.Feedback, "feedback", 0.3, "Feedback knob [0,1]")
	flag.Float64Var(&knobs.GainReps, "reps", 0.3, "Repetitions per grain knob [0,1]")
	flag.Float64Var(&knobs.Freeze, "freeze", 0, "Freeze knob [0,1], frozen above 0.5")
	flag.Float64Var(&knobs.Pitch, "pitch", 0.5, "Pitch knob [0,1], 0.5 is unshifted")

	def := core.DefaultProcessorConfig()
	stride := flag.Int("stride", def.ControlStride, "Audio frames per control reading")
	blockSize := flag.Int("block", def.BlockSize, "Frames per processing block")
	perBlock := flag.Int("controls", 0, "Control readings per block (overrides -stride when > 0)")
	seed := flag.Int64("seed", granular.DefaultSeed, "Random table seed")
	tone := flag.Float64("tone", 0, "Wet low-pass cutoff in Hz (0 disables)")
	tail := flag.Float64("tail", 0, "Seconds of silence appended to let the canvas ring out")
	bits := flag.Int("bits", 0, "Output bit depth (0 keeps the input depth)")
	useDither := flag.Bool("dither", false, "Apply noise-shaped TPDF dither when writing")
	script := flag.String("script", "", "Lua script defining controls(t)")
	chartPath := flag.String("chart", "", "Write an HTML level envelope chart to this path")
	trackHz := flag.Float64("track", 0, "Report input and output level of a tone at this frequency in Hz")
	play := flag.Bool("play", false, "Play the rendered output")
	quiet := flag.Bool("q", false, "Suppress progress and report")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Renders an audio file through the granular reverb.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		flag.Usage()
		return errors.New("insufficient arguments")
	}

	inputPath, outputPath := args[0], args[1]

	if err := validateKnobs(knobs); err != nil {
		return err
	}

	clip, err := audiofile.Read(inputPath)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("  %d Hz, %d bit, %d channel(s), %.2f s", clip.SampleRate, clip.BitDepth, clip.Channels, clip.Duration())
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(clip.SampleRate)),
		core.WithBlockSize(*blockSize),
		core.WithControlStride(*stride),
	)

	if *trackHz < 0 || *trackHz > cfg.SampleRate/2 {
		return fmt.Errorf("-track must be in [0, %g] Hz, got %g", cfg.SampleRate/2, *trackHz)
	}

	engine, err := granular.New(
		granular.WithSampleRate(cfg.SampleRate),
		granular.WithSeed(*seed),
		granular.WithToneFilter(*tone),
	)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	var src controlSource = fixedControls(knobs)

	if *script != "" {
		s, err := automation.Load(*script, knobs)
		if err != nil {
			return err
		}
		defer s.Close()

		src = s
	}

	input := padTail(clip.Samples, int(*tail*cfg.SampleRate))

	var (
		bar      *progressbar.ProgressBar
		progress func(int)
	)

	if !*quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = newProgressBar(len(input))
		progress = func(done int) { _ = bar.Set(done) }
	}

	res, err := render(engine, input, renderSettings{
		SampleRate: cfg.SampleRate,
		BlockSize:  cfg.BlockSize,
		Scheduler:  newScheduler(cfg, *perBlock),
		Mapper:     control.DefaultMapper(),
		Source:     src,
		Progress:   progress,
	})

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	if err != nil {
		return err
	}

	if res.Fault != nil {
		log.Printf("Render stopped: %v", res.Fault)
	}

	depth := clip.BitDepth
	if *bits > 0 {
		depth = *bits
	}

	var writeOpts []audiofile.WriteOption
	if *useDither {
		writeOpts = append(writeOpts, audiofile.WithDither(uint64(*seed), dither.WithNoiseShaping(true)))
	}

	if err := audiofile.Write(outputPath, res.Left, res.Right, clip.SampleRate, depth, writeOpts...); err != nil {
		return err
	}

	if *verbose {
		log.Printf("Output: %s (%d frames)", outputPath, len(res.Left))
	}

	if !*quiet {
		if err := writeReport(os.Stdout, input, res, cfg.SampleRate, *trackHz); err != nil {
			return err
		}
	}

	if *chartPath != "" {
		if err := writeChart(*chartPath, input, res, cfg.SampleRate); err != nil {
			return err
		}
	}

	if *play {
		player, err := playback.New(clip.SampleRate)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := player.Play(ctx, res.Left, res.Right); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	if res.Fault != nil {
		return res.Fault
	}

	return nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("rendering..."),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
