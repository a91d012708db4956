package control_test

import (
	"fmt"

	"github.com/cwbudde/algo-grainverb/dsp/control"
)

func ExampleMapper_Params() {
	p := control.DefaultMapper().Params(control.Readings{
		Volume:    0.5,
		GrainSize: 0,
		Feedback:  0.25,
		GainReps:  1,
		Freeze:    0.75,
		Pitch:     0.75,
	})

	fmt.Printf("amp=%.2f size=%d fb=%.2f reps=%d freeze=%.0f pitch=%.0f\n",
		p.Amplitude, p.GrainSize, p.Feedback, p.GainReps, p.FreezeDial, p.Pitch)
	// Output:
	// amp=0.50 size=500 fb=0.75 reps=120 freeze=75 pitch=2
}
