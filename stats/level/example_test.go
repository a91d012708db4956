package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-grainverb/stats/level"
)

func ExampleMeter() {
	m := level.NewMeter()
	m.Update([]float64{0.5, -0.5})
	m.Update([]float64{0.5, -0.5})

	s := m.Result()
	fmt.Printf("len=%d peak=%.1f rms=%.1f crest=%.1f\n", s.Length, s.Peak, s.RMS, s.CrestFactor)
	// Output:
	// len=4 peak=0.5 rms=0.5 crest=1.0
}
