package granular

import (
	"fmt"
	"math/rand"
)

// RandomTables holds per-slot, per-repetition scatter delays and weights
// for both channels. Entries are stored row-major: [slot*maxReps + rep].
type RandomTables struct {
	numGrains  int
	maxReps    int
	canvasSize int

	delaysL, delaysR []int
	ampsL, ampsR     []float64
}

// NewRandomTables generates tables for numGrains slots of maxReps
// repetitions, with delays in [0, canvasSize) and weights in [0, 1).
//
// Delays are drawn as rand % canvasSize and weights as
// (rand % canvasSize) / canvasSize, in the order left delays, right delays,
// left weights, right weights. The same seed always yields the same tables.
func NewRandomTables(numGrains, maxReps, canvasSize int, seed int64) (*RandomTables, error) {
	if numGrains <= 0 || maxReps <= 0 || canvasSize <= 0 {
		return nil, fmt.Errorf("granular: table dimensions must be > 0: grains=%d reps=%d canvas=%d",
			numGrains, maxReps, canvasSize)
	}

	n := numGrains * maxReps
	t := &RandomTables{
		numGrains:  numGrains,
		maxReps:    maxReps,
		canvasSize: canvasSize,
		delaysL:    make([]int, n),
		delaysR:    make([]int, n),
		ampsL:      make([]float64, n),
		ampsR:      make([]float64, n),
	}

	rng := rand.New(rand.NewSource(seed))

	for _, d := range [][]int{t.delaysL, t.delaysR} {
		for i := range d {
			d[i] = rng.Intn(canvasSize)
		}
	}

	for _, a := range [][]float64{t.ampsL, t.ampsR} {
		for i := range a {
			a[i] = float64(rng.Intn(canvasSize)) / float64(canvasSize)
		}
	}

	return t, nil
}

// NumGrains returns the number of grain slots covered.
func (t *RandomTables) NumGrains() int { return t.numGrains }

// MaxReps returns the number of repetitions per slot.
func (t *RandomTables) MaxReps() int { return t.maxReps }

// CanvasSize returns the exclusive upper bound of every delay.
func (t *RandomTables) CanvasSize() int { return t.canvasSize }

// Delays returns the left and right delay rows of a slot. The rows alias
// the table and must not be modified.
func (t *RandomTables) Delays(slot int) (left, right []int) {
	lo, hi := t.row(slot)
	return t.delaysL[lo:hi], t.delaysR[lo:hi]
}

// Amps returns the left and right weight rows of a slot. The rows alias
// the table and must not be modified.
func (t *RandomTables) Amps(slot int) (left, right []float64) {
	lo, hi := t.row(slot)
	return t.ampsL[lo:hi], t.ampsR[lo:hi]
}

// Set overwrites a single entry.
func (t *RandomTables) Set(slot, rep, delayL, delayR int, ampL, ampR float64) error {
	if slot < 0 || slot >= t.numGrains || rep < 0 || rep >= t.maxReps {
		return fmt.Errorf("granular: table index out of range: slot=%d rep=%d", slot, rep)
	}

	if delayL < 0 || delayL >= t.canvasSize || delayR < 0 || delayR >= t.canvasSize {
		return fmt.Errorf("granular: delay out of range [0, %d): %d, %d", t.canvasSize, delayL, delayR)
	}

	i := slot*t.maxReps + rep
	t.delaysL[i], t.delaysR[i] = delayL, delayR
	t.ampsL[i], t.ampsR[i] = ampL, ampR

	return nil
}

func (t *RandomTables) row(slot int) (lo, hi int) {
	lo = slot * t.maxReps
	return lo, lo + t.maxReps
}
