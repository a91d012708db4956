package granular

// FreezeController latches a freeze request at grain boundaries.
//
// The request follows the freeze dial at control rate. The frozen state
// the recorder observes only changes when Boundary is called.
type FreezeController struct {
	requested bool
	frozen    bool
}

// SetDial updates the request from a dial on the 0..100 scale.
func (f *FreezeController) SetDial(dial float64) {
	f.requested = dial > FreezeThreshold
}

// Boundary latches the pending request and reports whether the frozen
// state changed.
func (f *FreezeController) Boundary() bool {
	changed := f.frozen != f.requested
	f.frozen = f.requested

	return changed
}

// Frozen reports the latched state.
func (f *FreezeController) Frozen() bool { return f.frozen }

// Requested reports the pending request.
func (f *FreezeController) Requested() bool { return f.requested }

// Reset returns to the live state without touching the request.
func (f *FreezeController) Reset() { f.frozen = false }
