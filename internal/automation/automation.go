// Package automation drives control readings from a Lua script.
//
// A script defines a global function controls(t) that receives the render
// time in seconds and returns a table with any of the fields volume,
// grain_size, feedback, gain_reps, freeze and pitch, each in [0, 1].
// Missing fields keep the base reading given at load time.
//
//	function controls(t)
//	  return { freeze = t > 2 and 1 or 0, pitch = 0.5 + 0.25 * math.sin(t) }
//	end
package automation

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-grainverb/dsp/control"
)

// ErrNoControls is returned when a script does not define controls(t).
var ErrNoControls = errors.New("automation: script does not define controls(t)")

// Script evaluates a control script. It is not safe for concurrent use.
type Script struct {
	state *lua.LState
	fn    lua.LValue
	base  control.Readings
}

// Load runs the script file at path and looks up controls(t).
func Load(path string, base control.Readings) (*Script, error) {
	return load(base, func(l *lua.LState) error { return l.DoFile(path) })
}

// LoadString is Load for an in-memory script.
func LoadString(src string, base control.Readings) (*Script, error) {
	return load(base, func(l *lua.LState) error { return l.DoString(src) })
}

func load(base control.Readings, run func(*lua.LState) error) (*Script, error) {
	state := lua.NewState()

	if err := run(state); err != nil {
		state.Close()
		return nil, fmt.Errorf("automation: %w", err)
	}

	fn := state.GetGlobal("controls")
	if fn.Type() != lua.LTFunction {
		state.Close()
		return nil, ErrNoControls
	}

	return &Script{state: state, fn: fn, base: base}, nil
}

// Readings calls controls(t) and merges the result over the base readings.
func (s *Script) Readings(t float64) (control.Readings, error) {
	err := s.state.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true}, lua.LNumber(t))
	if err != nil {
		return control.Readings{}, fmt.Errorf("automation: controls(%g): %w", t, err)
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return control.Readings{}, fmt.Errorf("automation: controls(%g) returned %s, want table", t, ret.Type())
	}

	r := s.base
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"volume", &r.Volume},
		{"grain_size", &r.GrainSize},
		{"feedback", &r.Feedback},
		{"gain_reps", &r.GainReps},
		{"freeze", &r.Freeze},
		{"pitch", &r.Pitch},
	} {
		v := tbl.RawGetString(f.name)
		if v == lua.LNil {
			continue
		}

		n, ok := v.(lua.LNumber)
		if !ok {
			return control.Readings{}, fmt.Errorf("automation: field %s is %s, want number", f.name, v.Type())
		}

		*f.dst = float64(n)
	}

	return r, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}
