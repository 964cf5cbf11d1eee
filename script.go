package gameloop

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents one action in an input script.
type scriptStep struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptedInput replays a JSON input script one tick at a time, for headless
// runs and tests. Supported actions:
//
//	{"action": "hold", "keys": ["up", "left"], "frames": 10}
//	{"action": "cursor", "x": 100, "y": 50}
//	{"action": "wheel", "x": 0, "y": -1}
//	{"action": "wait", "frames": 30}
//
// Step advances the script and must be called once per tick before Update.
type ScriptedInput struct {
	steps  []scriptStep
	cursor int
	wait   int

	held  [keyCount]bool
	mouse Vec2
	wheel Vec2
	done  bool
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(jsonData []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("gameloop: parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("gameloop: parse input script: no steps")
	}
	for i, st := range script.Steps {
		for _, k := range st.Keys {
			if _, ok := parseKey(k); !ok {
				return nil, fmt.Errorf("gameloop: parse input script: step %d: unknown key %q", i, k)
			}
		}
	}
	return &ScriptedInput{steps: script.Steps}, nil
}

func parseKey(name string) (Key, bool) {
	for k := Key(0); k < keyCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Done reports whether every step has been executed.
func (r *ScriptedInput) Done() bool {
	return r.done
}

// Step advances the script by one tick.
func (r *ScriptedInput) Step() {
	r.wheel = Vec2{}
	if r.wait > 0 {
		r.wait--
		return
	}
	r.held = [keyCount]bool{}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "hold":
		for _, name := range st.Keys {
			k, _ := parseKey(name)
			r.held[k] = true
		}
		if st.Frames > 1 {
			r.wait = st.Frames - 1
		}
	case "cursor":
		r.mouse = Vec2{st.X, st.Y}
	case "wheel":
		r.wheel = Vec2{st.X, st.Y}
	case "wait":
		if st.Frames > 1 {
			r.wait = st.Frames - 1
		}
	}
}

// KeyDown reports whether k is held by the current step.
func (r *ScriptedInput) KeyDown(k Key) bool {
	return k < keyCount && r.held[k]
}

// Cursor returns the last scripted cursor position.
func (r *ScriptedInput) Cursor() Vec2 {
	return r.mouse
}

// Wheel returns the wheel delta scripted for this tick.
func (r *ScriptedInput) Wheel() Vec2 {
	return r.wheel
}
