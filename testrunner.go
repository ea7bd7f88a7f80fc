package lumen

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string   `json:"action"`
	Key     string   `json:"key,omitempty"`
	Keys    []string `json:"keys,omitempty"`
	Root    string   `json:"root,omitempty"`
	Visible *bool    `json:"visible,omitempty"`
	Frames  int      `json:"frames,omitempty"`

	keys []Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected keys and scene changes across frames for
// automated runs. Attach to a Scene via SetTestRunner.
//
// Supported actions:
//
//	{"action": "key", "key": "right"}            queue one key
//	{"action": "key", "keys": ["right", "left"]} queue several keys
//	{"action": "wait", "frames": 30}             idle for N frames
//	{"action": "visible", "root": "main", "visible": false}
//	{"action": "relayout", "root": "main"}       force a layout pass
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner. Key names and actions are
// validated up front.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		if err := script.Steps[i].validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st *testStep) validate() error {
	switch st.Action {
	case "key":
		names := st.Keys
		if st.Key != "" {
			names = append([]string{st.Key}, names...)
		}
		if len(names) == 0 {
			return fmt.Errorf("key action without key")
		}
		for _, name := range names {
			k, ok := ParseKey(name)
			if !ok {
				return fmt.Errorf("unknown key %q", name)
			}
			st.keys = append(st.keys, k)
		}
	case "wait":
		if st.Frames < 0 {
			return fmt.Errorf("negative wait %d", st.Frames)
		}
	case "visible":
		if st.Root == "" || st.Visible == nil {
			return fmt.Errorf("visible action needs root and visible")
		}
	case "relayout":
		if st.Root == "" {
			return fmt.Errorf("relayout action needs root")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called at the start of RenderFrame, before injected keys are dispatched.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from RenderFrame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "key":
		s.InjectKeys(st.keys...)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "visible":
		s.SetRootVisible(st.Root, *st.Visible)
	case "relayout":
		s.SetRootNeedsLayout(st.Root)
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
