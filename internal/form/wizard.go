package form

import "errors"

var (
	ErrFirstStep = errors.New("already on the first step")
	ErrLastStep  = errors.New("already on the last step")
)

// Step owns a subset of the master fields. A step with no fields may still
// manage a child collection.
type Step struct {
	Name       string
	Title      string
	Fields     []string
	Collection string
}

// Wizard gates navigation through ordered steps on per-step validation.
type Wizard struct {
	state   *State
	steps   []Step
	current int
}

func NewWizard(state *State, steps []Step) *Wizard {
	return &Wizard{state: state, steps: steps}
}

func (w *Wizard) Steps() []Step { return w.steps }
func (w *Wizard) Index() int    { return w.current }

// Current returns the active step.
func (w *Wizard) Current() Step {
	if len(w.steps) == 0 {
		return Step{}
	}
	return w.steps[w.current]
}

func (w *Wizard) IsLast() bool { return w.current >= len(w.steps)-1 }

// CanSubmit reports whether the terminal action is reachable.
func (w *Wizard) CanSubmit() bool { return w.IsLast() }

// Advance moves forward when every field of the current step passes.
// On failure the step is unchanged and the FieldErrors are returned.
func (w *Wizard) Advance() error {
	if w.IsLast() {
		return ErrLastStep
	}
	if fields := w.Current().Fields; len(fields) > 0 {
		if err := w.state.Validate(fields...); err != nil {
			return err
		}
	}
	w.current++
	return nil
}

// Retreat moves back one step.
func (w *Wizard) Retreat() error {
	if w.current == 0 {
		return ErrFirstStep
	}
	w.current--
	return nil
}
