// Package executor applies translated actions to the navigation state and
// performs the keystroke injections they call for.
package executor

import (
	"context"
	"fmt"

	"github.com/ivlev/nespresenter/internal/config"
	"github.com/ivlev/nespresenter/internal/effects"
	"github.com/ivlev/nespresenter/internal/inject"
	"github.com/ivlev/nespresenter/internal/input"
	"github.com/ivlev/nespresenter/internal/logging"
	"github.com/ivlev/nespresenter/internal/navigation"
	"github.com/ivlev/nespresenter/internal/scenario"
)

const subsystem = "Executor"

// Outcome tells the main loop whether to keep going.
type Outcome int

const (
	Continue Outcome = iota
	Stop
)

// Executor is driven by the main loop only; it is not safe for concurrent use.
type Executor struct {
	State    *navigation.State
	Scenario *scenario.Scenario
	Loader   scenario.Loader
	Injector inject.Injector
	Keys     config.Keys
	Effect   effects.Effect

	// ScrollLines sets how far one Demo mode page moves: the scroll
	// sequence is sent ScrollLines-1 times.
	ScrollLines int

	reloadPending bool
}

// New creates an executor for an already loaded scenario.
func New(state *navigation.State, sc *scenario.Scenario, loader scenario.Loader, inj inject.Injector, cfg *config.Config) *Executor {
	return &Executor{
		State:       state,
		Scenario:    sc,
		Loader:      loader,
		Injector:    inj,
		Keys:        cfg.Keys,
		Effect:      effects.Silent{},
		ScrollLines: cfg.ScrollLines,
	}
}

// CurrentStep returns the step the state points at.
func (e *Executor) CurrentStep() scenario.Step {
	return e.Scenario.Step(e.State.Index())
}

// ReloadPending reports whether a reload waits for the next iteration.
func (e *Executor) ReloadPending() bool {
	return e.reloadPending
}

// Apply performs a single action. Any returned error is fatal: an
// injection may have been delivered partially.
func (e *Executor) Apply(ctx context.Context, action input.Action) (Outcome, error) {
	logging.Debug(subsystem, "%s in %s at step %d", action, e.State.Mode(), e.State.Index()+1)

	switch action {
	case input.StepNext:
		e.State.Advance(e.Scenario.Len())

	case input.StepPrev:
		e.State.Retreat()

	case input.PageUp:
		if err := e.page(ctx, e.Keys.ScrollUp, e.Keys.PageUp); err != nil {
			return Stop, err
		}

	case input.PageDown:
		if e.State.Mode() == navigation.Presentation {
			e.State.StartOrKeepTimer()
		}
		if err := e.page(ctx, e.Keys.ScrollDown, e.Keys.PageDown); err != nil {
			return Stop, err
		}

	case input.ToggleMode:
		mode := e.State.ToggleMode()
		hotkey := e.Keys.DemoHotkey
		if mode == navigation.Presentation {
			hotkey = e.Keys.PresentationHotkey
		}
		logging.Info(subsystem, "switched to %s mode", mode)
		if err := e.Injector.SendKeys(ctx, hotkey, 0); err != nil {
			return Stop, err
		}

	case input.Execute:
		if err := e.execute(ctx); err != nil {
			return Stop, err
		}

	case input.ResetTimer:
		e.State.ResetTimer()
		logging.Info(subsystem, "presentation timer reset")

	case input.ReloadScenario:
		e.reloadPending = true

	case input.Quit:
		logging.Info(subsystem, "See ya")
		return Stop, nil
	}

	return Continue, nil
}

// page scrolls the terminal back in Demo mode and flips a slide in
// Presentation mode.
func (e *Executor) page(ctx context.Context, scrollKeys, slideKeys string) error {
	if e.State.Mode() == navigation.Presentation {
		return e.Injector.SendKeys(ctx, slideKeys, 0)
	}
	for i := 1; i < e.ScrollLines; i++ {
		if err := e.Injector.SendKeys(ctx, scrollKeys, 0); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) execute(ctx context.Context) error {
	if e.State.Mode() != navigation.Demo {
		return nil
	}

	step := e.CurrentStep()
	logging.Info(subsystem, "executing step %d/%d", e.State.Index()+1, e.Scenario.Len())

	if err := e.Injector.TypeText(ctx, step.Command, inject.TypeDelay); err != nil {
		return err
	}
	if step.Submit {
		if err := e.Injector.SendKeys(ctx, e.Keys.Submit, inject.SubmitDelay); err != nil {
			return err
		}
	}
	e.Effect.Play()

	e.State.Advance(e.Scenario.Len())
	return nil
}

// ReloadIfPending swaps in a freshly loaded scenario when a reload was
// requested. There is no fallback to the old scenario: a broken file is
// returned as an error.
func (e *Executor) ReloadIfPending() error {
	if !e.reloadPending {
		return nil
	}
	e.reloadPending = false

	sc, err := e.Loader.Load()
	if err != nil {
		return fmt.Errorf("reload scenario: %w", err)
	}
	if err := e.State.RepairAfterReload(sc.Len()); err != nil {
		return fmt.Errorf("reload scenario: %w", err)
	}
	e.Scenario = sc
	logging.Info(subsystem, "scenario reloaded: %d steps, at step %d", sc.Len(), e.State.Index()+1)
	return nil
}
