// Package presenter runs the main loop: it drains controller and keyboard
// events, applies them and redraws, once per frame.
package presenter

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/nespresenter/internal/executor"
	"github.com/ivlev/nespresenter/internal/input"
	"github.com/ivlev/nespresenter/internal/logging"
	"github.com/ivlev/nespresenter/internal/render"
)

const subsystem = "Presenter"

// eventBuffer bounds how many events may queue up during a slow injection.
const eventBuffer = 64

// Source produces raw input events until ctx is cancelled. Sources only
// send; they never touch the presenter state.
type Source interface {
	Run(ctx context.Context, out chan<- input.Event) error
}

type Presenter struct {
	Executor *executor.Executor
	Mapping  input.Mapping
	Renderer render.Renderer
	Sources  []Source
	Interval time.Duration
}

func NewPresenter(exec *executor.Executor, mapping input.Mapping, r render.Renderer, interval time.Duration, sources ...Source) *Presenter {
	return &Presenter{
		Executor: exec,
		Mapping:  mapping,
		Renderer: r,
		Sources:  sources,
		Interval: interval,
	}
}

// Run blocks until a Quit action or a fatal error. The renderer is closed
// before Run returns.
func (p *Presenter) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	events := make(chan input.Event, eventBuffer)
	for _, src := range p.Sources {
		g.Go(func() error {
			return src.Run(gctx, events)
		})
	}

	logging.Info(subsystem, "presenting %q: %d steps", p.Executor.Scenario.Title(), p.Executor.Scenario.Len())
	loopErr := p.loop(gctx, events)

	cancel()
	closeErr := p.Renderer.Close()
	srcErr := g.Wait()

	switch {
	case srcErr != nil:
		return fmt.Errorf("input source: %w", srcErr)
	case loopErr != nil:
		return loopErr
	case closeErr != nil:
		return fmt.Errorf("close renderer: %w", closeErr)
	}
	return nil
}

func (p *Presenter) loop(ctx context.Context, events <-chan input.Event) error {
	for {
		if err := p.Executor.ReloadIfPending(); err != nil {
			return err
		}

		stop, err := p.drain(ctx, events)
		if err != nil || stop {
			return err
		}

		frame := render.BuildFrame(p.Executor.State, p.Executor.Scenario)
		if err := p.Renderer.Render(frame); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Interval):
		}
	}
}

// drain applies every queued event in arrival order without waiting for
// more.
func (p *Presenter) drain(ctx context.Context, events <-chan input.Event) (bool, error) {
	for {
		select {
		case ev := <-events:
			action, ok := p.Mapping.Translate(ev)
			if !ok {
				continue
			}
			outcome, err := p.Executor.Apply(ctx, action)
			if err != nil {
				return true, fmt.Errorf("%s: %w", action, err)
			}
			if outcome == executor.Stop {
				return true, nil
			}
		default:
			return false, nil
		}
	}
}

// SignalSource turns SIGINT, SIGTERM and SIGHUP into a window close, so a
// terminated presenter still restores the terminal.
type SignalSource struct{}

func (SignalSource) Run(ctx context.Context, out chan<- input.Event) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(ch)

	select {
	case <-ctx.Done():
		return nil
	case sig := <-ch:
		logging.Info(subsystem, "received %s", sig)
	}

	select {
	case out <- input.Close():
	case <-ctx.Done():
	}
	return nil
}

