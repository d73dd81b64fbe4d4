package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/watchface/internal/events"
	"github.com/rook-computer/watchface/internal/face"
	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/state"
	"github.com/rook-computer/watchface/internal/system"
)

type App struct {
	Sources    state.Sources
	Render     render.Renderer
	Screen     render.Screen
	Events     events.Source
	Visibility *face.Visibility
	Logger     Logger

	// ShowOnStart makes the face visible without waiting for a show event.
	ShowOnStart bool
	// ConsoleGraphics switches the VT to graphics mode while running.
	ConsoleGraphics bool

	// Now is the clock; nil means time.Now.
	Now func() time.Time

	frames   atomic.Int64
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(sources state.Sources, renderer render.Renderer, screen render.Screen, source events.Source) *App {
	return &App{
		Sources:    sources,
		Render:     renderer,
		Screen:     screen,
		Events:     source,
		Visibility: face.NewVisibility(),
		Logger:     NoopLogger{},
		exitCh:     make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.Sources == nil || app.Render == nil || app.Screen == nil {
		return errors.New("app needs sources, renderer and screen")
	}
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Visibility == nil {
		app.Visibility = face.NewVisibility()
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	app.exitOnce.Store(false)

	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return fmt.Errorf("start renderer: %w", err)
	}
	defer app.Render.Stop()
	app.Render.SetScreen(app.Screen)

	if app.ConsoleGraphics {
		// Suppress the VT cursor drawing over the face.
		_ = system.SetGraphicsModeWithLog(app.Logger)
		_ = system.HideCursorWithLog(app.Logger)
		defer func() { _ = system.ShowCursorWithLog(app.Logger); _ = system.RestoreTextModeWithLog(app.Logger) }()
	}

	if app.Events != nil {
		if err := app.Events.Start(ctx); err != nil {
			return fmt.Errorf("start lifecycle events: %w", err)
		}
		defer app.Events.Stop()
	}

	if app.ShowOnStart {
		app.Visibility.Show()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.RunLoop(loopCtx)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	app.Logger.Infof("app", "stopped after %d frames", app.frames.Load())
	return err
}

// RunLoop redraws on the visibility cadence and applies lifecycle events
// until ctx is done. A visible face is drawn once right away.
func (app *App) RunLoop(ctx context.Context) {
	var eventCh <-chan events.Event
	if app.Events != nil {
		eventCh = app.Events.Events()
	}
	if app.Visibility.ShouldDraw() {
		app.Redraw()
	}
	timer := time.NewTimer(app.Visibility.Interval())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-eventCh:
			if !ok {
				eventCh = nil
				continue
			}
			app.HandleEvent(ev)
			resetTimer(timer, app.Visibility.Interval())
		case <-timer.C:
			if app.Visibility.ShouldDraw() {
				app.Redraw()
			}
			timer.Reset(app.Visibility.Interval())
		}
	}
}

// HandleEvent applies a host lifecycle notification. It never draws.
func (app *App) HandleEvent(ev events.Event) {
	switch ev {
	case events.Show:
		app.Visibility.Show()
	case events.Hide:
		app.Visibility.Hide()
	case events.Sleep:
		app.Visibility.EnterSleep()
	case events.Wake:
		app.Visibility.ExitSleep()
	case events.ToggleSleep:
		if app.Visibility.Sleeping() {
			app.Visibility.ExitSleep()
		} else {
			app.Visibility.EnterSleep()
		}
	default:
		app.Logger.Errorf("app", "ignoring unknown lifecycle event %q", ev)
		return
	}
	app.Logger.Infof("app", "lifecycle %s, visible=%v interval=%s", ev, app.Visibility.ShouldDraw(), app.Visibility.Interval())
}

// Redraw captures a fresh snapshot and draws one full frame.
func (app *App) Redraw() {
	snap := state.Capture(app.Sources, app.now())
	app.Render.RedrawWithState(snap)
	app.frames.Add(1)
}

// Snapshot captures the state the next frame would be drawn from.
func (app *App) Snapshot() state.State {
	return state.Capture(app.Sources, app.now())
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func resetTimer(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	writeLog(l.w, level, component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
