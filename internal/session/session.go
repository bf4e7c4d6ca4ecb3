// Package session is the board's controller: it owns the tool state, the
// drawing surface, the variable dictionary and the result list, and runs the
// submit round trip to the solver.
package session

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"CalcBoard/internal/raster"
	"CalcBoard/internal/solver"
	"CalcBoard/internal/state"
)

var (
	ErrNoSurface      = errors.New("drawing surface is not initialised")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrSuperseded     = errors.New("board was reset while the submission was in flight")
)

// Calculator is the remote solver.
type Calculator interface {
	Calculate(ctx context.Context, req solver.Request) ([]solver.Entry, error)
}

type Session struct {
	tools     *state.Tools
	vars      *state.Variables
	results   *state.Results
	calc      Calculator
	log       *zap.Logger
	inflight  *semaphore.Weighted
	pending   atomic.Bool

	// applyMu orders Reset against applying a response. generation counts
	// resets; a response is only applied to the generation it was sent from.
	applyMu    sync.Mutex
	generation uint64
	surfaceMu sync.RWMutex
	surface   *raster.Surface

	// Observers, all optional. They run on whichever goroutine finished the
	// work, so UI code must hop back to its own thread.
	OnResults func(all []state.Result)
	OnError   func(err error)
	OnBusy    func(busy bool)
}

func New(calc Calculator, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		tools:    state.NewTools(),
		vars:     state.NewVariables(),
		results:  state.NewResults(),
		calc:     calc,
		log:      log,
		inflight: semaphore.NewWeighted(1),
	}
}

// Tools and the setters below are the props handed to the tool selector.

func (s *Session) Tools() state.ToolState { return s.tools.Tools() }

func (s *Session) SetColor(c color.NRGBA) {
	if err := s.tools.SetColor(c); err != nil {
		s.log.Warn("ignoring color", zap.Error(err))
	}
}

func (s *Session) SetEraser(on bool) { s.tools.SetEraser(on) }
func (s *Session) SetPenWidth(w int) { s.tools.SetPenWidth(w) }
func (s *Session) SetEraserWidth(w int) { s.tools.SetEraserWidth(w) }
func (s *Session) ToolStore() *state.Tools { return s.tools }

// Attach sizes (or creates) the drawing surface for a viewport of w x h.
func (s *Session) Attach(w, h int) (*raster.Surface, error) {
	s.surfaceMu.Lock()
	defer s.surfaceMu.Unlock()
	if s.surface != nil {
		if err := s.surface.Resize(w, h); err != nil {
			return nil, err
		}
		return s.surface, nil
	}
	surface, err := raster.New(w, h, s.tools)
	if err != nil {
		return nil, err
	}
	s.log.Debug("surface ready", zap.Int("width", w), zap.Int("height", h))
	s.surface = surface
	return surface, nil
}

// Surface returns the attached surface, or nil before Attach succeeds.
func (s *Session) Surface() *raster.Surface {
	s.surfaceMu.RLock()
	defer s.surfaceMu.RUnlock()
	return s.surface
}

func (s *Session) Variables() map[string]string { return s.vars.Snapshot() }
func (s *Session) Results() []state.Result { return s.results.All() }

// Busy reports whether a submit is outstanding.
func (s *Session) Busy() bool { return s.pending.Load() }

// Submit sends the current drawing and variables to the solver. On success
// the assignments are merged, every entry is appended to the results and the
// surface is cleared. On failure nothing is changed. Only one submit runs at
// a time; overlapping calls get ErrSubmitInFlight.
func (s *Session) Submit(ctx context.Context) ([]state.Result, error) {
	surface := s.Surface()
	if surface == nil {
		return nil, s.fail(ErrNoSurface)
	}
	if !s.inflight.TryAcquire(1) {
		return nil, ErrSubmitInFlight
	}
	defer s.inflight.Release(1)
	s.busy(true)
	defer s.busy(false)

	s.applyMu.Lock()
	gen := s.generation
	s.applyMu.Unlock()

	image, err := surface.Snapshot()
	if err != nil {
		return nil, s.fail(err)
	}
	entries, err := s.calc.Calculate(ctx, solver.Request{
		Image:      image,
		DictOfVars: s.vars.Snapshot(),
	})
	if err != nil {
		return nil, s.fail(fmt.Errorf("calculate: %w", err))
	}

	s.applyMu.Lock()
	if s.generation != gen {
		s.applyMu.Unlock()
		s.log.Info("dropping response from before reset", zap.Int("entries", len(entries)))
		return nil, ErrSuperseded
	}

	added := make([]state.Result, 0, len(entries))
	assigned := make(map[string]string)
	for _, e := range entries {
		if e.Assign {
			assigned[e.Expr] = e.Answer
		}
		added = append(added, state.Result{Expression: e.Expr, Answer: e.Answer})
	}
	s.vars.Merge(assigned)
	s.results.Append(added...)
	surface.Clear()
	s.applyMu.Unlock()

	s.log.Info("submit applied",
		zap.Int("results", len(added)),
		zap.Int("assigned", len(assigned)))
	if s.OnResults != nil {
		s.OnResults(s.results.All())
	}
	return added, nil
}

// Reset wipes the drawing, the result list and the variable dictionary. A
// submit still in flight is discarded when its response arrives.
func (s *Session) Reset() {
	s.applyMu.Lock()
	s.generation++
	if surface := s.Surface(); surface != nil {
		surface.Clear()
	}
	s.results.Reset()
	s.vars.Reset()
	s.applyMu.Unlock()
	s.log.Info("board reset")
	if s.OnResults != nil {
		s.OnResults(nil)
	}
}

func (s *Session) fail(err error) error {
	s.log.Error("submit failed", zap.Error(err))
	if s.OnError != nil {
		s.OnError(err)
	}
	return err
}

func (s *Session) busy(b bool) {
	s.pending.Store(b)
	if s.OnBusy != nil {
		s.OnBusy(b)
	}
}
