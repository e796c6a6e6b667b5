package checkout

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/faraz1977/ai-visionary/internal/domain"
	"github.com/faraz1977/ai-visionary/internal/infra"
	"github.com/faraz1977/ai-visionary/internal/session"
)

const (
	// DefaultProcessingDelay models the simulated bank verification phase.
	DefaultProcessingDelay = 2500 * time.Millisecond
	// DefaultConfirmDelay models the success-confirmation phase shown
	// before control returns to the dashboard.
	DefaultConfirmDelay = 1500 * time.Millisecond
)

// Options tunes the simulator. DeclineRate defaults to zero, so simulated
// charges never decline unless the knob is raised.
type Options struct {
	ProcessingDelay time.Duration
	ConfirmDelay    time.Duration
	DeclineRate     float64
	Rand            *rand.Rand
}

// Simulator stands in for a payment gateway. A charge is two sequential
// context-cancellable delays, then success (or, with a non-zero decline
// rate, a decline that leaves everything unchanged).
type Simulator struct {
	processing time.Duration
	confirm    time.Duration
	decline    float64
	logger     infra.Logger

	// The rng is shared by every session's charge; rand.Rand is not
	// goroutine-safe, so draws go through the mutex.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSimulator builds a simulator with the default delays.
func NewSimulator(opts Options, logger infra.Logger) *Simulator {
	if opts.ProcessingDelay <= 0 {
		opts.ProcessingDelay = DefaultProcessingDelay
	}
	if opts.ConfirmDelay <= 0 {
		opts.ConfirmDelay = DefaultConfirmDelay
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		processing: opts.ProcessingDelay,
		confirm:    opts.ConfirmDelay,
		decline:    opts.DeclineRate,
		rng:        rng,
		logger:     logger,
	}
}

// Charge runs the simulated gateway call. It returns
// domain.ErrChargeDeclined for a simulated decline and the context error
// when the caller gives up mid-charge.
func (s *Simulator) Charge(ctx context.Context) error {
	if err := sleep(ctx, s.processing); err != nil {
		return err
	}
	if s.decline > 0 {
		s.rngMu.Lock()
		draw := s.rng.Float64()
		s.rngMu.Unlock()
		if draw < s.decline {
			return domain.ErrChargeDeclined
		}
	}
	return sleep(ctx, s.confirm)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Processor applies a charge to a session: it enforces at most one charge
// in flight per session, and on success performs the checkout-complete
// transition (flat PRO upgrade plus return to the dashboard). A decline or
// cancellation leaves the account and the navigator exactly as they were.
type Processor struct {
	sim    *Simulator
	logger infra.Logger
}

// NewProcessor wires the processor to a simulator.
func NewProcessor(sim *Simulator, logger infra.Logger) *Processor {
	return &Processor{sim: sim, logger: logger}
}

// Charge executes the full checkout sequence for the session.
func (p *Processor) Charge(ctx context.Context, st *session.State) error {
	var gate error
	st.With(func(s *session.State) {
		if s.Account == nil {
			gate = domain.ErrUnauthorized
			return
		}
		if s.Charging {
			gate = domain.ErrChargeInFlight
			return
		}
		s.Charging = true
	})
	if gate != nil {
		return gate
	}

	err := p.sim.Charge(ctx)

	st.With(func(s *session.State) {
		s.Charging = false
		if err != nil {
			return
		}
		s.Account.Upgrade()
		s.Nav.CheckoutComplete()
	})
	if err != nil {
		return err
	}
	p.logger.Info().Str("session_id", st.ID).Msg("checkout: upgrade to PRO complete")
	return nil
}
