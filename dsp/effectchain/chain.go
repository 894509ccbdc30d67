package effectchain

import (
	"context"
	"fmt"
	"time"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/fault"
)

const opApply = "effectchain.apply"

// Phase identifies a point in a stage's life.
type Phase int

const (
	StageStarted Phase = iota
	StageFinished
	StageFailed
)

func (p Phase) String() string {
	switch p {
	case StageStarted:
		return "started"
	case StageFinished:
		return "finished"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Event reports stage progress to an Observer.
type Event struct {
	Phase   Phase
	Index   int
	Total   int
	ID      string
	Elapsed time.Duration
	Err     error
}

// Observer receives stage events synchronously from Apply.
type Observer func(Event)

// Option configures a Chain.
type Option func(*Chain)

// WithObserver registers fn for stage events.
func WithObserver(fn Observer) Option {
	return func(c *Chain) { c.observer = fn }
}

// Chain applies a Config to buffers. A Chain holds no per-run state and may
// be reused and shared.
type Chain struct {
	cfg      *Config
	observer Observer
}

// NewChain returns a chain running cfg.
func NewChain(cfg *Config, opts ...Option) *Chain {
	c := &Chain{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Config returns the chain's configuration.
func (c *Chain) Config() *Config { return c.cfg }

// Apply threads in through every stage in order and returns the final
// buffer. in is never modified. The context is checked before each stage.
// On any failure Apply returns nil and the error of the failing stage.
func (c *Chain) Apply(ctx context.Context, in *buffer.Buffer) (*buffer.Buffer, error) {
	if in == nil {
		return nil, fault.InvalidParameter(opApply, "nil buffer")
	}

	if err := in.Validate(); err != nil {
		return nil, fault.Wrap(fault.KindInvalidParameter, opApply, err)
	}

	stages := c.cfg.Stages()
	cur := in.Clone()

	for i, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("effectchain: stage %d (%s): %w", i, st.Spec.ID, err)
		}

		c.notify(Event{Phase: StageStarted, Index: i, Total: len(stages), ID: st.Spec.ID})
		start := time.Now()

		next, err := st.Op.Apply(cur)
		elapsed := time.Since(start)

		if err != nil {
			c.notify(Event{Phase: StageFailed, Index: i, Total: len(stages), ID: st.Spec.ID, Elapsed: elapsed, Err: err})

			return nil, fmt.Errorf("effectchain: stage %d (%s): %w", i, st.Spec.ID, err)
		}

		c.notify(Event{Phase: StageFinished, Index: i, Total: len(stages), ID: st.Spec.ID, Elapsed: elapsed})
		cur = next
	}

	return cur, nil
}

func (c *Chain) notify(ev Event) {
	if c.observer != nil {
		c.observer(ev)
	}
}
