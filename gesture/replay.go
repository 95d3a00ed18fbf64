package gesture

import (
	"context"
	"time"
)

// ReplayOracle plays a recorded session into its mailbox, one frame per period.
type ReplayOracle struct {
	*loop
	session Session
	repeat  bool
}

var _ SteppedOracle = (*ReplayOracle)(nil)

// NewReplayOracle creates an oracle over an in-memory session.
func NewReplayOracle(s Session, period time.Duration, repeat bool) *ReplayOracle {
	return &ReplayOracle{
		loop:    newLoop("replay", period),
		session: s,
		repeat:  repeat,
	}
}

// OpenReplayOracle loads a CSV session and wraps it in an oracle.
func OpenReplayOracle(path string, period time.Duration, repeat bool) (*ReplayOracle, error) {
	s, err := LoadSession(path)
	if err != nil {
		return nil, err
	}
	return NewReplayOracle(s, period, repeat), nil
}

// Start begins playback on the wall clock.
func (o *ReplayOracle) Start(ctx context.Context) error {
	if len(o.session) == 0 {
		return ErrNoFrames
	}
	return o.run(ctx, o.player(), o.resetBox)
}

// StartStepped arms playback for Advance: one recorded frame per period.
func (o *ReplayOracle) StartStepped() error {
	if len(o.session) == 0 {
		return ErrNoFrames
	}
	return o.runStepped(o.player(), o.resetBox)
}

// player walks the session one frame per call, wrapping when repeating.
func (o *ReplayOracle) player() producer {
	next := 0
	return func(time.Duration) ([]Hand, bool) {
		if next >= len(o.session) {
			if !o.repeat {
				return nil, false
			}
			next = 0
		}
		hands := o.session[next]
		next++
		return hands, true
	}
}

// Frames returns the number of frames in the session.
func (o *ReplayOracle) Frames() int {
	return len(o.session)
}
