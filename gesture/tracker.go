package gesture

import (
	"log/slog"
	"time"
)

// Tracker reads the oracle's mailbox once per render tick and keeps the
// current reading. It never blocks: when no new frame arrived since the last
// tick, the previous reading is held, and after holdTimeout without frames it
// falls back to zero. With no oracle the reading stays zero and inactive.
type Tracker struct {
	extractor   *Extractor
	oracle      Oracle
	holdTimeout time.Duration

	lastSeq     uint64
	lastFrameAt time.Duration
	reading     Reading
}

// NewTracker creates a tracker. oracle may be nil.
func NewTracker(extractor *Extractor, oracle Oracle, holdTimeout time.Duration) *Tracker {
	if extractor == nil {
		extractor = NewExtractor()
	}
	return &Tracker{
		extractor:   extractor,
		oracle:      oracle,
		holdTimeout: holdTimeout,
	}
}

// Update refreshes the reading from the latest frame. now is the render
// loop's elapsed time.
func (t *Tracker) Update(now time.Duration) Reading {
	if t.oracle == nil {
		return t.set(Reading{})
	}

	frame, ok := t.oracle.Mailbox().Latest()
	if ok && frame.Seq != t.lastSeq {
		t.lastSeq = frame.Seq
		t.lastFrameAt = now
		return t.set(t.extractor.Extract(frame.Hands))
	}

	if t.holdTimeout > 0 && now-t.lastFrameAt > t.holdTimeout {
		return t.set(Reading{})
	}
	return t.reading
}

// Reading returns the last computed reading.
func (t *Tracker) Reading() Reading {
	return t.reading
}

// Connected reports whether an oracle is attached.
func (t *Tracker) Connected() bool {
	return t.oracle != nil
}

// Detach drops the oracle; subsequent readings are zero.
func (t *Tracker) Detach() {
	t.oracle = nil
	t.set(Reading{})
}

func (t *Tracker) set(r Reading) Reading {
	if r.Active != t.reading.Active {
		slog.Debug("hand presence changed", "active", r.Active, "hands", r.Hands)
	}
	t.reading = r
	return r
}
