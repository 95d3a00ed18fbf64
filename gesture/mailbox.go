package gesture

import "sync/atomic"

// Mailbox is a single-slot cell holding the most recent oracle frame.
// Put never blocks and overwrites any unread frame; Latest never blocks
// and may return the same frame on consecutive calls.
type Mailbox struct {
	slot atomic.Pointer[Frame]
	seq  atomic.Uint64
}

// Put publishes a frame, stamping it with the next sequence number.
func (m *Mailbox) Put(hands []Hand) {
	f := &Frame{Seq: m.seq.Add(1), Hands: hands}
	m.slot.Store(f)
}

// Latest returns the most recent frame, or false if nothing was published yet.
func (m *Mailbox) Latest() (Frame, bool) {
	f := m.slot.Load()
	if f == nil {
		return Frame{}, false
	}
	return *f, true
}

// Reset clears the slot.
func (m *Mailbox) Reset() {
	m.slot.Store(nil)
}
