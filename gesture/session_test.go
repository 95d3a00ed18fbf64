package gesture

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	s := Session{
		{pinchHand(0.1)},
		nil,
		{handAt(0.2, 0.5), handAt(0.8, 0.5)},
	}

	var buf bytes.Buffer
	if err := WriteSession(&buf, s); err != nil {
		t.Fatalf("writing session: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "frame,hand,landmark,x,y,z") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, err := ReadSession(&buf)
	if err != nil {
		t.Fatalf("reading session: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(got))
	}
	if len(got[0]) != 1 || len(got[1]) != 0 || len(got[2]) != 2 {
		t.Errorf("unexpected hand counts %d/%d/%d", len(got[0]), len(got[1]), len(got[2]))
	}

	e := NewExtractor()
	for i := range s {
		if want, have := e.Extract(s[i]), e.Extract(got[i]); want != have {
			t.Errorf("frame %d: reading changed on round trip: %+v vs %+v", i, want, have)
		}
	}
}

func TestReadSessionFillsMissingFrames(t *testing.T) {
	csv := "frame,hand,landmark,x,y,z\n" +
		"3,0,0,0.1,0.2,0\n" +
		"6,0,0,0.3,0.4,0\n"
	s, err := ReadSession(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 4 {
		t.Fatalf("expected frames 3..6, got %d frames", len(s))
	}
	if len(s[1]) != 0 || len(s[2]) != 0 {
		t.Error("expected gap frames to carry no hands")
	}
	// A one-landmark hand is malformed and must read as no hands.
	if r := NewExtractor().Extract(s[0]); r.Active {
		t.Errorf("expected malformed hand to be ignored, got %+v", r)
	}
}

func TestReadSessionEmpty(t *testing.T) {
	_, err := ReadSession(strings.NewReader("frame,hand,landmark,x,y,z\n"))
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestReadSessionRejectsOutOfRangeIndices(t *testing.T) {
	for name, row := range map[string]string{
		"landmark":   "0,0,300000000,0.1,0.1,0",
		"hand":       "0,300000000,0,0.1,0.1,0",
		"frame span": "0,0,0,0.1,0.1,0\n300000000,0,0,0.1,0.1,0",
	} {
		t.Run(name, func(t *testing.T) {
			csv := "frame,hand,landmark,x,y,z\n" + row + "\n"
			if _, err := ReadSession(strings.NewReader(csv)); err == nil {
				t.Errorf("expected error for %s out of range", name)
			}
		})
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.csv")
	s := Session{{pinchHand(0.2)}, {pinchHand(0.3)}}
	if err := SaveSession(path, s); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSession(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 frames, got %d", len(got))
	}
}

func TestReplayOraclePlaysAndStops(t *testing.T) {
	s := Session{{pinchHand(0.1)}, {pinchHand(0.2)}, {pinchHand(0.3)}}
	o := NewReplayOracle(s, time.Millisecond, false)

	if err := o.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := o.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		f, ok := o.Mailbox().Latest()
		if ok && f.Seq == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("replay did not reach the last frame (seq %d)", f.Seq)
		}
		time.Sleep(time.Millisecond)
	}

	if err := o.Stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
	if err := o.Stop(); err != nil {
		t.Errorf("second stop: %v", err)
	}
	if err := o.Start(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

func TestReplayOracleEmptySession(t *testing.T) {
	o := NewReplayOracle(nil, time.Millisecond, true)
	if err := o.Start(context.Background()); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
	if err := o.Stop(); err != nil {
		t.Errorf("stop without start: %v", err)
	}
}

func TestSweepOracleCoversRange(t *testing.T) {
	e := NewExtractor()
	for _, hands := range []int{1, 2} {
		o := NewSweepOracle(hands, time.Second, time.Millisecond)
		closed := e.Extract(o.FrameAt(0))
		open := e.Extract(o.FrameAt(500 * time.Millisecond))
		if closed.Diffusion != 0 {
			t.Errorf("%d hands: expected closed gesture to read 0, got %v", hands, closed.Diffusion)
		}
		if open.Diffusion != 1 {
			t.Errorf("%d hands: expected open gesture to read 1, got %v", hands, open.Diffusion)
		}
		if closed.Hands != hands || open.Hands != hands {
			t.Errorf("%d hands: unexpected hand counts %d/%d", hands, closed.Hands, open.Hands)
		}
	}
}

func TestSweepOracleStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	o := NewSweepOracle(1, time.Second, time.Millisecond)
	if err := o.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := o.Stop(); err != nil {
		t.Errorf("stop after cancel: %v", err)
	}
	if _, ok := o.Mailbox().Latest(); ok {
		t.Error("expected mailbox cleared on stop")
	}
}

func TestSweepOracleSteppedCadence(t *testing.T) {
	period := 100 * time.Millisecond
	o := NewSweepOracle(1, time.Second, period)
	if err := o.StartStepped(); err != nil {
		t.Fatal(err)
	}
	if err := o.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
	if _, ok := o.Mailbox().Latest(); ok {
		t.Fatal("expected no frame before the first Advance")
	}

	seqAt := func(now time.Duration) uint64 {
		o.Advance(now)
		f, _ := o.Mailbox().Latest()
		return f.Seq
	}
	steps := []struct {
		now  time.Duration
		want uint64
	}{
		{time.Second, 1}, // first call sets zero time
		{time.Second + 50*time.Millisecond, 1},
		{time.Second + period, 2},
		{time.Second + period, 2},
		{time.Second + 5*period, 3}, // a long gap publishes once
		{time.Second + 5*period + 50*time.Millisecond, 3},
		{time.Second + 6*period, 4},
	}
	for _, s := range steps {
		if got := seqAt(s.now); got != s.want {
			t.Errorf("at %v: expected seq %d, got %d", s.now, s.want, got)
		}
	}

	if err := o.Stop(); err != nil {
		t.Fatal(err)
	}
	o.Advance(time.Hour)
	if _, ok := o.Mailbox().Latest(); ok {
		t.Error("expected no frames after stop")
	}
}

func TestReplayOracleSteppedEnds(t *testing.T) {
	s := Session{{pinchHand(0.1)}, {pinchHand(0.2)}}
	o := NewReplayOracle(s, time.Millisecond, false)
	if err := o.StartStepped(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		o.Advance(time.Duration(i) * time.Millisecond)
	}
	f, ok := o.Mailbox().Latest()
	if !ok || f.Seq != 2 {
		t.Fatalf("expected playback to stop after 2 frames, got seq %d", f.Seq)
	}
	if r := NewExtractor().Extract(f.Hands); r != NewExtractor().Extract(s[1]) {
		t.Errorf("expected the last recorded frame held, got %+v", r)
	}

	empty := NewReplayOracle(nil, time.Millisecond, false)
	if err := empty.StartStepped(); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
