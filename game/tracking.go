package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/gesture"
)

// Tracker sources.
const (
	SourceNone   = "none"
	SourceReplay = "replay"
	SourceSweep  = "sweep"
)

// newOracle builds the landmark oracle named by cfg.Source. A nil oracle
// with a nil error means tracking is off.
func newOracle(cfg config.TrackerConfig, period time.Duration) (gesture.Oracle, error) {
	switch cfg.Source {
	case SourceNone, "":
		return nil, nil
	case SourceReplay:
		o, err := gesture.OpenReplayOracle(cfg.Path, period, cfg.Loop)
		if err != nil {
			return nil, err
		}
		return o, nil
	case SourceSweep:
		cycle := time.Duration(cfg.SweepPeriod * float64(time.Second))
		return gesture.NewSweepOracle(cfg.SweepHands, cycle, period), nil
	default:
		return nil, fmt.Errorf("unknown tracker source %q", cfg.Source)
	}
}

// startTracking acquires the oracle. With stepped set, oracles that support
// it run on the game's step clock and must be advanced each tick. Any
// failure is logged and the game continues without hands, so diffusion
// stays at zero.
func startTracking(ctx context.Context, cfg config.TrackerConfig, period time.Duration, stepped bool) gesture.Oracle {
	oracle, err := newOracle(cfg, period)
	if err != nil {
		slog.Warn("hand tracking unavailable", "source", cfg.Source, "error", err)
		return nil
	}
	if oracle == nil {
		slog.Info("hand tracking disabled")
		return nil
	}

	if so, ok := oracle.(gesture.SteppedOracle); ok && stepped {
		err = so.StartStepped()
	} else {
		err = oracle.Start(ctx)
	}
	if err != nil {
		slog.Warn("hand tracking failed to start", "source", cfg.Source, "error", err)
		if stopErr := oracle.Stop(); stopErr != nil {
			slog.Warn("releasing oracle", "error", stopErr)
		}
		return nil
	}
	return oracle
}
