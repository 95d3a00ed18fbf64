package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHandsAcquired BookmarkType = "hands_acquired"
	BookmarkHandsLost     BookmarkType = "hands_lost"
	BookmarkShapeSettled  BookmarkType = "shape_settled"
	BookmarkFullDiffusion BookmarkType = "full_diffusion"
	BookmarkSteadyGesture BookmarkType = "steady_gesture"
)

// Thresholds for the window-level checks.
const (
	fullDiffusionP90   = 0.95
	steadyPresence     = 0.9
	steadyStd          = 0.05
	steadyWindowsToArm = 5
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// transitionRule compares consecutive windows and may emit a bookmark.
type transitionRule func(prev, cur WindowStats) *Bookmark

var transitionRules = []transitionRule{checkPresence, checkSettled, checkFullDiffusion}

// BookmarkDetector flags notable moments by comparing each stats window
// with the one before it. The steady-gesture bookmark fires once per run.
type BookmarkDetector struct {
	prev    WindowStats
	hasPrev bool

	steadyWindows int // consecutive windows with a held, steady gesture
}

// NewBookmarkDetector creates a detector with no history.
func NewBookmarkDetector() *BookmarkDetector {
	return &BookmarkDetector{}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	if bd.hasPrev {
		for _, rule := range transitionRules {
			if b := rule(bd.prev, stats); b != nil {
				out = append(out, *b)
			}
		}
	}
	if b := bd.checkSteadyGesture(stats); b != nil {
		out = append(out, *b)
	}
	bd.prev, bd.hasPrev = stats, true
	return out
}

func checkPresence(prev, stats WindowStats) *Bookmark {
	switch {
	case prev.Presence == 0 && stats.Presence > 0:
		return &Bookmark{
			Type:        BookmarkHandsAcquired,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Hands present for %.0f%% of the window", stats.Presence*100),
		}
	case prev.Presence > 0 && stats.Presence == 0:
		return &Bookmark{
			Type:        BookmarkHandsLost,
			Tick:        stats.WindowEndTick,
			Description: "No hands detected for the whole window",
		}
	}
	return nil
}

func checkSettled(prev, stats WindowStats) *Bookmark {
	if !stats.Settled || (prev.Settled && stats.ShapeChanges == 0 && stats.CountChanges == 0) {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkShapeSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s with %d particles settled (residual %.5f)", stats.Shape, stats.Count, stats.Residual),
	}
}

func checkFullDiffusion(prev, stats WindowStats) *Bookmark {
	if stats.DiffusionP90 < fullDiffusionP90 || prev.DiffusionP90 >= fullDiffusionP90 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFullDiffusion,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Diffusion p90 reached %.2f", stats.DiffusionP90),
	}
}

func (bd *BookmarkDetector) checkSteadyGesture(stats WindowStats) *Bookmark {
	if stats.Presence < steadyPresence || stats.DiffusionStd > steadyStd {
		bd.steadyWindows = 0
		return nil
	}

	bd.steadyWindows++
	if bd.steadyWindows == steadyWindowsToArm {
		return &Bookmark{
			Type:        BookmarkSteadyGesture,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Gesture held near %.2f for %d windows", stats.DiffusionMean, steadyWindowsToArm),
		}
	}
	return nil
}
