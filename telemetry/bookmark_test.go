package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FirstWindowIsQuiet(t *testing.T) {
	bd := NewBookmarkDetector()
	bookmarks := bd.Check(WindowStats{Presence: 1, Settled: true, DiffusionP90: 1})
	if len(bookmarks) != 0 {
		t.Errorf("expected no bookmarks without history, got %v", bookmarks)
	}
}

func TestBookmarkDetector_Presence(t *testing.T) {
	bd := NewBookmarkDetector()
	bd.Check(WindowStats{WindowEndTick: 300})

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 600, Presence: 0.4}), BookmarkHandsAcquired) {
		t.Error("expected hands_acquired bookmark")
	}
	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 900}), BookmarkHandsLost) {
		t.Error("expected hands_lost bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 1200}), BookmarkHandsLost) {
		t.Error("expected hands_lost only on the transition")
	}
}

func TestBookmarkDetector_ShapeSettled(t *testing.T) {
	bd := NewBookmarkDetector()
	bd.Check(WindowStats{Shape: "heart", Settled: false, ShapeChanges: 1})

	if !hasBookmark(bd.Check(WindowStats{Shape: "heart", Settled: true}), BookmarkShapeSettled) {
		t.Error("expected shape_settled bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{Shape: "heart", Settled: true}), BookmarkShapeSettled) {
		t.Error("expected no repeat while the shape stays settled")
	}
}

func TestBookmarkDetector_FullDiffusion(t *testing.T) {
	bd := NewBookmarkDetector()
	bd.Check(WindowStats{DiffusionP90: 0.3})

	if !hasBookmark(bd.Check(WindowStats{DiffusionP90: 1}), BookmarkFullDiffusion) {
		t.Error("expected full_diffusion bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{DiffusionP90: 1}), BookmarkFullDiffusion) {
		t.Error("expected full_diffusion only when crossing the threshold")
	}
}

func TestBookmarkDetector_SteadyGesture(t *testing.T) {
	bd := NewBookmarkDetector()

	var triggered int
	for i := 0; i < 8; i++ {
		bookmarks := bd.Check(WindowStats{
			WindowEndTick: int32(i * 300),
			Presence:      1,
			DiffusionMean: 0.5,
			DiffusionStd:  0.01,
		})
		if hasBookmark(bookmarks, BookmarkSteadyGesture) {
			triggered++
			if i != steadyWindowsToArm-1 {
				t.Errorf("expected trigger on window %d, got %d", steadyWindowsToArm-1, i)
			}
		}
	}
	if triggered != 1 {
		t.Errorf("expected exactly one steady_gesture bookmark, got %d", triggered)
	}
}
