package engine

import (
	"fmt"
	"testing"

	"github.com/aaeabdo/sloburn/model"
)

func pushN(h *History, n int) {
	for i := 0; i < n; i++ {
		h.Push(model.Event{ID: fmt.Sprintf("evt-%d", i), Timestamp: int64(i)})
	}
}

func TestHistoryPushAndLen(t *testing.T) {
	h := NewHistory(5)
	if h.Len() != 0 {
		t.Fatalf("new history Len = %d, want 0", h.Len())
	}
	pushN(h, 3)
	if h.Len() != 3 {
		t.Errorf("Len after 3 pushes = %d, want 3", h.Len())
	}
	pushN(h, 10)
	if h.Len() != 5 {
		t.Errorf("Len after overflow = %d, want cap 5", h.Len())
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	pushN(h, 5) // evt-0..evt-4, only the last 3 survive

	snap := h.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Snapshot len = %d, want 3", len(snap))
	}
	want := []string{"evt-2", "evt-3", "evt-4"}
	for i, id := range want {
		if snap[i].ID != id {
			t.Errorf("snap[%d].ID = %s, want %s (oldest first)", i, snap[i].ID, id)
		}
	}
}

func TestHistoryRecentNewestFirst(t *testing.T) {
	h := NewHistory(10)
	pushN(h, 4)

	recent := h.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Recent(2) len = %d, want 2", len(recent))
	}
	if recent[0].ID != "evt-3" || recent[1].ID != "evt-2" {
		t.Errorf("Recent(2) = [%s %s], want [evt-3 evt-2]", recent[0].ID, recent[1].ID)
	}

	// Asking for more than stored returns what exists.
	if got := h.Recent(100); len(got) != 4 {
		t.Errorf("Recent(100) len = %d, want 4", len(got))
	}
	if got := h.Recent(0); got != nil {
		t.Errorf("Recent(0) = %v, want nil", got)
	}
}

func TestHistoryRecentAfterWrap(t *testing.T) {
	h := NewHistory(3)
	pushN(h, 7) // buffer wraps twice

	recent := h.Recent(3)
	want := []string{"evt-6", "evt-5", "evt-4"}
	for i, id := range want {
		if recent[i].ID != id {
			t.Errorf("recent[%d].ID = %s, want %s", i, recent[i].ID, id)
		}
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := NewHistory(3)
	pushN(h, 3)

	snap := h.Snapshot()
	snap[0].ID = "mutated"

	if h.Snapshot()[0].ID != "evt-0" {
		t.Error("mutating a snapshot changed the stored event")
	}
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	if h.Cap() != 1 {
		t.Fatalf("Cap = %d, want clamp to 1", h.Cap())
	}
	pushN(h, 2)
	if h.Len() != 1 || h.Snapshot()[0].ID != "evt-1" {
		t.Errorf("single-slot ring holds %v, want just evt-1", h.Snapshot())
	}
}
