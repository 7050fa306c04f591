package store

import (
	"errors"
	"testing"
)

// seedWatchlist registers a client and links the given markets to it.
func seedWatchlist(t *testing.T, s *Store, clientID int64, isins ...string) {
	t.Helper()
	if err := s.RegisterClient(clientID); err != nil {
		t.Fatal(err)
	}
	for _, isin := range isins {
		if err := s.AddMarket(testQuote(isin, "Sprinter "+isin)); err != nil {
			t.Fatal(err)
		}
		if err := s.Link(clientID, isin); err != nil {
			t.Fatal(err)
		}
	}
}

func markedFor(t *testing.T, s *Store, clientID int64) map[string]bool {
	t.Helper()
	entries, err := s.ClientMarkets(clientID)
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[string]bool, len(entries))
	for _, e := range entries {
		marked[e.ISIN] = e.MarkedForDeletion
	}
	return marked
}

func TestToggleRemovalMark(t *testing.T) {
	s := newTestStore(t)
	seedWatchlist(t, s, 1, "NL0000000001")

	marked, err := s.ToggleRemovalMark(1, "NL0000000001")
	if err != nil {
		t.Fatalf("ToggleRemovalMark failed: %v", err)
	}
	if !marked {
		t.Error("first toggle must mark the entry")
	}

	marked, err = s.ToggleRemovalMark(1, "NL0000000001")
	if err != nil {
		t.Fatalf("second ToggleRemovalMark failed: %v", err)
	}
	if marked {
		t.Error("second toggle must clear the mark")
	}
}

func TestToggleRemovalMarkUnknownPair(t *testing.T) {
	s := newTestStore(t)
	seedWatchlist(t, s, 1, "NL0000000001")

	if _, err := s.ToggleRemovalMark(1, "NL9999999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle for unlinked market = %v, want ErrNotFound", err)
	}
	if _, err := s.ToggleRemovalMark(2, "NL0000000001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle for unknown client = %v, want ErrNotFound", err)
	}
}

func TestSetMarkedForDeletionMissingPair(t *testing.T) {
	s := newTestStore(t)
	seedWatchlist(t, s, 1, "NL0000000001")

	// A missing pair is logged and swallowed, not reported
	if err := s.SetMarkedForDeletion(1, "NL9999999999", true); err != nil {
		t.Errorf("SetMarkedForDeletion on missing pair = %v, want nil", err)
	}
}

func TestConfirmRemovals(t *testing.T) {
	s := newTestStore(t)
	seedWatchlist(t, s, 1, "NL0000000001", "NL0000000002", "NL0000000003")

	if err := s.SetMarkedForDeletion(1, "NL0000000001", true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMarkedForDeletion(1, "NL0000000003", true); err != nil {
		t.Fatal(err)
	}

	removed, err := s.ConfirmRemovals(1)
	if err != nil {
		t.Fatalf("ConfirmRemovals failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	marked := markedFor(t, s, 1)
	if len(marked) != 1 {
		t.Fatalf("watchlist size = %d, want 1", len(marked))
	}
	if _, ok := marked["NL0000000002"]; !ok {
		t.Error("the unmarked entry must survive confirmation")
	}
}

func TestCancelRemovals(t *testing.T) {
	s := newTestStore(t)
	seedWatchlist(t, s, 1, "NL0000000001", "NL0000000002")

	if err := s.SetMarkedForDeletion(1, "NL0000000001", true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMarkedForDeletion(1, "NL0000000002", true); err != nil {
		t.Fatal(err)
	}

	cleared, err := s.CancelRemovals(1)
	if err != nil {
		t.Fatalf("CancelRemovals failed: %v", err)
	}
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2", cleared)
	}

	for isin, marked := range markedFor(t, s, 1) {
		if marked {
			t.Errorf("%s still marked after cancellation", isin)
		}
	}

	// The batch on an empty mark set is a no-op
	removed, err := s.ConfirmRemovals(1)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("confirm after cancel removed %d rows, want 0", removed)
	}
}

func TestRemovalMarksAreClientLocal(t *testing.T) {
	s := newTestStore(t)
	seedWatchlist(t, s, 1, "NL0000000001")
	if err := s.RegisterClient(2); err != nil {
		t.Fatal(err)
	}
	if err := s.Link(2, "NL0000000001"); err != nil {
		t.Fatal(err)
	}

	if err := s.SetMarkedForDeletion(1, "NL0000000001", true); err != nil {
		t.Fatal(err)
	}

	if marked := markedFor(t, s, 2); marked["NL0000000001"] {
		t.Error("a mark placed by one client must not spill over to another")
	}

	if _, err := s.ConfirmRemovals(1); err != nil {
		t.Fatal(err)
	}

	// The other client's link survives, and so does the shared market
	if entries := markedFor(t, s, 2); len(entries) != 1 {
		t.Errorf("second client's watchlist size = %d, want 1", len(entries))
	}
	if _, err := s.Market("NL0000000001"); err != nil {
		t.Errorf("market must survive a single client's confirmation: %v", err)
	}
}
