package projection

import "testing"

// ============================================================================
// Bid History Projection Tests
// ============================================================================

func TestQueryByAuctionNewestFirst(t *testing.T) {
	p := NewBidHistoryProjection()
	for i := int64(1); i <= 5; i++ {
		p.AddEntry(BidHistoryEntry{Sequence: i, AuctionID: "a1", BidderAccount: "b1", Amount: i * 100, Action: "escrow"})
	}
	p.AddEntry(BidHistoryEntry{Sequence: 6, AuctionID: "a2", BidderAccount: "b1", Amount: 999, Action: "escrow"})

	got := p.QueryByAuction("a1", 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Sequence != 5 || got[2].Sequence != 3 {
		t.Errorf("expected newest-first order, got sequences %d..%d", got[0].Sequence, got[2].Sequence)
	}
	for _, e := range got {
		if e.AuctionID != "a1" {
			t.Errorf("entry from wrong auction: %s", e.AuctionID)
		}
	}
}

func TestQueryByBidderFiltersAccount(t *testing.T) {
	p := NewBidHistoryProjection()
	p.AddEntry(BidHistoryEntry{Sequence: 1, AuctionID: "a1", BidderAccount: "b1", Action: "escrow"})
	p.AddEntry(BidHistoryEntry{Sequence: 2, AuctionID: "a1", BidderAccount: "b2", Action: "escrow"})
	p.AddEntry(BidHistoryEntry{Sequence: 3, AuctionID: "a2", BidderAccount: "b1", Action: "refund"})

	got := p.QueryByBidder("b1", 10)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Sequence != 3 || got[1].Sequence != 1 {
		t.Error("expected newest-first entries for b1")
	}
}

func TestQueryEmptyProjection(t *testing.T) {
	p := NewBidHistoryProjection()
	if got := p.QueryByAuction("missing", 10); len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}
