package ingestion_test

import (
	"AuctionLedger/internal/event"
	"AuctionLedger/internal/ingestion"
	"AuctionLedger/internal/settlement"
	"encoding/json"
	"testing"
	"time"
)

func rawFromJSON(t *testing.T, v interface{}) ingestion.RawEvent {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return ingestion.RawEvent{
		Subject:   "test",
		Data:      data,
		Timestamp: time.Now(),
		AckFunc:   func() {},
		NakFunc:   func() {},
	}
}

func TestParseAuctionCreate(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":       "550e8400-e29b-41d4-a716-446655440000",
		"authority":        "660e8400-e29b-41d4-a716-446655440001",
		"resource":         "770e8400-e29b-41d4-a716-446655440002",
		"settlement_asset": "USDC",
		"winner_cap":       int64(3),
		"hard_end_secs":    int64(86400),
		"end_gap_secs":     int64(600),
		"price_floor":      int64(1_000),
		"buy_now_price":    int64(50_000),
		"sequence":         int64(0),
		"timestamp_us":     int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "AuctionCreate")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	ac, ok := evt.(*event.AuctionCreateEvent)
	if !ok {
		t.Fatalf("expected *event.AuctionCreateEvent, got %T", evt)
	}

	if ac.SettlementAsset != "USDC" {
		t.Errorf("settlement_asset: got %s, want USDC", ac.SettlementAsset)
	}
	if ac.WinnerCap != 3 {
		t.Errorf("winner_cap: got %d, want 3", ac.WinnerCap)
	}
	if ac.HardEndSecs == nil || *ac.HardEndSecs != 86400 {
		t.Errorf("hard_end_secs: got %v, want 86400", ac.HardEndSecs)
	}
	if ac.BuyNowPrice == nil || *ac.BuyNowPrice != 50_000 {
		t.Errorf("buy_now_price: got %v, want 50_000", ac.BuyNowPrice)
	}
	if ac.EventType() != event.EventTypeAuctionCreate {
		t.Errorf("event type: got %v, want AuctionCreate", ac.EventType())
	}
	if ac.AuctionID() != nil {
		t.Error("create should not carry an auction id")
	}
}

func TestParseAuctionCreate_OptionalFieldsAbsent(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":       "550e8400-e29b-41d4-a716-446655440000",
		"authority":        "660e8400-e29b-41d4-a716-446655440001",
		"resource":         "770e8400-e29b-41d4-a716-446655440002",
		"settlement_asset": "USDC",
		"winner_cap":       int64(0),
		"price_floor":      int64(0),
		"sequence":         int64(0),
		"timestamp_us":     int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "AuctionCreate")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ac := evt.(*event.AuctionCreateEvent)
	if ac.HardEndSecs != nil || ac.EndGapSecs != nil || ac.BuyNowPrice != nil {
		t.Error("absent optional fields must parse as nil")
	}
}

func TestParseBidPlace(t *testing.T) {
	payload := map[string]interface{}{
		"bid_id":       "550e8400-e29b-41d4-a716-446655440000",
		"bidder":       "660e8400-e29b-41d4-a716-446655440001",
		"auction":      "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4",
		"amount":       int64(10_000),
		"sequence":     int64(7),
		"timestamp_us": int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "BidPlace")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	bp, ok := evt.(*event.BidPlaceEvent)
	if !ok {
		t.Fatalf("expected *event.BidPlaceEvent, got %T", evt)
	}

	if bp.Amount != 10_000 {
		t.Errorf("amount: got %d, want 10_000", bp.Amount)
	}
	if bp.SourceSequence() != 7 {
		t.Errorf("sequence: got %d, want 7", bp.SourceSequence())
	}
	if bp.AuctionID() == nil || *bp.AuctionID() != payload["auction"] {
		t.Errorf("auction id: got %v", bp.AuctionID())
	}
	if !bp.Timestamp.Equal(time.UnixMicro(1700000000000000)) {
		t.Errorf("timestamp: got %v", bp.Timestamp)
	}
}

func TestParseBidClaim_WithReferrer(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":       "550e8400-e29b-41d4-a716-446655440000",
		"authority":        "660e8400-e29b-41d4-a716-446655440001",
		"auction":          "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4",
		"bidder":           "770e8400-e29b-41d4-a716-446655440002",
		"fee_basis_points": int64(500),
		"referrer":         "880e8400-e29b-41d4-a716-446655440003",
		"sequence":         int64(9),
		"timestamp_us":     int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "BidClaim")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	bc := evt.(*event.BidClaimEvent)
	if bc.FeeBasisPoints != 500 {
		t.Errorf("fee_basis_points: got %d, want 500", bc.FeeBasisPoints)
	}
	if bc.Referrer == nil || bc.Referrer.String() != "880e8400-e29b-41d4-a716-446655440003" {
		t.Errorf("referrer: got %v", bc.Referrer)
	}
}

func TestParseBidClaim_NoReferrer(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":       "550e8400-e29b-41d4-a716-446655440000",
		"authority":        "660e8400-e29b-41d4-a716-446655440001",
		"auction":          "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4",
		"bidder":           "770e8400-e29b-41d4-a716-446655440002",
		"fee_basis_points": int64(500),
		"sequence":         int64(9),
		"timestamp_us":     int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "BidClaim")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if evt.(*event.BidClaimEvent).Referrer != nil {
		t.Error("absent referrer must parse as nil")
	}
}

func TestParseSettlementInit(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":                 "550e8400-e29b-41d4-a716-446655440000",
		"authority":                  "660e8400-e29b-41d4-a716-446655440001",
		"auction":                    "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4",
		"vault":                      "770e8400-e29b-41d4-a716-446655440002",
		"open_winner_constraint":     int32(settlement.WinnerConstraintGranted),
		"open_non_winner_constraint": int32(settlement.NonWinnerConstraintFixedPrice),
		"open_distribution_pool":     uint8(2),
		"open_distribution_price":    int64(250),
		"prize_configs": []map[string]interface{}{
			{"prize_index": uint8(0), "quantity": int64(1), "kind": int32(settlement.PrizeKindMasterRecord)},
			{"prize_index": uint8(1), "quantity": int64(3), "kind": int32(settlement.PrizeKindDirect)},
		},
		"sequence":     int64(4),
		"timestamp_us": int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "SettlementInit")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	si, ok := evt.(*event.SettlementInitEvent)
	if !ok {
		t.Fatalf("expected *event.SettlementInitEvent, got %T", evt)
	}

	if len(si.PrizeConfigs) != 2 {
		t.Fatalf("prize_configs: got %d entries, want 2", len(si.PrizeConfigs))
	}
	if si.PrizeConfigs[0].Kind != int32(settlement.PrizeKindMasterRecord) {
		t.Errorf("config 0 kind: got %d, want MasterRecord", si.PrizeConfigs[0].Kind)
	}
	if si.PrizeConfigs[1].Quantity != 3 {
		t.Errorf("config 1 quantity: got %d, want 3", si.PrizeConfigs[1].Quantity)
	}
	if si.OpenDistributionPool == nil || *si.OpenDistributionPool != 2 {
		t.Errorf("open_distribution_pool: got %v, want 2", si.OpenDistributionPool)
	}
	if si.OpenDistributionPrice == nil || *si.OpenDistributionPrice != 250 {
		t.Errorf("open_distribution_price: got %v, want 250", si.OpenDistributionPrice)
	}
}

func TestParseMasterRedeem(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":    "550e8400-e29b-41d4-a716-446655440000",
		"bidder":        "660e8400-e29b-41d4-a716-446655440001",
		"auction":       "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4",
		"prize_index":   uint8(0),
		"new_authority": "770e8400-e29b-41d4-a716-446655440002",
		"sequence":      int64(12),
		"timestamp_us":  int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "MasterRedeem")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	mr := evt.(*event.MasterRedeemEvent)
	if mr.NewAuthority.String() != "770e8400-e29b-41d4-a716-446655440002" {
		t.Errorf("new_authority: got %s", mr.NewAuthority)
	}
}

func TestParseVaultPoolAdd(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":   "550e8400-e29b-41d4-a716-446655440000",
		"authority":    "660e8400-e29b-41d4-a716-446655440001",
		"vault":        "770e8400-e29b-41d4-a716-446655440002",
		"pool_index":   uint8(1),
		"metadata":     "880e8400-e29b-41d4-a716-446655440003",
		"amount":       int64(10),
		"sequence":     int64(2),
		"timestamp_us": int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "VaultPoolAdd")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	va := evt.(*event.VaultPoolAddEvent)
	if va.PoolIndex != 1 {
		t.Errorf("pool_index: got %d, want 1", va.PoolIndex)
	}
	if va.Amount != 10 {
		t.Errorf("amount: got %d, want 10", va.Amount)
	}
	if va.AuctionID() != nil {
		t.Error("vault events are globally partitioned")
	}
}

func TestParseStoreSet(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":   "550e8400-e29b-41d4-a716-446655440000",
		"authority":    "660e8400-e29b-41d4-a716-446655440001",
		"public":       true,
		"sequence":     int64(0),
		"timestamp_us": int64(1700000000000000),
	}

	raw := rawFromJSON(t, payload)
	evt, err := ingestion.ParseRawEvent(raw, "StoreSet")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !evt.(*event.StoreSetEvent).Public {
		t.Error("public: got false, want true")
	}
}

func TestParseUnknownEventType_Fails(t *testing.T) {
	raw := ingestion.RawEvent{Data: []byte(`{}`)}
	_, err := ingestion.ParseRawEvent(raw, "NonExistentType")
	if err == nil {
		t.Fatal("expected error for unknown event type")
	}
}

func TestParseInvalidJSON_Fails(t *testing.T) {
	raw := ingestion.RawEvent{Data: []byte(`{invalid json`)}
	_, err := ingestion.ParseRawEvent(raw, "BidPlace")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseInvalidUUID_Fails(t *testing.T) {
	payload := map[string]interface{}{
		"bid_id":       "not-a-uuid",
		"bidder":       "also-not-a-uuid",
		"auction":      "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4",
		"amount":       int64(1),
		"sequence":     int64(0),
		"timestamp_us": int64(0),
	}

	raw := rawFromJSON(t, payload)
	_, err := ingestion.ParseRawEvent(raw, "BidPlace")
	if err == nil {
		t.Fatal("expected error for invalid UUID")
	}
}
