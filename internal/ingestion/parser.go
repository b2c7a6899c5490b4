package ingestion

import (
	"AuctionLedger/internal/event"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ParseRawEvent converts a RawEvent (JSON bytes + event type string)
// into a typed event.Event. The ingestion shell validates, parses, and
// converts raw events before sending them to the deterministic core.
func ParseRawEvent(raw RawEvent, eventType string) (event.Event, error) {
	switch eventType {
	case "AuctionCreate":
		return parseAuctionCreate(raw.Data)
	case "AuctionStart":
		return parseAuctionStart(raw.Data)
	case "AuctionEnd":
		return parseAuctionEnd(raw.Data)
	case "BidPlace":
		return parseBidPlace(raw.Data)
	case "BidCancel":
		return parseBidCancel(raw.Data)
	case "BidClaim":
		return parseBidClaim(raw.Data)
	case "PotClose":
		return parsePotClose(raw.Data)
	case "SettlementInit":
		return parseSettlementInit(raw.Data)
	case "PrizeValidate":
		return parsePrizeValidate(raw.Data)
	case "OpenDistributionValidate":
		return parseOpenDistributionValidate(raw.Data)
	case "PrizeRedeem":
		return parsePrizeRedeem(raw.Data)
	case "MasterRedeem":
		return parseMasterRedeem(raw.Data)
	case "OpenDistributionRedeem":
		return parseOpenDistributionRedeem(raw.Data)
	case "PaymentAccountEmpty":
		return parsePaymentAccountEmpty(raw.Data)
	case "CreatorWhitelistSet":
		return parseCreatorWhitelistSet(raw.Data)
	case "StoreSet":
		return parseStoreSet(raw.Data)
	case "VaultPoolAdd":
		return parseVaultPoolAdd(raw.Data)
	case "MetadataRegister":
		return parseMetadataRegister(raw.Data)
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}
}

// --- JSON wire formats ---
// These structs represent the JSON payloads received from NATS.
// Field names use snake_case to match upstream producers.

type auctionCreateJSON struct {
	RequestID       string `json:"request_id"`
	Authority       string `json:"authority"`
	Resource        string `json:"resource"`
	SettlementAsset string `json:"settlement_asset"`
	WinnerCap       int64  `json:"winner_cap"`
	HardEndSecs     *int64 `json:"hard_end_secs,omitempty"`
	EndGapSecs      *int64 `json:"end_gap_secs,omitempty"`
	PriceFloor      int64  `json:"price_floor"`
	BuyNowPrice     *int64 `json:"buy_now_price,omitempty"`
	Sequence        int64  `json:"sequence"`
	TimestampUs     int64  `json:"timestamp_us"`
}

func parseAuctionCreate(data []byte) (*event.AuctionCreateEvent, error) {
	var j auctionCreateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse AuctionCreate: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	resource, err := uuid.Parse(j.Resource)
	if err != nil {
		return nil, fmt.Errorf("parse resource: %w", err)
	}
	return &event.AuctionCreateEvent{
		RequestID:       requestID,
		Authority:       authority,
		Resource:        resource,
		SettlementAsset: j.SettlementAsset,
		WinnerCap:       j.WinnerCap,
		HardEndSecs:     j.HardEndSecs,
		EndGapSecs:      j.EndGapSecs,
		PriceFloor:      j.PriceFloor,
		BuyNowPrice:     j.BuyNowPrice,
		Sequence:        j.Sequence,
		Timestamp:       time.UnixMicro(j.TimestampUs),
	}, nil
}

type lifecycleJSON struct {
	RequestID   string `json:"request_id"`
	Authority   string `json:"authority"`
	Auction     string `json:"auction"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func (j lifecycleJSON) ids() (uuid.UUID, uuid.UUID, error) {
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse authority: %w", err)
	}
	return requestID, authority, nil
}

func parseAuctionStart(data []byte) (*event.AuctionStartEvent, error) {
	var j lifecycleJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse AuctionStart: %w", err)
	}
	requestID, authority, err := j.ids()
	if err != nil {
		return nil, err
	}
	return &event.AuctionStartEvent{
		RequestID: requestID,
		Authority: authority,
		Auction:   j.Auction,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

func parseAuctionEnd(data []byte) (*event.AuctionEndEvent, error) {
	var j lifecycleJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse AuctionEnd: %w", err)
	}
	requestID, authority, err := j.ids()
	if err != nil {
		return nil, err
	}
	return &event.AuctionEndEvent{
		RequestID: requestID,
		Authority: authority,
		Auction:   j.Auction,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type bidPlaceJSON struct {
	BidID       string `json:"bid_id"`
	Bidder      string `json:"bidder"`
	Auction     string `json:"auction"`
	Amount      int64  `json:"amount"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func parseBidPlace(data []byte) (*event.BidPlaceEvent, error) {
	var j bidPlaceJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse BidPlace: %w", err)
	}
	bidID, err := uuid.Parse(j.BidID)
	if err != nil {
		return nil, fmt.Errorf("parse bid_id: %w", err)
	}
	bidder, err := uuid.Parse(j.Bidder)
	if err != nil {
		return nil, fmt.Errorf("parse bidder: %w", err)
	}
	return &event.BidPlaceEvent{
		BidID:     bidID,
		Bidder:    bidder,
		Auction:   j.Auction,
		Amount:    j.Amount,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type bidCancelJSON struct {
	RequestID   string `json:"request_id"`
	Bidder      string `json:"bidder"`
	Auction     string `json:"auction"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func parseBidCancel(data []byte) (*event.BidCancelEvent, error) {
	var j bidCancelJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse BidCancel: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	bidder, err := uuid.Parse(j.Bidder)
	if err != nil {
		return nil, fmt.Errorf("parse bidder: %w", err)
	}
	return &event.BidCancelEvent{
		RequestID: requestID,
		Bidder:    bidder,
		Auction:   j.Auction,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type bidClaimJSON struct {
	RequestID      string  `json:"request_id"`
	Authority      string  `json:"authority"`
	Auction        string  `json:"auction"`
	Bidder         string  `json:"bidder"`
	FeeBasisPoints int64   `json:"fee_basis_points"`
	Referrer       *string `json:"referrer,omitempty"`
	Sequence       int64   `json:"sequence"`
	TimestampUs    int64   `json:"timestamp_us"`
}

func parseBidClaim(data []byte) (*event.BidClaimEvent, error) {
	var j bidClaimJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse BidClaim: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	bidder, err := uuid.Parse(j.Bidder)
	if err != nil {
		return nil, fmt.Errorf("parse bidder: %w", err)
	}
	var referrer *uuid.UUID
	if j.Referrer != nil {
		r, err := uuid.Parse(*j.Referrer)
		if err != nil {
			return nil, fmt.Errorf("parse referrer: %w", err)
		}
		referrer = &r
	}
	return &event.BidClaimEvent{
		RequestID:      requestID,
		Authority:      authority,
		Auction:        j.Auction,
		Bidder:         bidder,
		FeeBasisPoints: j.FeeBasisPoints,
		Referrer:       referrer,
		Sequence:       j.Sequence,
		Timestamp:      time.UnixMicro(j.TimestampUs),
	}, nil
}

type potCloseJSON struct {
	RequestID   string `json:"request_id"`
	Authority   string `json:"authority"`
	Auction     string `json:"auction"`
	Bidder      string `json:"bidder"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func parsePotClose(data []byte) (*event.PotCloseEvent, error) {
	var j potCloseJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse PotClose: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	bidder, err := uuid.Parse(j.Bidder)
	if err != nil {
		return nil, fmt.Errorf("parse bidder: %w", err)
	}
	return &event.PotCloseEvent{
		RequestID: requestID,
		Authority: authority,
		Auction:   j.Auction,
		Bidder:    bidder,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type prizeConfigJSON struct {
	PrizeIndex uint8 `json:"prize_index"`
	Quantity   int64 `json:"quantity"`
	Kind       int32 `json:"kind"`
}

type settlementInitJSON struct {
	RequestID               string            `json:"request_id"`
	Authority               string            `json:"authority"`
	Auction                 string            `json:"auction"`
	Vault                   string            `json:"vault"`
	OpenWinnerConstraint    int32             `json:"open_winner_constraint"`
	OpenNonWinnerConstraint int32             `json:"open_non_winner_constraint"`
	OpenDistributionPool    *uint8            `json:"open_distribution_pool,omitempty"`
	OpenDistributionPrice   *int64            `json:"open_distribution_price,omitempty"`
	PrizeConfigs            []prizeConfigJSON `json:"prize_configs"`
	Sequence                int64             `json:"sequence"`
	TimestampUs             int64             `json:"timestamp_us"`
}

func parseSettlementInit(data []byte) (*event.SettlementInitEvent, error) {
	var j settlementInitJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse SettlementInit: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	vaultID, err := uuid.Parse(j.Vault)
	if err != nil {
		return nil, fmt.Errorf("parse vault: %w", err)
	}

	configs := make([]event.PrizeConfigSpec, 0, len(j.PrizeConfigs))
	for _, cfg := range j.PrizeConfigs {
		configs = append(configs, event.PrizeConfigSpec{
			PrizeIndex: cfg.PrizeIndex,
			Quantity:   cfg.Quantity,
			Kind:       cfg.Kind,
		})
	}

	return &event.SettlementInitEvent{
		RequestID:               requestID,
		Authority:               authority,
		Auction:                 j.Auction,
		Vault:                   vaultID,
		OpenWinnerConstraint:    j.OpenWinnerConstraint,
		OpenNonWinnerConstraint: j.OpenNonWinnerConstraint,
		OpenDistributionPool:    j.OpenDistributionPool,
		OpenDistributionPrice:   j.OpenDistributionPrice,
		PrizeConfigs:            configs,
		Sequence:                j.Sequence,
		Timestamp:               time.UnixMicro(j.TimestampUs),
	}, nil
}

type prizeValidateJSON struct {
	RequestID   string `json:"request_id"`
	Authority   string `json:"authority"`
	Auction     string `json:"auction"`
	PrizeIndex  uint8  `json:"prize_index"`
	Metadata    string `json:"metadata"`
	Creator     string `json:"creator"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func (j prizeValidateJSON) parsed() (requestID, authority, metadataID, creator uuid.UUID, err error) {
	if requestID, err = uuid.Parse(j.RequestID); err != nil {
		err = fmt.Errorf("parse request_id: %w", err)
		return
	}
	if authority, err = uuid.Parse(j.Authority); err != nil {
		err = fmt.Errorf("parse authority: %w", err)
		return
	}
	if metadataID, err = uuid.Parse(j.Metadata); err != nil {
		err = fmt.Errorf("parse metadata: %w", err)
		return
	}
	if creator, err = uuid.Parse(j.Creator); err != nil {
		err = fmt.Errorf("parse creator: %w", err)
	}
	return
}

func parsePrizeValidate(data []byte) (*event.PrizeValidateEvent, error) {
	var j prizeValidateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse PrizeValidate: %w", err)
	}
	requestID, authority, metadataID, creator, err := j.parsed()
	if err != nil {
		return nil, err
	}
	return &event.PrizeValidateEvent{
		RequestID:  requestID,
		Authority:  authority,
		Auction:    j.Auction,
		PrizeIndex: j.PrizeIndex,
		Metadata:   metadataID,
		Creator:    creator,
		Sequence:   j.Sequence,
		Timestamp:  time.UnixMicro(j.TimestampUs),
	}, nil
}

func parseOpenDistributionValidate(data []byte) (*event.OpenDistributionValidateEvent, error) {
	var j prizeValidateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse OpenDistributionValidate: %w", err)
	}
	requestID, authority, metadataID, creator, err := j.parsed()
	if err != nil {
		return nil, err
	}
	return &event.OpenDistributionValidateEvent{
		RequestID: requestID,
		Authority: authority,
		Auction:   j.Auction,
		Metadata:  metadataID,
		Creator:   creator,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type prizeRedeemJSON struct {
	RequestID    string `json:"request_id"`
	Bidder       string `json:"bidder"`
	Auction      string `json:"auction"`
	PrizeIndex   uint8  `json:"prize_index"`
	NewAuthority string `json:"new_authority,omitempty"`
	Sequence     int64  `json:"sequence"`
	TimestampUs  int64  `json:"timestamp_us"`
}

func parsePrizeRedeem(data []byte) (*event.PrizeRedeemEvent, error) {
	var j prizeRedeemJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse PrizeRedeem: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	bidder, err := uuid.Parse(j.Bidder)
	if err != nil {
		return nil, fmt.Errorf("parse bidder: %w", err)
	}
	return &event.PrizeRedeemEvent{
		RequestID:  requestID,
		Bidder:     bidder,
		Auction:    j.Auction,
		PrizeIndex: j.PrizeIndex,
		Sequence:   j.Sequence,
		Timestamp:  time.UnixMicro(j.TimestampUs),
	}, nil
}

func parseMasterRedeem(data []byte) (*event.MasterRedeemEvent, error) {
	var j prizeRedeemJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse MasterRedeem: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	bidder, err := uuid.Parse(j.Bidder)
	if err != nil {
		return nil, fmt.Errorf("parse bidder: %w", err)
	}
	newAuthority, err := uuid.Parse(j.NewAuthority)
	if err != nil {
		return nil, fmt.Errorf("parse new_authority: %w", err)
	}
	return &event.MasterRedeemEvent{
		RequestID:    requestID,
		Bidder:       bidder,
		Auction:      j.Auction,
		PrizeIndex:   j.PrizeIndex,
		NewAuthority: newAuthority,
		Sequence:     j.Sequence,
		Timestamp:    time.UnixMicro(j.TimestampUs),
	}, nil
}

func parseOpenDistributionRedeem(data []byte) (*event.OpenDistributionRedeemEvent, error) {
	var j prizeRedeemJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse OpenDistributionRedeem: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	bidder, err := uuid.Parse(j.Bidder)
	if err != nil {
		return nil, fmt.Errorf("parse bidder: %w", err)
	}
	return &event.OpenDistributionRedeemEvent{
		RequestID: requestID,
		Bidder:    bidder,
		Auction:   j.Auction,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type paymentEmptyJSON struct {
	RequestID   string `json:"request_id"`
	Authority   string `json:"authority"`
	Auction     string `json:"auction"`
	Destination string `json:"destination"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func parsePaymentAccountEmpty(data []byte) (*event.PaymentAccountEmptyEvent, error) {
	var j paymentEmptyJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse PaymentAccountEmpty: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	destination, err := uuid.Parse(j.Destination)
	if err != nil {
		return nil, fmt.Errorf("parse destination: %w", err)
	}
	return &event.PaymentAccountEmptyEvent{
		RequestID:   requestID,
		Authority:   authority,
		Auction:     j.Auction,
		Destination: destination,
		Sequence:    j.Sequence,
		Timestamp:   time.UnixMicro(j.TimestampUs),
	}, nil
}

type whitelistSetJSON struct {
	RequestID   string `json:"request_id"`
	Authority   string `json:"authority"`
	Creator     string `json:"creator"`
	Activated   bool   `json:"activated"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func parseCreatorWhitelistSet(data []byte) (*event.CreatorWhitelistSetEvent, error) {
	var j whitelistSetJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse CreatorWhitelistSet: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	creator, err := uuid.Parse(j.Creator)
	if err != nil {
		return nil, fmt.Errorf("parse creator: %w", err)
	}
	return &event.CreatorWhitelistSetEvent{
		RequestID: requestID,
		Authority: authority,
		Creator:   creator,
		Activated: j.Activated,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type storeSetJSON struct {
	RequestID   string `json:"request_id"`
	Authority   string `json:"authority"`
	Public      bool   `json:"public"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func parseStoreSet(data []byte) (*event.StoreSetEvent, error) {
	var j storeSetJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse StoreSet: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	return &event.StoreSetEvent{
		RequestID: requestID,
		Authority: authority,
		Public:    j.Public,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type vaultPoolAddJSON struct {
	RequestID   string `json:"request_id"`
	Authority   string `json:"authority"`
	Vault       string `json:"vault"`
	PoolIndex   uint8  `json:"pool_index"`
	Metadata    string `json:"metadata"`
	Amount      int64  `json:"amount"`
	Sequence    int64  `json:"sequence"`
	TimestampUs int64  `json:"timestamp_us"`
}

func parseVaultPoolAdd(data []byte) (*event.VaultPoolAddEvent, error) {
	var j vaultPoolAddJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse VaultPoolAdd: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	vaultID, err := uuid.Parse(j.Vault)
	if err != nil {
		return nil, fmt.Errorf("parse vault: %w", err)
	}
	metadataID, err := uuid.Parse(j.Metadata)
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &event.VaultPoolAddEvent{
		RequestID: requestID,
		Authority: authority,
		Vault:     vaultID,
		PoolIndex: j.PoolIndex,
		Metadata:  metadataID,
		Amount:    j.Amount,
		Sequence:  j.Sequence,
		Timestamp: time.UnixMicro(j.TimestampUs),
	}, nil
}

type metadataRegisterJSON struct {
	RequestID     string `json:"request_id"`
	Authority     string `json:"authority"`
	Metadata      string `json:"metadata"`
	Creator       string `json:"creator"`
	Name          string `json:"name"`
	MaxSupply     *int64 `json:"max_supply,omitempty"`
	CurrentSupply int64  `json:"current_supply"`
	Sequence      int64  `json:"sequence"`
	TimestampUs   int64  `json:"timestamp_us"`
}

func parseMetadataRegister(data []byte) (*event.MetadataRegisterEvent, error) {
	var j metadataRegisterJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse MetadataRegister: %w", err)
	}
	requestID, err := uuid.Parse(j.RequestID)
	if err != nil {
		return nil, fmt.Errorf("parse request_id: %w", err)
	}
	authority, err := uuid.Parse(j.Authority)
	if err != nil {
		return nil, fmt.Errorf("parse authority: %w", err)
	}
	metadataID, err := uuid.Parse(j.Metadata)
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	creator, err := uuid.Parse(j.Creator)
	if err != nil {
		return nil, fmt.Errorf("parse creator: %w", err)
	}
	return &event.MetadataRegisterEvent{
		RequestID:     requestID,
		Authority:     authority,
		Metadata:      metadataID,
		Creator:       creator,
		Name:          j.Name,
		MaxSupply:     j.MaxSupply,
		CurrentSupply: j.CurrentSupply,
		Sequence:      j.Sequence,
		Timestamp:     time.UnixMicro(j.TimestampUs),
	}, nil
}
