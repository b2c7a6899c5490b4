package event

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a typed event payload for the event log
func Encode(evt Event) []byte {
	data, err := json.Marshal(evt)
	if err != nil {
		panic(fmt.Sprintf("FATAL: event payload marshal: %v", err))
	}
	return data
}

// Decode reconstructs a typed event from a stored payload. Used during
// startup replay.
func Decode(eventType EventType, payload []byte) (Event, error) {
	var evt Event
	switch eventType {
	case EventTypeAuctionCreate:
		evt = &AuctionCreateEvent{}
	case EventTypeAuctionStart:
		evt = &AuctionStartEvent{}
	case EventTypeAuctionEnd:
		evt = &AuctionEndEvent{}
	case EventTypeBidPlace:
		evt = &BidPlaceEvent{}
	case EventTypeBidCancel:
		evt = &BidCancelEvent{}
	case EventTypeBidClaim:
		evt = &BidClaimEvent{}
	case EventTypePotClose:
		evt = &PotCloseEvent{}
	case EventTypeSettlementInit:
		evt = &SettlementInitEvent{}
	case EventTypePrizeValidate:
		evt = &PrizeValidateEvent{}
	case EventTypeOpenDistributionValidate:
		evt = &OpenDistributionValidateEvent{}
	case EventTypePrizeRedeem:
		evt = &PrizeRedeemEvent{}
	case EventTypeMasterRedeem:
		evt = &MasterRedeemEvent{}
	case EventTypeOpenDistributionRedeem:
		evt = &OpenDistributionRedeemEvent{}
	case EventTypePaymentAccountEmpty:
		evt = &PaymentAccountEmptyEvent{}
	case EventTypeCreatorWhitelistSet:
		evt = &CreatorWhitelistSetEvent{}
	case EventTypeStoreSet:
		evt = &StoreSetEvent{}
	case EventTypeVaultPoolAdd:
		evt = &VaultPoolAddEvent{}
	case EventTypeMetadataRegister:
		evt = &MetadataRegisterEvent{}
	default:
		return nil, fmt.Errorf("unknown event type %d", eventType)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", eventType, err)
	}
	return evt, nil
}
