package ingestion

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSSubscriber subscribes to NATS JetStream subjects and feeds events
// into the deterministic core via the eventChan. NATS is the primary
// high-throughput ingestion surface; each event type has its own
// subject so consumers scale independently.
type NATSSubscriber struct {
	js        jetstream.JetStream
	eventChan chan<- RawEvent
	consumers []jetstream.ConsumeContext
}

// RawEvent is the parsed-but-untyped event from NATS, ready for the shell
// to validate and convert into a typed event.Event before sending to the core.
type RawEvent struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	AckFunc   func() // Call to ACK the NATS message after successful processing
	NakFunc   func() // Call to NAK on failure (will be redelivered)
}

// SubjectConfig maps NATS subjects to event types
type SubjectConfig struct {
	Subject      string
	EventType    string
	ConsumerName string
	StreamName   string
}

// DefaultSubjects returns the standard subject configuration.
// Publishers append the auction address as the subject tail, which
// keeps per-auction ordering within a subject.
func DefaultSubjects() []SubjectConfig {
	return []SubjectConfig{
		{Subject: "auction.lifecycle.create.>", EventType: "AuctionCreate", ConsumerName: "ledger-auction-create", StreamName: "AUCTION_LIFECYCLE"},
		{Subject: "auction.lifecycle.start.>", EventType: "AuctionStart", ConsumerName: "ledger-auction-start", StreamName: "AUCTION_LIFECYCLE"},
		{Subject: "auction.lifecycle.end.>", EventType: "AuctionEnd", ConsumerName: "ledger-auction-end", StreamName: "AUCTION_LIFECYCLE"},
		{Subject: "auction.bids.place.>", EventType: "BidPlace", ConsumerName: "ledger-bid-place", StreamName: "AUCTION_BIDS"},
		{Subject: "auction.bids.cancel.>", EventType: "BidCancel", ConsumerName: "ledger-bid-cancel", StreamName: "AUCTION_BIDS"},
		{Subject: "auction.claims.bid.>", EventType: "BidClaim", ConsumerName: "ledger-bid-claim", StreamName: "AUCTION_CLAIMS"},
		{Subject: "auction.claims.potclose.>", EventType: "PotClose", ConsumerName: "ledger-pot-close", StreamName: "AUCTION_CLAIMS"},
		{Subject: "auction.claims.payment.>", EventType: "PaymentAccountEmpty", ConsumerName: "ledger-payment-empty", StreamName: "AUCTION_CLAIMS"},
		{Subject: "auction.settlement.init.>", EventType: "SettlementInit", ConsumerName: "ledger-settle-init", StreamName: "AUCTION_SETTLEMENT"},
		{Subject: "auction.settlement.prize.>", EventType: "PrizeValidate", ConsumerName: "ledger-prize-validate", StreamName: "AUCTION_SETTLEMENT"},
		{Subject: "auction.settlement.open.>", EventType: "OpenDistributionValidate", ConsumerName: "ledger-open-validate", StreamName: "AUCTION_SETTLEMENT"},
		{Subject: "auction.redemptions.prize.>", EventType: "PrizeRedeem", ConsumerName: "ledger-prize-redeem", StreamName: "AUCTION_REDEMPTIONS"},
		{Subject: "auction.redemptions.master.>", EventType: "MasterRedeem", ConsumerName: "ledger-master-redeem", StreamName: "AUCTION_REDEMPTIONS"},
		{Subject: "auction.redemptions.open.>", EventType: "OpenDistributionRedeem", ConsumerName: "ledger-open-redeem", StreamName: "AUCTION_REDEMPTIONS"},
		{Subject: "auction.policy.store", EventType: "StoreSet", ConsumerName: "ledger-store-set", StreamName: "AUCTION_POLICY"},
		{Subject: "auction.policy.whitelist.>", EventType: "CreatorWhitelistSet", ConsumerName: "ledger-whitelist-set", StreamName: "AUCTION_POLICY"},
		{Subject: "auction.assets.vault.>", EventType: "VaultPoolAdd", ConsumerName: "ledger-vault-add", StreamName: "AUCTION_ASSETS"},
		{Subject: "auction.assets.metadata.>", EventType: "MetadataRegister", ConsumerName: "ledger-metadata-register", StreamName: "AUCTION_ASSETS"},
	}
}

func NewNATSSubscriber(js jetstream.JetStream, eventChan chan<- RawEvent) *NATSSubscriber {
	return &NATSSubscriber{
		js:        js,
		eventChan: eventChan,
	}
}

// Subscribe creates JetStream consumers for all configured subjects.
// Consumers use explicit ACK, max_deliver=5, ack_wait=30s.
func (ns *NATSSubscriber) Subscribe(ctx context.Context, subjects []SubjectConfig) error {
	for _, cfg := range subjects {
		consumer, err := ns.js.CreateOrUpdateConsumer(ctx, cfg.StreamName, jetstream.ConsumerConfig{
			Durable:       cfg.ConsumerName,
			FilterSubject: cfg.Subject,
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxDeliver:    5,
			DeliverPolicy: jetstream.DeliverAllPolicy,
		})
		if err != nil {
			return fmt.Errorf("create consumer %s: %w", cfg.ConsumerName, err)
		}

		consumerContext, err := consumer.Consume(func(msg jetstream.Msg) {
			raw := RawEvent{
				Subject:   msg.Subject(),
				Data:      msg.Data(),
				Timestamp: time.Now(),
				AckFunc:   func() { msg.Ack() },
				NakFunc:   func() { msg.Nak() },
			}

			select {
			case ns.eventChan <- raw:
				// Successfully queued for processing
			case <-ctx.Done():
				msg.Nak()
			}
		})
		if err != nil {
			return fmt.Errorf("consume %s: %w", cfg.ConsumerName, err)
		}

		ns.consumers = append(ns.consumers, consumerContext)
		log.Printf("INFO: subscribed to %s (consumer=%s)", cfg.Subject, cfg.ConsumerName)
	}

	return nil
}

// EnsureStreams creates the required JetStream streams if they don't
// exist. Streams use FileStorage, retention=Limits, max_age=72h.
func EnsureStreams(ctx context.Context, js jetstream.JetStream) error {
	streams := []jetstream.StreamConfig{
		{
			Name:      "AUCTION_LIFECYCLE",
			Subjects:  []string{"auction.lifecycle.>"},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    72 * time.Hour,
			Replicas:  1,
		},
		{
			Name:      "AUCTION_BIDS",
			Subjects:  []string{"auction.bids.>"},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    72 * time.Hour,
			Replicas:  1,
		},
		{
			Name:      "AUCTION_CLAIMS",
			Subjects:  []string{"auction.claims.>"},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    72 * time.Hour,
			Replicas:  1,
		},
		{
			Name:      "AUCTION_SETTLEMENT",
			Subjects:  []string{"auction.settlement.>"},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    72 * time.Hour,
			Replicas:  1,
		},
		{
			Name:      "AUCTION_REDEMPTIONS",
			Subjects:  []string{"auction.redemptions.>"},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    72 * time.Hour,
			Replicas:  1,
		},
		{
			Name:      "AUCTION_POLICY",
			Subjects:  []string{"auction.policy.>"},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    72 * time.Hour,
			Replicas:  1,
		},
		{
			Name:      "AUCTION_ASSETS",
			Subjects:  []string{"auction.assets.>"},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
			MaxAge:    72 * time.Hour,
			Replicas:  1,
		},
	}

	for _, cfg := range streams {
		if _, err := js.CreateOrUpdateStream(ctx, cfg); err != nil {
			return fmt.Errorf("create stream %s: %w", cfg.Name, err)
		}
		log.Printf("INFO: ensured stream %s", cfg.Name)
	}

	return nil
}

// Stop gracefully stops all consumers.
func (ns *NATSSubscriber) Stop() {
	for _, cc := range ns.consumers {
		cc.Stop()
	}
	log.Println("INFO: NATS subscribers stopped")
}

// ConnectNATS establishes a NATS connection and returns a JetStream context.
func ConnectNATS(url string) (*nats.Conn, jetstream.JetStream, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("WARN: NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Println("INFO: NATS reconnected")
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("jetstream: %w", err)
	}

	return nc, js, nil
}
