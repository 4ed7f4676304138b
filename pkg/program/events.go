package program

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Event is implemented by every program event.
type Event interface {
	EventName() string
}

type SubscriptionCreatedEvent struct {
	DataProvider solana.PublicKey
	Subscriber   solana.PublicKey
	Recipient    string
	EndTime      int64
	Timestamp    int64
}

type SubscriptionRenewedEvent struct {
	DataProvider solana.PublicKey
	Subscriber   solana.PublicKey
	NewRecipient string
	NewEndTime   int64
	Timestamp    int64
}

type SubscriptionCancelledEvent struct {
	DataProvider solana.PublicKey
	Subscriber   solana.PublicKey
}

type SubscriptionEndedEvent struct {
	DataProvider solana.PublicKey
	Subscriber   solana.PublicKey
}

type QualityProvidedEvent struct {
	DataProvider solana.PublicKey
	Subscriber   solana.PublicKey
	Quality      uint8
}

type FeePerDayUpdatedEvent struct {
	NewFeePerDay uint64
}

type CollectorFeeUpdatedEvent struct {
	NewCollectorFee uint64
}

func (*SubscriptionCreatedEvent) EventName() string   { return "SubscriptionCreatedEvent" }
func (*SubscriptionRenewedEvent) EventName() string   { return "SubscriptionRenewedEvent" }
func (*SubscriptionCancelledEvent) EventName() string { return "SubscriptionCancelledEvent" }
func (*SubscriptionEndedEvent) EventName() string     { return "SubscriptionEndedEvent" }
func (*QualityProvidedEvent) EventName() string       { return "QualityProvidedEvent" }
func (*FeePerDayUpdatedEvent) EventName() string      { return "FeePerDayUpdatedEvent" }
func (*CollectorFeeUpdatedEvent) EventName() string   { return "CollectorFeeUpdatedEvent" }

var eventFactories = map[Discriminator]func() Event{
	EvSubscriptionCreated:   func() Event { return new(SubscriptionCreatedEvent) },
	EvSubscriptionRenewed:   func() Event { return new(SubscriptionRenewedEvent) },
	EvSubscriptionCancelled: func() Event { return new(SubscriptionCancelledEvent) },
	EvSubscriptionEnded:     func() Event { return new(SubscriptionEndedEvent) },
	EvQualityProvided:       func() Event { return new(QualityProvidedEvent) },
	EvFeePerDayUpdated:      func() Event { return new(FeePerDayUpdatedEvent) },
	EvCollectorFeeUpdated:   func() Event { return new(CollectorFeeUpdatedEvent) },
}

const programDataPrefix = "Program data: "

// DecodeEvent decodes one event payload (discriminator + borsh body).
// It returns (nil, nil) for payloads that are not events of this program.
func DecodeEvent(data []byte) (Event, error) {
	if len(data) < 8 {
		return nil, nil
	}
	var disc Discriminator
	copy(disc[:], data[:8])
	factory, ok := eventFactories[disc]
	if !ok {
		return nil, nil
	}
	ev := factory()
	if err := bin.NewBorshDecoder(data[8:]).Decode(ev); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ev.EventName(), err)
	}
	return ev, nil
}

// EncodeEvent serializes ev the way the program emits it.
func EncodeEvent(disc Discriminator, ev Event) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(buf).Encode(ev); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ev.EventName(), err)
	}
	return buf.Bytes(), nil
}

// ParseEventLogs extracts program events from transaction log messages.
// Lines that are not "Program data:" records, or carry foreign events,
// are skipped.
func ParseEventLogs(logs []string) ([]Event, error) {
	var events []Event
	for _, line := range logs {
		payload, ok := strings.CutPrefix(line, programDataPrefix)
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to decode program data: %w", err)
		}
		ev, err := DecodeEvent(raw)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events, nil
}
