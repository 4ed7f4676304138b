// Package model defines the typed parameters, results and pure conversions
// shared by the SDK's Solana and EVM clients: subscription status
// classification, day-count to expiry conversion and fee scaling.
package model

import (
	"github.com/gagliardetto/solana-go"
)

// SubscribeParams describes a new subscription to a data provider.
type SubscribeParams struct {
	DataProvider   solana.PublicKey `json:"data_provider"`
	Recipient      string           `json:"recipient"`
	DurationInDays int64            `json:"duration_in_days"`
}

// RenewParams describes the renewal of an existing subscription. NewEndTime
// is an absolute unix timestamp in seconds; QualityScore is the subscriber's
// rating of the provider (0..100, enforced on chain).
type RenewParams struct {
	DataProvider solana.PublicKey `json:"data_provider"`
	NewRecipient string           `json:"new_recipient"`
	NewEndTime   int64            `json:"new_end_time"`
	QualityScore uint8            `json:"quality_score"`
}

// CancelParams describes cancelling or ending a subscription.
type CancelParams struct {
	DataProvider solana.PublicKey `json:"data_provider"`
	QualityScore uint8            `json:"quality_score"`
}

// AgentParams describes a data provider's agent profile. Fee is expressed
// in whole token units and scaled to base units before submission.
type AgentParams struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	RestrictSubscriptions bool     `json:"restrict_subscriptions"`
	Capabilities          []string `json:"capabilities"`
	Fee                   float64  `json:"fee"`
}

// SetDataProviderFeeParams carries the provider fee in whole token units.
type SetDataProviderFeeParams struct {
	Fee float64 `json:"fee"`
}

// SubscriptionDetails is one decoded subscription together with the
// addresses it links and its derived status.
type SubscriptionDetails struct {
	Subscriber   solana.PublicKey `json:"subscriber"`
	DataProvider solana.PublicKey `json:"data_provider"`
	Address      solana.PublicKey `json:"address"`
	Recipient    string           `json:"recipient"`
	EndTime      int64            `json:"end_time"`
	Status       Status           `json:"status"`
}

// AgentProfile joins a provider's registration with its current fee.
// Fee is in base units; FeeTokens is the same amount in whole token units.
type AgentProfile struct {
	Address               solana.PublicKey `json:"address"`
	Registration          solana.PublicKey `json:"registration"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	RestrictSubscriptions bool             `json:"restrict_subscriptions"`
	Capabilities          []string         `json:"capabilities"`
	Fee                   uint64           `json:"fee"`
	FeeTokens             string           `json:"fee_tokens"`
}
