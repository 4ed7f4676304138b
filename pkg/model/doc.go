// Package model defines the data structures passed into and returned from
// the FXN SDK wrappers.
//
// # Parameters
//
// Write wrappers take one params struct each (SubscribeParams, RenewParams,
// CancelParams, AgentParams, SetDataProviderFeeParams). Public keys use
// solana.PublicKey; fees are whole token units.
//
// # Status
//
// ClassifyStatus turns an expiry timestamp into one of:
//
//	StatusExpired      expiry <= now
//	StatusExpiringSoon 0 < days left <= 7
//	StatusActive       otherwise
//
// # Conversions
//
// ExpiryFromDays adds days*86400 to the current unix time.
// FeeToBaseUnits scales a float fee by 10^decimals using decimal arithmetic.
package model
