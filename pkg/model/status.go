package model

import "time"

// SecondsPerDay is the day length used for every day-count conversion.
const SecondsPerDay = 24 * 60 * 60

// ExpiringSoonDays is the inclusive window, in days, in which a live
// subscription is reported as expiring soon.
const ExpiringSoonDays = 7

// Status is the derived lifecycle state of a subscription.
type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// ClassifyStatus derives the status of a subscription ending at expiry
// (unix seconds) as seen at now.
func ClassifyStatus(expiry int64, now time.Time) Status {
	nowSec := now.Unix()
	if expiry <= nowSec {
		return StatusExpired
	}
	daysLeft := float64(expiry-nowSec) / SecondsPerDay
	if daysLeft <= ExpiringSoonDays {
		return StatusExpiringSoon
	}
	return StatusActive
}

// ExpiryFromDays returns the absolute unix expiry for a subscription of the
// given number of days starting at now.
func ExpiryFromDays(now time.Time, days int64) int64 {
	return now.Unix() + days*SecondsPerDay
}
