// Package testutil provides shared helpers for simulation tests.
package testutil

import (
	"github.com/flashbots/otpring/protocol"
)

// FixedJitter delivers every broadcast with the same delay. Max is reported
// as the jitter bound so configs validating against it behave as in
// production.
type FixedJitter struct {
	Delay int
	Max   int
}

func (j FixedJitter) Jitter() int   { return j.Delay }
func (j FixedJitter) MaxDelay() int { return j.Max }

// RingConfig builds a ring-variant scenario with the given active senders.
func RingConfig(n, m, d int, active ...protocol.PartyID) *protocol.Config {
	return &protocol.Config{
		N:      n,
		M:      m,
		D:      d,
		Active: active,
		Seed:   1,
	}
}

// TwoPointerConfig builds a two-pointer-variant scenario.
func TwoPointerConfig(n, m, d int, active ...protocol.PartyID) *protocol.Config {
	cfg := RingConfig(n, m, d, active...)
	cfg.Variant = protocol.VariantTwoPointer
	return cfg
}
