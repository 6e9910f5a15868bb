package protocol

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{N: 2000, M: 4, D: 15, Active: []PartyID{1}, Seed: 1}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero n", func(c *Config) { c.N = 0 }, "n"},
		{"negative n", func(c *Config) { c.N = -1 }, "n"},
		{"zero m", func(c *Config) { c.M = 0 }, "m"},
		{"negative d", func(c *Config) { c.D = -1 }, "d"},
		{"too many active", func(c *Config) { c.Active = []PartyID{1, 2, 3, 4, 5} }, "active"},
		{"active id out of range", func(c *Config) { c.Active = []PartyID{5} }, "active"},
		{"active id duplicated", func(c *Config) { c.Active = []PartyID{2, 2} }, "active"},
		{"unknown variant", func(c *Config) { c.Variant = "spiral" }, "variant"},
		{"negative max ticks", func(c *Config) { c.MaxTicks = -1 }, "max_ticks"},
		{"wrong position count", func(c *Config) { c.StartingPositions = map[PartyID]int{1: 0} }, "starting_positions"},
		{"position out of range", func(c *Config) {
			c.StartingPositions = map[PartyID]int{1: 0, 2: 500, 3: 1000, 4: 2000}
		}, "starting_positions"},
		{"position duplicated", func(c *Config) {
			c.StartingPositions = map[PartyID]int{1: 0, 2: 500, 3: 500, 4: 1500}
		}, "starting_positions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate(cfg.D)
			require.Error(t, err)

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			require.Equal(t, tt.field, cerr.Field)
		})
	}

	require.NoError(t, validConfig().Validate(15))
}

func TestConfigAllowsSharedPositionsForTwoPointer(t *testing.T) {
	// The two-pointer placement starts every same-direction party on the
	// same pool end; only the ring variant requires distinct slots.
	cfg := validConfig()
	cfg.Variant = VariantTwoPointer
	cfg.StartingPositions = map[PartyID]int{1: 0, 2: 1999, 3: 0, 4: 1999}

	require.NoError(t, cfg.Validate(cfg.D))
}

func TestConfigRejectsUndersizedSafetyBuffer(t *testing.T) {
	cfg := validConfig()

	// The network may delay a broadcast by up to 20 ticks, but d is only 15:
	// the collision-avoidance argument does not hold.
	err := cfg.Validate(20)
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "d", cerr.Field)
}

func TestConfigDefaultPositions(t *testing.T) {
	cfg := &Config{N: 2000, M: 4, D: 15}

	pos := cfg.Positions()
	require.Equal(t, map[PartyID]int{1: 0, 2: 500, 3: 1000, 4: 1500}, pos)

	cfg.Variant = VariantTwoPointer
	pos = cfg.Positions()
	require.Equal(t, map[PartyID]int{1: 0, 2: 1999, 3: 0, 4: 1999}, pos)
}

func TestConfigRoles(t *testing.T) {
	cfg := &Config{N: 100, M: 3, D: 5, Active: []PartyID{2}}

	require.Equal(t, RoleSilent, cfg.Role(1))
	require.Equal(t, RoleActive, cfg.Role(2))
	require.Equal(t, RoleSilent, cfg.Role(3))
	require.Equal(t, 1, cfg.X())
}

func TestConfigTickBudget(t *testing.T) {
	cfg := &Config{N: 500, M: 3, D: 5}
	require.Equal(t, 50000, cfg.TickBudget())

	cfg.MaxTicks = 123
	require.Equal(t, 123, cfg.TickBudget())
}

func TestRandomActiveSet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	ids, err := RandomActiveSet(4, 2, rng)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	require.Less(t, ids[0], ids[1])
	for _, id := range ids {
		require.GreaterOrEqual(t, int(id), 1)
		require.LessOrEqual(t, int(id), 4)
	}

	_, err = RandomActiveSet(4, 5, rng)
	require.ErrorIs(t, err, ErrTooManyActive)

	// Same seed, same sample.
	a, err := RandomActiveSet(10, 3, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := RandomActiveSet(10, 3, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	require.Equal(t, a, b)
}
