package membership

import (
	"testing"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIdentityMatchesIgnoringCase(t *testing.T) {
	dob := calendar.New(2000, 7, 4)
	a := Identity{FirstName: "Jane", LastName: "Doe", DOB: dob}
	b := Identity{FirstName: "JANE", LastName: "doe", DOB: dob}

	assert.True(t, a.Matches(b))
	assert.Equal(t, a.AggregateID(), b.AggregateID())
	assert.False(t, a.Matches(Identity{FirstName: "Jane", LastName: "Doe", DOB: calendar.New(2000, 7, 5)}))
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("piscataway")
	require.NoError(t, err)
	assert.Equal(t, Piscataway, loc)
	assert.Equal(t, "08854", loc.ZipCode())
	assert.Equal(t, "MIDDLESEX", loc.County())

	_, err = ParseLocation("Newark")
	assert.True(t, apperr.Is(err, apperr.CodeLocationNotFound))
	assert.Len(t, Locations(), 5)
}

func TestPolicyFees(t *testing.T) {
	assert.Equal(t, "149.96", TierStandard.Policy().Fee().String())
	assert.Equal(t, "209.96", TierFamily.Policy().Fee().String())
	assert.Equal(t, "659.89", TierPremium.Policy().Fee().String())
}

func TestPolicyExpiration(t *testing.T) {
	today := calendar.New(2023, 11, 15)
	assert.Equal(t, calendar.New(2024, 2, 15), TierStandard.Policy().Expiration(today))
	assert.Equal(t, calendar.New(2024, 2, 15), TierFamily.Policy().Expiration(today))
	assert.Equal(t, calendar.New(2024, 11, 15), TierPremium.Policy().Expiration(today))
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("premium")
	require.NoError(t, err)
	assert.Equal(t, TierPremium, tier)

	_, err = ParseTier("gold")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTier))
}

func TestFamilyGuestPassBounds(t *testing.T) {
	m := Member{Tier: TierFamily, GuestPasses: TierFamily.Policy().GuestPassBudget}

	assert.True(t, m.UseGuestPass())
	assert.False(t, m.UseGuestPass())
	assert.Equal(t, 0, m.GuestPasses)
	assert.True(t, m.ReturnGuestPass())
	assert.False(t, m.ReturnGuestPass())
	assert.Equal(t, 1, m.GuestPasses)
}

func TestGuestPassBalanceStaysInBudget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tier := rapid.SampledFrom([]Tier{TierStandard, TierFamily, TierPremium}).Draw(t, "tier")
		budget := tier.Policy().GuestPassBudget
		m := Member{Tier: tier, GuestPasses: budget}

		steps := rapid.SliceOf(rapid.Bool()).Draw(t, "use")
		for _, use := range steps {
			before := m.GuestPasses
			if use {
				if m.UseGuestPass() != (before > 0) {
					t.Fatalf("use with balance %d", before)
				}
			} else if m.ReturnGuestPass() != (before < budget) {
				t.Fatalf("return with balance %d", before)
			}
			if m.GuestPasses < 0 || m.GuestPasses > budget {
				t.Fatalf("balance %d outside [0, %d]", m.GuestPasses, budget)
			}
		}
	})
}

func TestIsExpired(t *testing.T) {
	m := Member{Expiration: calendar.New(2024, 5, 1)}
	assert.True(t, m.IsExpired(calendar.New(2024, 5, 1)), "expiring today counts as expired")
	assert.True(t, m.IsExpired(calendar.New(2024, 5, 2)))
	assert.False(t, m.IsExpired(calendar.New(2024, 4, 30)))
}

func TestMoneyText(t *testing.T) {
	var m Money
	require.NoError(t, m.UnmarshalText([]byte("209.96")))
	assert.Equal(t, Money(20996), m)
	assert.Equal(t, "0.05", Money(5).String())

	require.NoError(t, m.UnmarshalText([]byte("12")))
	assert.Equal(t, Money(1200), m)

	assert.Error(t, m.UnmarshalText([]byte("1.5")))
	assert.Error(t, m.UnmarshalText([]byte("abc")))
}

func TestIdentityUsesFullCaseFolding(t *testing.T) {
	dob := calendar.New(1975, 8, 1)
	a := Identity{FirstName: "Anna", LastName: "Strauß", DOB: dob}
	b := Identity{FirstName: "ANNA", LastName: "STRAUSS", DOB: dob}

	assert.True(t, a.Matches(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Matches(Identity{FirstName: "Anna", LastName: "Straus", DOB: dob}))
}
