// internal/membership/policy.go
package membership

import (
	"fmt"
	"strconv"
	"strings"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"
)

// Tier selects a membership policy.
type Tier string

const (
	TierStandard Tier = "STANDARD"
	TierFamily   Tier = "FAMILY"
	TierPremium  Tier = "PREMIUM"
)

// Money is an amount in cents.
type Money int64

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m/100, m%100)
}

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(text []byte) error {
	dollars, cents, ok := strings.Cut(string(text), ".")
	d, err := strconv.ParseInt(dollars, 10, 64)
	if err != nil || d < 0 {
		return fmt.Errorf("invalid amount %q", text)
	}
	var c int64
	if ok {
		if len(cents) != 2 {
			return fmt.Errorf("invalid amount %q", text)
		}
		if c, err = strconv.ParseInt(cents, 10, 64); err != nil || c < 0 {
			return fmt.Errorf("invalid amount %q", text)
		}
	}
	*m = Money(d*100 + c)
	return nil
}

// Policy holds the per-tier rules.
type Policy struct {
	Tier            Tier
	GuestPassBudget int
	MonthlyFee      Money
	BilledMonths    int
	OneTimeFee      Money
	// TermMonths is how far past the join date the membership expires.
	TermMonths         int
	AllowsGuests       bool
	LocationRestricted bool
}

var policies = map[Tier]Policy{
	TierStandard: {
		Tier:               TierStandard,
		GuestPassBudget:    0,
		MonthlyFee:         3999,
		BilledMonths:       3,
		OneTimeFee:         2999,
		TermMonths:         3,
		AllowsGuests:       false,
		LocationRestricted: true,
	},
	TierFamily: {
		Tier:               TierFamily,
		GuestPassBudget:    1,
		MonthlyFee:         5999,
		BilledMonths:       3,
		OneTimeFee:         2999,
		TermMonths:         3,
		AllowsGuests:       true,
		LocationRestricted: false,
	},
	// Premium bills 11 of 12 months and waives the one-time fee.
	TierPremium: {
		Tier:               TierPremium,
		GuestPassBudget:    3,
		MonthlyFee:         5999,
		BilledMonths:       11,
		TermMonths:         12,
		AllowsGuests:       true,
		LocationRestricted: true,
	},
}

// ParseTier looks a tier up by name, ignoring case.
func ParseTier(name string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(name)))
	if !t.Valid() {
		return "", apperr.New(apperr.CodeInvalidTier, "%s - invalid membership tier", name)
	}
	return t, nil
}

func (t Tier) Valid() bool {
	_, ok := policies[t]
	return ok
}

// Policy returns the rules for t; the zero Policy for an unknown tier.
func (t Tier) Policy() Policy {
	return policies[t]
}

// Fee is the amount due for one term.
func (p Policy) Fee() Money {
	return p.MonthlyFee*Money(p.BilledMonths) + p.OneTimeFee
}

// Expiration is the expiry date for a membership starting today.
func (p Policy) Expiration(today calendar.Date) calendar.Date {
	return today.PlusMonths(p.TermMonths)
}
