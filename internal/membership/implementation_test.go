package membership

import (
	"context"
	"testing"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"
	"fitnexus/internal/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = calendar.New(2024, 10, 15)

func newTestService(t *testing.T) (Service, *journal.Journal) {
	t.Helper()
	j := journal.New()
	return NewService(NewStore(), j, calendar.NewManualClock(today)), j
}

func addInput(tier Tier, first string, dob calendar.Date, loc string) AddMemberInput {
	return AddMemberInput{
		Tier:     tier,
		Identity: Identity{FirstName: first, LastName: "Rivera", DOB: dob},
		Location: loc,
	}
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()
	svc, j := newTestService(t)

	m, err := svc.AddMember(ctx, addInput(TierPremium, "Ana", calendar.New(1990, 2, 2), "edison"))
	require.NoError(t, err)
	assert.Equal(t, Edison, m.Location)
	assert.Equal(t, calendar.New(2025, 10, 15), m.Expiration)
	assert.Equal(t, 3, m.GuestPasses)
	assert.Equal(t, 1, m.Version)

	events, err := j.Load(ctx, m.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "MemberAdded", events[0].EventType)

	std, err := svc.AddMember(ctx, addInput(TierStandard, "Ben", calendar.New(1990, 2, 2), "Franklin"))
	require.NoError(t, err)
	assert.Equal(t, calendar.New(2025, 1, 15), std.Expiration)
	assert.Equal(t, 0, std.GuestPasses)

	_, err = svc.AddMember(ctx, addInput(TierFamily, "ANA", calendar.New(1990, 2, 2), "Edison"))
	assert.True(t, apperr.Is(err, apperr.CodeDuplicateIdentity))
}

func TestAddMemberEligibility(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := []struct {
		name string
		in   AddMemberInput
		code apperr.Code
	}{
		{"bad tier", addInput(Tier("GOLD"), "A", calendar.New(1990, 1, 1), "Edison"), apperr.CodeInvalidTier},
		{"impossible dob", addInput(TierStandard, "A", calendar.New(2001, 2, 29), "Edison"), apperr.CodeInvalidDate},
		{"dob today", addInput(TierStandard, "A", today, "Edison"), apperr.CodeDateNotInPast},
		{"dob in future", addInput(TierStandard, "A", calendar.New(2030, 1, 1), "Edison"), apperr.CodeDateNotInPast},
		{"turns 18 tomorrow", addInput(TierStandard, "A", calendar.New(2006, 10, 16), "Edison"), apperr.CodeUnderage},
		{"unknown location", addInput(TierStandard, "A", calendar.New(1990, 1, 1), "Newark"), apperr.CodeLocationNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddMember(ctx, tc.in)
			assert.Equal(t, tc.code, apperr.CodeOf(err))
		})
	}
	assert.True(t, svc.IsEmpty(ctx))

	_, err := svc.AddMember(ctx, addInput(TierStandard, "A", calendar.New(2006, 10, 15), "Edison"))
	assert.NoError(t, err, "turning 18 today is old enough")
}

func TestImportMember(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	m, err := svc.ImportMember(ctx, ImportMemberInput{
		Identity:   Identity{FirstName: "John", LastName: "Doe", DOB: calendar.New(2003, 1, 20)},
		Expiration: calendar.New(2023, 3, 30),
		Location:   "BRIDGEWATER",
	})
	require.NoError(t, err)
	assert.Equal(t, TierStandard, m.Tier)
	assert.Equal(t, calendar.New(2023, 3, 30), m.Expiration)

	_, err = svc.ImportMember(ctx, ImportMemberInput{
		Identity: Identity{FirstName: "Jo", LastName: "Doe", DOB: calendar.New(2003, 1, 20)},
		Location: "Trenton",
	})
	assert.True(t, apperr.Is(err, apperr.CodeLocationNotFound))
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	svc, j := newTestService(t)

	m, err := svc.AddMember(ctx, addInput(TierFamily, "Ana", calendar.New(1990, 2, 2), "Edison"))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(ctx, Identity{FirstName: "ana", LastName: "rivera", DOB: calendar.New(1990, 2, 2)}))
	assert.True(t, svc.IsEmpty(ctx))
	assert.Equal(t, 2, j.CurrentVersion(ctx, m.ID))

	err = svc.RemoveMember(ctx, m.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeMemberNotFound))

	_, err = svc.GetMember(ctx, m.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeMemberNotFound))
}

func TestGuestPasses(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	fam, err := svc.AddMember(ctx, addInput(TierFamily, "Ana", calendar.New(1990, 2, 2), "Edison"))
	require.NoError(t, err)

	used, err := svc.UseGuestPass(ctx, fam.Identity)
	require.NoError(t, err)
	assert.Equal(t, 0, used.GuestPasses)
	assert.Equal(t, 2, used.Version)

	_, err = svc.UseGuestPass(ctx, fam.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeGuestPassExhausted))

	returned, err := svc.ReturnGuestPass(ctx, fam.Identity)
	require.NoError(t, err)
	assert.Equal(t, 1, returned.GuestPasses)

	_, err = svc.ReturnGuestPass(ctx, fam.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeGuestPassAtCapacity))

	std, err := svc.AddMember(ctx, addInput(TierStandard, "Ben", calendar.New(1990, 2, 2), "Edison"))
	require.NoError(t, err)
	_, err = svc.UseGuestPass(ctx, std.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeTierForbidsGuests))
	_, err = svc.ReturnGuestPass(ctx, std.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeTierForbidsGuests))
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.AddMember(ctx, addInput(TierStandard, "Zed", calendar.New(1990, 2, 2), "Somerville"))
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, addInput(TierStandard, "Amy", calendar.New(1990, 2, 2), "Edison"))
	require.NoError(t, err)

	all, err := svc.ListMembers(ctx, SortNone)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed Rivera", "Amy Rivera"}, names(all))

	sorted, err := svc.ListMembers(ctx, SortByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amy Rivera", "Zed Rivera"}, names(sorted))

	_, err = svc.ListMembers(ctx, SortKey("age"))
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}
