package membership

import (
	"context"
	"errors"
	"testing"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"
	"fitnexus/internal/journal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errJournalDown = errors.New("journal unavailable")

// failingRecorder passes events through to the journal until failing is set.
type failingRecorder struct {
	*journal.Journal
	failing bool
}

func (r *failingRecorder) Record(ctx context.Context, id uuid.UUID, aggregateType, eventType string, payload any) (int, error) {
	if r.failing {
		return 0, errJournalDown
	}
	return r.Journal.Record(ctx, id, aggregateType, eventType, payload)
}

func TestFailedRecordLeavesMembersUnchanged(t *testing.T) {
	ctx := context.Background()
	rec := &failingRecorder{Journal: journal.New()}
	svc := NewService(NewStore(), rec, calendar.NewManualClock(today))

	family := addInput(TierFamily, "Fay", calendar.New(1985, 2, 2), "Edison")
	_, err := svc.AddMember(ctx, family)
	require.NoError(t, err)

	rec.failing = true

	premium := addInput(TierPremium, "Pia", calendar.New(1980, 3, 3), "Edison")
	_, err = svc.AddMember(ctx, premium)
	require.ErrorIs(t, err, errJournalDown)
	_, err = svc.GetMember(ctx, premium.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeMemberNotFound), "a failed add leaves no member behind")

	_, err = svc.ImportMember(ctx, ImportMemberInput{Identity: premium.Identity, Expiration: today, Location: "Edison"})
	require.ErrorIs(t, err, errJournalDown)
	_, err = svc.GetMember(ctx, premium.Identity)
	assert.True(t, apperr.Is(err, apperr.CodeMemberNotFound))

	_, err = svc.UseGuestPass(ctx, family.Identity)
	require.ErrorIs(t, err, errJournalDown)
	m, err := svc.GetMember(ctx, family.Identity)
	require.NoError(t, err)
	assert.Equal(t, 1, m.GuestPasses, "the pass is not spent")

	err = svc.RemoveMember(ctx, family.Identity)
	require.ErrorIs(t, err, errJournalDown)
	m, err = svc.GetMember(ctx, family.Identity)
	require.NoError(t, err, "a failed removal restores the member")
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, TierFamily, m.Tier)
}

func TestFailedPassReturnKeepsBalance(t *testing.T) {
	ctx := context.Background()
	rec := &failingRecorder{Journal: journal.New()}
	svc := NewService(NewStore(), rec, calendar.NewManualClock(today))

	family := addInput(TierFamily, "Fay", calendar.New(1985, 2, 2), "Edison")
	_, err := svc.AddMember(ctx, family)
	require.NoError(t, err)
	m, err := svc.UseGuestPass(ctx, family.Identity)
	require.NoError(t, err)
	require.Equal(t, 0, m.GuestPasses)

	rec.failing = true
	_, err = svc.ReturnGuestPass(ctx, family.Identity)
	require.ErrorIs(t, err, errJournalDown)

	m, err = svc.GetMember(ctx, family.Identity)
	require.NoError(t, err)
	assert.Equal(t, 0, m.GuestPasses)
	assert.Equal(t, 2, m.Version, "the version tracks only recorded events")
}
