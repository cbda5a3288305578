package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndLoad(t *testing.T) {
	ctx := context.Background()
	j := New()
	id := uuid.New()

	events := []Event{
		{EventType: "MemberAdded", EventData: json.RawMessage(`{"first_name":"Jane"}`)},
		{EventType: "GuestPassUsed", EventData: json.RawMessage(`{}`)},
	}
	require.NoError(t, j.Append(ctx, id, "member", 0, events))
	assert.Equal(t, 2, j.CurrentVersion(ctx, id))

	loaded, err := j.Load(ctx, id, 0, 0)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].Version)
	assert.Equal(t, 2, loaded[1].Version)
	assert.Equal(t, "member", loaded[1].AggregateType)
	assert.Equal(t, id, loaded[0].AggregateID)

	ranged, err := j.Load(ctx, id, 2, 2)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "GuestPassUsed", ranged[0].EventType)
}

func TestAppendRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	j := New()
	id := uuid.New()

	require.NoError(t, j.Append(ctx, id, "member", 0, []Event{{EventType: "MemberAdded"}}))
	err := j.Append(ctx, id, "member", 0, []Event{{EventType: "MemberAdded"}})
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
	assert.Equal(t, 1, j.CurrentVersion(ctx, id))

	assert.ErrorIs(t, j.Append(ctx, id, "member", -1, nil), ErrInvalidVersion)
}

func TestRecordUnderContention(t *testing.T) {
	ctx := context.Background()
	j := New()
	id := uuid.New()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := j.Record(ctx, id, "session", "MemberCheckedIn", map[string]int{"n": n}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrConcurrencyConflict)
			}
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, successes, 1)
	assert.Equal(t, successes, j.CurrentVersion(ctx, id))
}

func TestStream(t *testing.T) {
	ctx := context.Background()
	j := New()
	for i := 0; i < 5; i++ {
		_, err := j.Record(ctx, uuid.New(), "member", "MemberAdded", map[string]string{"n": fmt.Sprint(i)})
		require.NoError(t, err)
	}

	first, err := j.Stream(ctx, 0, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, int64(1), first[0].ID)

	rest, err := j.Stream(ctx, first[len(first)-1].ID, 10)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, int64(4), rest[0].ID)

	empty, err := j.Stream(ctx, 99, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = j.Stream(ctx, 0, 0)
	assert.Error(t, err)
}
