// internal/journal/journal.go
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrConcurrencyConflict = errors.New("concurrency conflict: version mismatch")
	ErrInvalidVersion      = errors.New("invalid version number")
)

// Event is a recorded domain event.
type Event struct {
	ID            int64           `json:"id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	EventData     json.RawMessage `json:"event_data"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Journal is an in-process append-only event log with per-aggregate
// optimistic concurrency. Nothing survives a restart.
type Journal struct {
	mu       sync.RWMutex
	events   []Event
	versions map[uuid.UUID]int
	tracer   trace.Tracer
	now      func() time.Time
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{
		versions: make(map[uuid.UUID]int),
		tracer:   otel.Tracer("fitnexus/journal"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Append atomically appends events if the aggregate is still at expectedVersion.
func (j *Journal) Append(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []Event) error {
	_, span := j.tracer.Start(ctx, "journal.append",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
			attribute.String("aggregate.type", aggregateType),
			attribute.Int("expected.version", expectedVersion),
			attribute.Int("event.count", len(events)),
		),
	)
	defer span.End()

	if expectedVersion < 0 {
		return ErrInvalidVersion
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	current := j.versions[aggregateID]
	if current != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", current),
			attribute.Bool("conflict.detected", true),
		)
		return ErrConcurrencyConflict
	}

	for i, event := range events {
		event.ID = int64(len(j.events) + 1)
		event.AggregateID = aggregateID
		event.AggregateType = aggregateType
		event.Version = expectedVersion + i + 1
		event.CreatedAt = j.now()
		j.events = append(j.events, event)

		span.AddEvent("event.appended", trace.WithAttributes(
			attribute.Int64("event.id", event.ID),
			attribute.Int("event.version", event.Version),
			attribute.String("event.type", event.EventType),
		))
	}
	j.versions[aggregateID] = expectedVersion + len(events)

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}

// Recorder appends one event per call. Services write through it; *Journal
// implements it.
type Recorder interface {
	Record(ctx context.Context, aggregateID uuid.UUID, aggregateType, eventType string, payload any) (int, error)
}

var _ Recorder = (*Journal)(nil)

// Record marshals payload into a single event and appends it at the
// aggregate's current version. Returns the new version.
func (j *Journal) Record(ctx context.Context, aggregateID uuid.UUID, aggregateType, eventType string, payload any) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	version := j.CurrentVersion(ctx, aggregateID)
	event := Event{EventType: eventType, EventData: data}
	if err := j.Append(ctx, aggregateID, aggregateType, version, []Event{event}); err != nil {
		return 0, fmt.Errorf("append %s: %w", eventType, err)
	}
	return version + 1, nil
}

// Load returns an aggregate's events with fromVersion <= version <= toVersion.
// A toVersion of 0 means no upper bound.
func (j *Journal) Load(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]Event, error) {
	_, span := j.tracer.Start(ctx, "journal.load",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
			attribute.Int("from.version", fromVersion),
			attribute.Int("to.version", toVersion),
		),
	)
	defer span.End()

	if fromVersion < 0 || toVersion < 0 {
		return nil, ErrInvalidVersion
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	var events []Event
	for _, e := range j.events {
		if e.AggregateID != aggregateID || e.Version < fromVersion {
			continue
		}
		if toVersion > 0 && e.Version > toVersion {
			continue
		}
		events = append(events, e)
	}

	span.SetAttributes(attribute.Int("events.loaded", len(events)))
	return events, nil
}

// CurrentVersion returns the latest version recorded for an aggregate.
func (j *Journal) CurrentVersion(ctx context.Context, aggregateID uuid.UUID) int {
	_, span := j.tracer.Start(ctx, "journal.current_version",
		trace.WithAttributes(attribute.String("aggregate.id", aggregateID.String())),
	)
	defer span.End()

	j.mu.RLock()
	defer j.mu.RUnlock()

	version := j.versions[aggregateID]
	span.SetAttributes(attribute.Int("current.version", version))
	return version
}

// Stream returns up to batchSize events with ID greater than fromID.
func (j *Journal) Stream(ctx context.Context, fromID int64, batchSize int) ([]Event, error) {
	_, span := j.tracer.Start(ctx, "journal.stream",
		trace.WithAttributes(
			attribute.Int64("from.id", fromID),
			attribute.Int("batch.size", batchSize),
		),
	)
	defer span.End()

	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	start := int(fromID)
	if start < 0 {
		start = 0
	}
	if start > len(j.events) {
		start = len(j.events)
	}
	end := min(start+batchSize, len(j.events))

	// IDs are dense and start at 1, so ID n lives at index n-1.
	events := make([]Event, end-start)
	copy(events, j.events[start:end])

	span.SetAttributes(attribute.Int("events.streamed", len(events)))
	return events, nil
}
