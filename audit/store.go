// Package audit persists the trace events the core engine flags but
// never acts on itself: forced-termination plays, ambiguous attribution,
// and impossible defensive configurations (§7). The engine package has
// no notion of a database; callers that want a durable record of why a
// particular at-bat resolved the way it did wire this package in.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sim-engine/models"
)

// dbConn is the slice of *pgxpool.Pool's surface this package needs,
// narrowed so tests can substitute pgxmock's pool double without the
// package depending on a concrete pgxpool type in its exported API.
type dbConn interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// EventKind classifies a recorded trace event (§7's taxonomy, minus
// PhysicalDegeneracy which the engine already resolves silently to a
// groundout and has nothing further worth auditing).
type EventKind string

const (
	EventForcedTermination    EventKind = "forced_termination"
	EventAttributionAmbiguous EventKind = "attribution_ambiguous"
	EventImpossibleConfig     EventKind = "impossible_configuration"
)

// Event is one row of the audit trail: an at-bat outcome plus why it
// was flagged, ready to be folded into a season runner's play log.
type Event struct {
	ID        string
	Kind      EventKind
	AtBatID   string
	Inning    int
	Outs      int
	Result    models.AtBatResult
	Detail    string // free-form context, e.g. missing positions
	Recorded  time.Time
}

// Store persists audit events via a pooled connection, grounded on the
// teacher's storeSimulationResult/storeAggregatedResults shape: raw SQL
// with positional placeholders, errors wrapped with %w.
type Store struct {
	db dbConn
}

// NewStore wraps an existing pool. The caller owns the pool's lifecycle.
func NewStore(db dbConn) *Store {
	return &Store{db: db}
}

// compile-time assertion that a real pool satisfies dbConn.
var _ dbConn = (*pgxpool.Pool)(nil)

// RecordForcedTermination persists a §4.11 bounded-time-exhaustion event.
func (s *Store) RecordForcedTermination(ctx context.Context, atBatID string, inning int, outcome models.AtBatOutcome) error {
	return s.insert(ctx, EventForcedTermination, atBatID, inning, outcome, "")
}

// RecordAttributionAmbiguous persists a §7 AttributionAmbiguity event.
func (s *Store) RecordAttributionAmbiguous(ctx context.Context, atBatID string, inning int, outcome models.AtBatOutcome) error {
	return s.insert(ctx, EventAttributionAmbiguous, atBatID, inning, outcome, "")
}

// RecordImpossibleConfiguration persists a §7 dummy-fielder substitution
// event, with the missing positions serialized into Detail.
func (s *Store) RecordImpossibleConfiguration(ctx context.Context, atBatID string, inning int, outcome models.AtBatOutcome, missing []models.FieldPosition) error {
	names := make([]string, len(missing))
	for i, p := range missing {
		names[i] = p.String()
	}
	detailJSON, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal missing positions: %w", err)
	}
	return s.insert(ctx, EventImpossibleConfig, atBatID, inning, outcome, string(detailJSON))
}

func (s *Store) insert(ctx context.Context, kind EventKind, atBatID string, inning int, outcome models.AtBatOutcome, detail string) error {
	query := `
		INSERT INTO at_bat_audit_events (
			id, kind, at_bat_id, inning, outs, result, detail, recorded_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW()
		)
	`
	_, err := s.db.Exec(ctx, query,
		string(kind),
		atBatID,
		inning,
		outcome.OutsBefore,
		outcome.Result.String(),
		detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s audit event: %w", kind, err)
	}
	return nil
}

// RecentEvents returns the most recent n audit events, newest first, for
// a season runner's dashboard or a CLI inspection command.
func (s *Store) RecentEvents(ctx context.Context, n int) ([]Event, error) {
	query := `
		SELECT id, kind, at_bat_id, inning, outs, result, detail, recorded_at
		FROM at_bat_audit_events
		ORDER BY recorded_at DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e          Event
			kind       string
			resultName string
		)
		if err := rows.Scan(&e.ID, &kind, &e.AtBatID, &e.Inning, &e.Outs, &resultName, &e.Detail, &e.Recorded); err != nil {
			return nil, fmt.Errorf("failed to scan audit event row: %w", err)
		}
		e.Kind = EventKind(kind)
		e.Result = resultFromName(resultName)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating audit event rows: %w", err)
	}
	return events, nil
}

func resultFromName(name string) models.AtBatResult {
	for r := models.ResultSingle; r <= models.ResultError; r++ {
		if r.String() == name {
			return r
		}
	}
	return models.ResultSingle
}
