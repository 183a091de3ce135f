package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const genesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Repository persists audit events with a SHA-256 hash chain.
// Trust model (kept from the log integrity design this is built on):
// - DB rows: untrusted (mutable)
// - hash chain: untrusted (recomputable)
// - external anchor (S3 Object Lock): trusted
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// computeEventHash hashes one row into the chain.
func computeEventHash(eventType string, timestamp time.Time, viewerID, targetID, action, details, previousHash string) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		eventType,
		timestamp.UTC().Format(time.RFC3339Nano),
		viewerID,
		targetID,
		action,
		details,
		previousHash,
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// PersistEvent inserts an event, chaining it to the previous row. Runs in a
// transaction so concurrent writers cannot fork the chain.
func (r *Repository) PersistEvent(ctx context.Context, event Event) error {
	var detailsJSON []byte
	if len(event.Details) > 0 {
		detailsJSON, _ = json.Marshal(event.Details)
	} else {
		detailsJSON = []byte("null")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin audit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	previousHash := genesisHash
	err = tx.QueryRow(ctx,
		`SELECT row_hash FROM privacy_audit_events ORDER BY id DESC LIMIT 1 FOR UPDATE`,
	).Scan(&previousHash)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to read chain head: %w", err)
	}

	rowHash := computeEventHash(string(event.Event), event.Timestamp, event.ViewerID, event.TargetID, event.Action, string(detailsJSON), previousHash)

	_, err = tx.Exec(ctx, `
		INSERT INTO privacy_audit_events (
			event_type, service, severity, viewer_id, target_id,
			action, reason, request_id, details, previous_hash, row_hash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(event.Event),
		event.Service,
		string(event.Severity),
		event.ViewerID,
		event.TargetID,
		event.Action,
		event.Reason,
		event.RequestID,
		detailsJSON,
		previousHash,
		rowHash,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist audit event: %w", err)
	}

	return tx.Commit(ctx)
}

// Filter narrows List results.
type Filter struct {
	EventType EventType
	ViewerID  string
	TargetID  string
	From      time.Time
	To        time.Time
	Page      int
	PageSize  int
}

// List returns events newest-first with a total count for pagination.
func (r *Repository) List(ctx context.Context, f Filter) ([]Event, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 200 {
		f.PageSize = 50
	}

	where := " WHERE 1=1"
	args := []interface{}{}
	i := 1
	if f.EventType != "" {
		where += fmt.Sprintf(" AND event_type = $%d", i)
		args = append(args, string(f.EventType))
		i++
	}
	if f.ViewerID != "" {
		where += fmt.Sprintf(" AND viewer_id = $%d", i)
		args = append(args, f.ViewerID)
		i++
	}
	if f.TargetID != "" {
		where += fmt.Sprintf(" AND target_id = $%d", i)
		args = append(args, f.TargetID)
		i++
	}
	if !f.From.IsZero() {
		where += fmt.Sprintf(" AND created_at >= $%d", i)
		args = append(args, f.From)
		i++
	}
	if !f.To.IsZero() {
		where += fmt.Sprintf(" AND created_at < $%d", i)
		args = append(args, f.To)
		i++
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM privacy_audit_events"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	query := `
		SELECT id, event_type, service, severity, viewer_id, target_id,
		       action, reason, request_id, details, created_at
		FROM privacy_audit_events` + where +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var eventType, severity string
		var details []byte
		if err := rows.Scan(
			&e.ID, &eventType, &e.Service, &severity, &e.ViewerID, &e.TargetID,
			&e.Action, &e.Reason, &e.RequestID, &details, &e.Timestamp,
		); err != nil {
			return nil, 0, err
		}
		e.Event = EventType(eventType)
		e.Severity = Severity(severity)
		if len(details) > 0 && string(details) != "null" {
			_ = json.Unmarshal(details, &e.Details)
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

// DailyChainStats summarizes one day of the chain for anchoring.
type DailyChainStats struct {
	RootHash     string
	EventCount   int64
	FirstEventID int64
	LastEventID  int64
}

// ComputeDailyRoot folds a day's row hashes into a single root hash.
func (r *Repository) ComputeDailyRoot(ctx context.Context, date time.Time) (*DailyChainStats, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	rows, err := r.db.Query(ctx, `
		SELECT id, row_hash FROM privacy_audit_events
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY id ASC`, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to read day's events: %w", err)
	}
	defer rows.Close()

	stats := &DailyChainStats{}
	h := sha256.New()
	for rows.Next() {
		var id int64
		var rowHash string
		if err := rows.Scan(&id, &rowHash); err != nil {
			return nil, err
		}
		if stats.EventCount == 0 {
			stats.FirstEventID = id
		}
		stats.LastEventID = id
		stats.EventCount++
		h.Write([]byte(rowHash))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if stats.EventCount == 0 {
		return stats, nil
	}
	stats.RootHash = hex.EncodeToString(h.Sum(nil))
	return stats, nil
}

// VerifyChain walks the chain in id order and reports the first break, if
// any. Used by operators after an anchor mismatch.
func (r *Repository) VerifyChain(ctx context.Context) (int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_type, created_at, viewer_id, target_id, action, details, previous_hash, row_hash
		FROM privacy_audit_events ORDER BY id ASC`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	expectedPrev := genesisHash
	for rows.Next() {
		var id int64
		var eventType, viewerID, targetID, action, previousHash, rowHash string
		var createdAt time.Time
		var details []byte
		if err := rows.Scan(&id, &eventType, &createdAt, &viewerID, &targetID, &action, &details, &previousHash, &rowHash); err != nil {
			return 0, err
		}
		if previousHash != expectedPrev {
			return id, fmt.Errorf("chain break at event %d: previous_hash mismatch", id)
		}
		recomputed := computeEventHash(eventType, createdAt, viewerID, targetID, action, string(details), previousHash)
		if recomputed != rowHash {
			return id, fmt.Errorf("chain break at event %d: row_hash mismatch", id)
		}
		expectedPrev = rowHash
	}
	return 0, rows.Err()
}
