package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fanlens/internal/domain"
)

// SignalRepository persiste el log append-only de senales de engagement.
// El orden de insercion por sujeto se preserva (created_at, id).
type SignalRepository interface {
	Insert(ctx context.Context, signal domain.EngagementSignal) error
	ListBySubjectTarget(ctx context.Context, subjectID, targetID string) ([]domain.EngagementSignal, error)
	ListByTargetSince(ctx context.Context, targetID string, since time.Time) ([]domain.EngagementSignal, error)
	CountDistinctContentSince(ctx context.Context, subjectID, targetID string, since time.Time) (int, error)
	HasKindSince(ctx context.Context, subjectID, targetID string, kind domain.SignalKind, since time.Time) (bool, error)
}

type PgSignalRepository struct {
	pool *pgxpool.Pool
}

func NewPgSignalRepository(pool *pgxpool.Pool) *PgSignalRepository {
	return &PgSignalRepository{pool: pool}
}

func (r *PgSignalRepository) Insert(ctx context.Context, signal domain.EngagementSignal) error {
	const query = `
		INSERT INTO engagement_signals (id, subject_id, target_id, kind, weight, content_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`
	_, err := r.pool.Exec(ctx, query,
		signal.ID,
		signal.SubjectID,
		signal.TargetID,
		string(signal.Kind),
		signal.Weight,
		signal.ContentID,
		signal.CreatedAt,
	)
	return err
}

func (r *PgSignalRepository) ListBySubjectTarget(ctx context.Context, subjectID, targetID string) ([]domain.EngagementSignal, error) {
	const query = `
		SELECT id, subject_id, target_id, kind, weight, COALESCE(content_id, ''), created_at
		FROM engagement_signals
		WHERE subject_id = $1 AND target_id = $2
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, subjectID, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSignals(rows)
}

func (r *PgSignalRepository) ListByTargetSince(ctx context.Context, targetID string, since time.Time) ([]domain.EngagementSignal, error) {
	const query = `
		SELECT id, subject_id, target_id, kind, weight, COALESCE(content_id, ''), created_at
		FROM engagement_signals
		WHERE target_id = $1 AND created_at >= $2
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, targetID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSignals(rows)
}

func (r *PgSignalRepository) CountDistinctContentSince(ctx context.Context, subjectID, targetID string, since time.Time) (int, error) {
	const query = `
		SELECT COUNT(DISTINCT content_id)
		FROM engagement_signals
		WHERE subject_id = $1 AND target_id = $2 AND created_at >= $3 AND content_id IS NOT NULL
	`
	var count int
	err := r.pool.QueryRow(ctx, query, subjectID, targetID, since).Scan(&count)
	return count, err
}

func (r *PgSignalRepository) HasKindSince(ctx context.Context, subjectID, targetID string, kind domain.SignalKind, since time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM engagement_signals
			WHERE subject_id = $1 AND target_id = $2 AND kind = $3 AND created_at >= $4
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, subjectID, targetID, string(kind), since).Scan(&exists)
	return exists, err
}

func scanSignals(rows pgxRows) ([]domain.EngagementSignal, error) {
	var signals []domain.EngagementSignal
	for rows.Next() {
		var s domain.EngagementSignal
		var kind string
		if err := rows.Scan(
			&s.ID,
			&s.SubjectID,
			&s.TargetID,
			&kind,
			&s.Weight,
			&s.ContentID,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Kind = domain.SignalKind(kind)
		signals = append(signals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return signals, nil
}

// pgxRows es la interfaz minima para escanear filas de pgx y simplificar tests.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
