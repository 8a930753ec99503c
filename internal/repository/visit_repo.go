package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fanlens/internal/domain"
)

// VisitRepository persiste las sesiones de visita. Append-only salvo el
// cierre (SetEnd).
type VisitRepository interface {
	Insert(ctx context.Context, visit domain.VisitSession) error
	SetEnd(ctx context.Context, visitID string, endedAt time.Time) error
	ListBySubjectTarget(ctx context.Context, subjectID, targetID string) ([]domain.VisitSession, error)
}

type PgVisitRepository struct {
	pool *pgxpool.Pool
}

func NewPgVisitRepository(pool *pgxpool.Pool) *PgVisitRepository {
	return &PgVisitRepository{pool: pool}
}

func (r *PgVisitRepository) Insert(ctx context.Context, visit domain.VisitSession) error {
	const query = `
		INSERT INTO visit_sessions (id, subject_id, target_id, origin, started_at, ended_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`
	var ended interface{}
	if visit.EndedAt != nil {
		ended = *visit.EndedAt
	}
	_, err := r.pool.Exec(ctx, query,
		visit.ID,
		visit.SubjectID,
		visit.TargetID,
		string(visit.Origin),
		visit.StartedAt,
		ended,
	)
	return err
}

func (r *PgVisitRepository) SetEnd(ctx context.Context, visitID string, endedAt time.Time) error {
	const query = `
		UPDATE visit_sessions SET ended_at = $2 WHERE id = $1 AND ended_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, visitID, endedAt)
	return err
}

func (r *PgVisitRepository) ListBySubjectTarget(ctx context.Context, subjectID, targetID string) ([]domain.VisitSession, error) {
	const query = `
		SELECT id, subject_id, COALESCE(target_id, ''), origin, started_at, ended_at
		FROM visit_sessions
		WHERE subject_id = $1 AND target_id = $2
		ORDER BY started_at, id
	`
	rows, err := r.pool.Query(ctx, query, subjectID, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []domain.VisitSession
	for rows.Next() {
		var v domain.VisitSession
		var origin string
		var ended sql.NullTime
		if err := rows.Scan(&v.ID, &v.SubjectID, &v.TargetID, &origin, &v.StartedAt, &ended); err != nil {
			return nil, err
		}
		v.Origin = domain.VisitOrigin(origin)
		if ended.Valid {
			t := ended.Time
			v.EndedAt = &t
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return visits, nil
}
