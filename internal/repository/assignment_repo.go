package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fanlens/internal/domain"
)

// AssignmentRepository persiste una asignacion de arquetipo por sujeto.
// El blend completo se guarda como JSONB.
type AssignmentRepository interface {
	Upsert(ctx context.Context, assignment domain.ArchetypeAssignment) error
	GetBySubject(ctx context.Context, subjectID string) (*domain.ArchetypeAssignment, error)
}

type PgAssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssignmentRepository(pool *pgxpool.Pool) *PgAssignmentRepository {
	return &PgAssignmentRepository{pool: pool}
}

func (r *PgAssignmentRepository) Upsert(ctx context.Context, assignment domain.ArchetypeAssignment) error {
	blend, err := json.Marshal(assignment.BlendWeights)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO archetype_assignments (subject_id, primary_id, primary_confidence, secondary_id, blend_weights, concentration, evangelism, immersion_index, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
		ON CONFLICT (subject_id)
		DO UPDATE SET
			primary_id = EXCLUDED.primary_id,
			primary_confidence = EXCLUDED.primary_confidence,
			secondary_id = EXCLUDED.secondary_id,
			blend_weights = EXCLUDED.blend_weights,
			concentration = EXCLUDED.concentration,
			evangelism = EXCLUDED.evangelism,
			immersion_index = EXCLUDED.immersion_index,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query,
		assignment.SubjectID,
		assignment.PrimaryID,
		assignment.PrimaryConfidence,
		assignment.SecondaryID,
		blend,
		assignment.Concentration,
		assignment.Evangelism,
		assignment.ImmersionIdx,
		assignment.UpdatedAt,
	)
	return err
}

func (r *PgAssignmentRepository) GetBySubject(ctx context.Context, subjectID string) (*domain.ArchetypeAssignment, error) {
	const query = `
		SELECT subject_id, primary_id, primary_confidence, COALESCE(secondary_id, ''), blend_weights, concentration, evangelism, immersion_index, updated_at
		FROM archetype_assignments
		WHERE subject_id = $1
	`
	var a domain.ArchetypeAssignment
	var blend []byte
	err := r.pool.QueryRow(ctx, query, subjectID).Scan(
		&a.SubjectID,
		&a.PrimaryID,
		&a.PrimaryConfidence,
		&a.SecondaryID,
		&blend,
		&a.Concentration,
		&a.Evangelism,
		&a.ImmersionIdx,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(blend, &a.BlendWeights); err != nil {
		return nil, err
	}
	return &a, nil
}
