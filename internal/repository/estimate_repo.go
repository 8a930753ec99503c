package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"fanlens/internal/domain"
)

// SimilarProfile es un vecino por similitud de vector de traits.
type SimilarProfile struct {
	SubjectID string  `json:"subject_id"`
	Distance  float64 `json:"distance"`
}

// EstimateRepository persiste un TraitProfile por sujeto: una fila por
// trait mas una fila de perfil con el vector denso para busqueda por
// similitud (pgvector).
type EstimateRepository interface {
	Upsert(ctx context.Context, profile domain.TraitProfile) error
	GetBySubject(ctx context.Context, subjectID string) (*domain.TraitProfile, error)
	FindSimilar(ctx context.Context, vector domain.TraitVector, k int) ([]SimilarProfile, error)
}

type PgEstimateRepository struct {
	pool *pgxpool.Pool
}

func NewPgEstimateRepository(pool *pgxpool.Pool) *PgEstimateRepository {
	return &PgEstimateRepository{pool: pool}
}

func (r *PgEstimateRepository) Upsert(ctx context.Context, profile domain.TraitProfile) error {
	const profileQuery = `
		INSERT INTO trait_profiles (subject_id, vector, overall_confidence, reliability, estimated_accuracy, session_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subject_id)
		DO UPDATE SET
			vector = EXCLUDED.vector,
			overall_confidence = EXCLUDED.overall_confidence,
			reliability = EXCLUDED.reliability,
			estimated_accuracy = EXCLUDED.estimated_accuracy,
			session_count = EXCLUDED.session_count,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, profileQuery,
		profile.SubjectID,
		toVector(profile.Vector()),
		profile.OverallConfidence,
		profile.Reliability,
		profile.EstimatedAccuracy,
		profile.SessionCount,
		profile.UpdatedAt,
	); err != nil {
		return err
	}

	const estimateQuery = `
		INSERT INTO trait_estimates (subject_id, trait, score, confidence, dispersion, item_count, raw_sum, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (subject_id, trait)
		DO UPDATE SET
			score = EXCLUDED.score,
			confidence = EXCLUDED.confidence,
			dispersion = EXCLUDED.dispersion,
			item_count = EXCLUDED.item_count,
			raw_sum = EXCLUDED.raw_sum,
			updated_at = EXCLUDED.updated_at
	`
	for t := domain.Trait(0); t < domain.TraitCount; t++ {
		est := profile.Estimates[t]
		if _, err := r.pool.Exec(ctx, estimateQuery,
			profile.SubjectID,
			t.String(),
			est.Score,
			est.Confidence,
			est.Dispersion,
			est.ItemCount,
			est.RawSum,
			profile.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgEstimateRepository) GetBySubject(ctx context.Context, subjectID string) (*domain.TraitProfile, error) {
	const profileQuery = `
		SELECT subject_id, overall_confidence, reliability, estimated_accuracy, session_count, updated_at
		FROM trait_profiles
		WHERE subject_id = $1
	`
	var profile domain.TraitProfile
	err := r.pool.QueryRow(ctx, profileQuery, subjectID).Scan(
		&profile.SubjectID,
		&profile.OverallConfidence,
		&profile.Reliability,
		&profile.EstimatedAccuracy,
		&profile.SessionCount,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	const estimateQuery = `
		SELECT trait, score, confidence, dispersion, item_count, raw_sum
		FROM trait_estimates
		WHERE subject_id = $1
	`
	rows, err := r.pool.Query(ctx, estimateQuery, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var est domain.TraitEstimate
		if err := rows.Scan(&name, &est.Score, &est.Confidence, &est.Dispersion, &est.ItemCount, &est.RawSum); err != nil {
			return nil, err
		}
		if t, ok := domain.ParseTrait(name); ok {
			profile.Estimates[t] = est
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PgEstimateRepository) FindSimilar(ctx context.Context, vector domain.TraitVector, k int) ([]SimilarProfile, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT subject_id, vector <=> $1 AS distance
		FROM trait_profiles
		ORDER BY vector <=> $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, toVector(vector), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SimilarProfile
	for rows.Next() {
		var sp SimilarProfile
		if err := rows.Scan(&sp.SubjectID, &sp.Distance); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func toVector(v domain.TraitVector) pgvector.Vector {
	values := make([]float32, domain.TraitCount)
	for i, f := range v {
		values[i] = float32(f)
	}
	return pgvector.NewVector(values)
}
