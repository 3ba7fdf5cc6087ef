package study

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the Postgres-backed study repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const studyCols = `id, patient_name, patient_ref, operator, institution, phenotype, input, report, created_at`

func scanStudy(row pgx.Row) (*Study, error) {
	var s Study
	var inputJSON, reportJSON []byte
	err := row.Scan(&s.ID, &s.PatientName, &s.PatientID, &s.Operator, &s.Institution,
		&s.Phenotype, &inputJSON, &reportJSON, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputJSON, &s.Input); err != nil {
		return nil, fmt.Errorf("decode study input: %w", err)
	}
	if err := json.Unmarshal(reportJSON, &s.Report); err != nil {
		return nil, fmt.Errorf("decode study report: %w", err)
	}
	return &s, nil
}

func (r *repoPG) Create(ctx context.Context, s *Study) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	inputJSON, err := json.Marshal(s.Input)
	if err != nil {
		return fmt.Errorf("encode study input: %w", err)
	}
	reportJSON, err := json.Marshal(s.Report)
	if err != nil {
		return fmt.Errorf("encode study report: %w", err)
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO study (id, patient_name, patient_ref, operator, institution, phenotype, input, report)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		s.ID, s.PatientName, s.PatientID, s.Operator, s.Institution,
		s.Phenotype, inputJSON, reportJSON).Scan(&s.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Study, error) {
	return scanStudy(r.pool.QueryRow(ctx, `SELECT `+studyCols+` FROM study WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Study, int, error) {
	return r.list(ctx, `SELECT `+studyCols+` FROM study ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		`SELECT COUNT(*) FROM study`, nil, limit, offset)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientRef string, limit, offset int) ([]*Study, int, error) {
	return r.list(ctx, `SELECT `+studyCols+` FROM study WHERE patient_ref = $3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		`SELECT COUNT(*) FROM study WHERE patient_ref = $1`, []interface{}{patientRef}, limit, offset)
}

func (r *repoPG) list(ctx context.Context, query, countQuery string, extra []interface{}, limit, offset int) ([]*Study, int, error) {
	args := append([]interface{}{limit, offset}, extra...)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var studies []*Study
	for rows.Next() {
		s, err := scanStudy(rows)
		if err != nil {
			return nil, 0, err
		}
		studies = append(studies, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, extra...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return studies, total, nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM study WHERE id = $1`, id)
	return err
}
