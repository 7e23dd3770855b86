package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condogate/condogate/internal/domain"
)

// ResidentRepository persists residents. Find methods return (nil, nil)
// when nothing matches.
type ResidentRepository interface {
	Save(ctx context.Context, resident *domain.Resident) error
	FindByID(ctx context.Context, id string) (*domain.Resident, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Resident, error)
}

type residentRepository struct {
	pool *pgxpool.Pool
}

func NewResidentRepository(pool *pgxpool.Pool) ResidentRepository {
	return &residentRepository{pool: pool}
}

const residentCols = `id, user_id, unit_id, role, is_active, created_at, updated_at`

func (r *residentRepository) Save(ctx context.Context, resident *domain.Resident) error {
	const q = `
		INSERT INTO residents (id, user_id, unit_id, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			unit_id = EXCLUDED.unit_id,
			role = EXCLUDED.role,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		resident.ID(), resident.UserID(), resident.UnitID(), string(resident.Role()),
		resident.IsActive(), resident.CreatedAt(), resident.UpdatedAt(),
	)
	return err
}

func (r *residentRepository) FindByID(ctx context.Context, id string) (*domain.Resident, error) {
	const q = `SELECT ` + residentCols + ` FROM residents WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanResident(r.pool.QueryRow(ctx, q, id))
}

func (r *residentRepository) FindByUserID(ctx context.Context, userID string) (*domain.Resident, error) {
	const q = `SELECT ` + residentCols + ` FROM residents WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanResident(r.pool.QueryRow(ctx, q, userID))
}

func scanResident(row pgx.Row) (*domain.Resident, error) {
	var (
		id, userID, unitID, role string
		active                   bool
		createdAt, updatedAt     time.Time
	)
	err := row.Scan(&id, &userID, &unitID, &role, &active, &createdAt, &updatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parsed, _ := domain.ParseResidentRole(role)
	return domain.RestoreResident(id, userID, unitID, parsed, active, createdAt, updatedAt), nil
}
