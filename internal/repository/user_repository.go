package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condogate/condogate/internal/domain"
)

// UserRepository persists users. Find methods exclude soft-deleted rows
// and return (nil, nil) when nothing matches; deletion is expressed by
// saving a user whose soft-delete state is set.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	FindAll(ctx context.Context, page, limit int) ([]*domain.User, int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userCols = `id, name, email, password_hash, is_active, created_at, updated_at, deleted_at`

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	const q = `
		INSERT INTO users (id, name, email, password_hash, is_active, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		user.ID(), user.Name().String(), user.Email().String(), user.Password().Hash(),
		user.IsActive(), user.CreatedAt(), user.UpdatedAt(), user.DeletedAt(),
	)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.scanOne(r.pool.QueryRow(ctx, q, id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email = $1 AND deleted_at IS NULL`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.scanOne(r.pool.QueryRow(ctx, q, email.String()))
}

func (r *userRepository) FindAll(ctx context.Context, page, limit int) ([]*domain.User, int, error) {
	const countQ = `SELECT count(*) FROM users WHERE deleted_at IS NULL`
	const q = `
		SELECT ` + userCols + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, q, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id, rawName, rawEmail, hash string
		active                      bool
		createdAt, updatedAt        time.Time
		deletedAt                   *time.Time
	)
	if err := row.Scan(&id, &rawName, &rawEmail, &hash, &active, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	name, err := domain.NewUserName(rawName)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	password, err := domain.RestoreHashedPassword(hash)
	if err != nil {
		return nil, err
	}

	return domain.RestoreUser(id, name, email, password, active, createdAt, updatedAt, deletedAt), nil
}
