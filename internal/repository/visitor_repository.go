package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condogate/condogate/internal/domain"
)

// PassWithVisitor is a visitor joined with its access pass and the
// sponsoring resident's unit and display name.
type PassWithVisitor struct {
	Visitor        *domain.Visitor
	Pass           *domain.Pass
	ResidentUnitID string
	ResidentName   string
}

// VisitorRepository persists visitors and their access passes. Find
// methods return (nil, nil) when nothing matches; listing methods only
// see passes that have not expired.
type VisitorRepository interface {
	SaveVisitor(ctx context.Context, visitor *domain.Visitor) error
	FindVisitorByID(ctx context.Context, id string) (*domain.Visitor, error)
	CreatePass(ctx context.Context, pass *domain.Pass) error
	FindAllActive(ctx context.Context) ([]PassWithVisitor, error)
	FindActiveByVisitorID(ctx context.Context, visitorID string) (*PassWithVisitor, error)
	FindActivePasses(ctx context.Context, visitorID string) ([]*domain.Pass, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type visitorRepository struct {
	pool *pgxpool.Pool
}

func NewVisitorRepository(pool *pgxpool.Pool) VisitorRepository {
	return &visitorRepository{pool: pool}
}

const visitorCols = `id, name, document, vehicle_plate, created_at, updated_at`
const passCols = `id, resident_id, visitor_id, time_limit, days_valid, expires_at, created_at, updated_at`

func (r *visitorRepository) SaveVisitor(ctx context.Context, visitor *domain.Visitor) error {
	const q = `
		INSERT INTO visitors (id, name, document, vehicle_plate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			vehicle_plate = EXCLUDED.vehicle_plate,
			updated_at = EXCLUDED.updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var plate *string
	if !visitor.VehiclePlate().IsZero() {
		v := visitor.VehiclePlate().String()
		plate = &v
	}

	_, err := r.pool.Exec(ctx, q,
		visitor.ID(), visitor.Name().String(), visitor.Document().String(), plate,
		visitor.CreatedAt(), visitor.UpdatedAt(),
	)
	return err
}

func (r *visitorRepository) FindVisitorByID(ctx context.Context, id string) (*domain.Visitor, error) {
	const q = `SELECT ` + visitorCols + ` FROM visitors WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	visitor, err := scanVisitor(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return visitor, err
}

func (r *visitorRepository) CreatePass(ctx context.Context, pass *domain.Pass) error {
	const q = `
		INSERT INTO passes (id, resident_id, visitor_id, time_limit, days_valid, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		pass.ID(), pass.ResidentID(), pass.VisitorID(), pass.TimeLimit().String(),
		pass.DaysValid(), pass.ExpiresAt(), pass.CreatedAt(), pass.UpdatedAt(),
	)
	return err
}

const activeJoinQ = `
	SELECT v.id, v.name, v.document, v.vehicle_plate, v.created_at, v.updated_at,
	       p.id, p.resident_id, p.visitor_id, p.time_limit, p.days_valid, p.expires_at, p.created_at, p.updated_at,
	       r.unit_id, u.name
	FROM passes p
	JOIN visitors v ON v.id = p.visitor_id
	JOIN residents r ON r.id = p.resident_id
	JOIN users u ON u.id = r.user_id`

func (r *visitorRepository) FindAllActive(ctx context.Context) ([]PassWithVisitor, error) {
	const q = activeJoinQ + `
	WHERE p.expires_at >= now()
	ORDER BY p.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PassWithVisitor
	for rows.Next() {
		item, err := scanPassWithVisitor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	return result, rows.Err()
}

func (r *visitorRepository) FindActiveByVisitorID(ctx context.Context, visitorID string) (*PassWithVisitor, error) {
	const q = activeJoinQ + `
	WHERE p.visitor_id = $1 AND p.expires_at >= now()
	ORDER BY p.created_at DESC
	LIMIT 1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	item, err := scanPassWithVisitor(r.pool.QueryRow(ctx, q, visitorID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *visitorRepository) FindActivePasses(ctx context.Context, visitorID string) ([]*domain.Pass, error) {
	const q = `
		SELECT ` + passCols + `
		FROM passes
		WHERE visitor_id = $1 AND expires_at >= now()
		ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []*domain.Pass
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
	}

	return passes, rows.Err()
}

func (r *visitorRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM passes WHERE expires_at < now()`

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func scanVisitor(row pgx.Row) (*domain.Visitor, error) {
	var (
		id, rawName, rawDocument string
		rawPlate                 *string
		createdAt, updatedAt     time.Time
	)
	if err := row.Scan(&id, &rawName, &rawDocument, &rawPlate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return restoreVisitor(id, rawName, rawDocument, rawPlate, createdAt, updatedAt)
}

func restoreVisitor(id, rawName, rawDocument string, rawPlate *string, createdAt, updatedAt time.Time) (*domain.Visitor, error) {
	name, err := domain.NewVisitorName(rawName)
	if err != nil {
		return nil, err
	}
	document, err := domain.NewDocument(rawDocument)
	if err != nil {
		return nil, err
	}
	var plate domain.VehiclePlate
	if rawPlate != nil {
		plate, err = domain.NewVehiclePlate(*rawPlate)
		if err != nil {
			return nil, err
		}
	}
	return domain.RestoreVisitor(id, name, document, plate, createdAt, updatedAt), nil
}

func scanPass(row pgx.Row) (*domain.Pass, error) {
	var (
		id, residentID, visitorID, rawLimit string
		daysValid                           int
		expiresAt, createdAt, updatedAt     time.Time
	)
	if err := row.Scan(&id, &residentID, &visitorID, &rawLimit, &daysValid, &expiresAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	limit, err := domain.NewTimeLimit(rawLimit)
	if err != nil {
		return nil, err
	}

	return domain.RestorePass(id, residentID, visitorID, limit, daysValid, expiresAt, createdAt, updatedAt), nil
}

func scanPassWithVisitor(row pgx.Row) (PassWithVisitor, error) {
	var (
		visitorID, visitorName, rawDocument             string
		rawPlate                                        *string
		visitorCreatedAt, visitorUpdatedAt              time.Time
		passID, passResidentID, passVisitorID, rawLimit string
		daysValid                                       int
		expiresAt, passCreatedAt, passUpdatedAt         time.Time
		unitID, residentName                            string
	)

	err := row.Scan(
		&visitorID, &visitorName, &rawDocument, &rawPlate, &visitorCreatedAt, &visitorUpdatedAt,
		&passID, &passResidentID, &passVisitorID, &rawLimit, &daysValid, &expiresAt, &passCreatedAt, &passUpdatedAt,
		&unitID, &residentName,
	)
	if err != nil {
		return PassWithVisitor{}, err
	}

	visitor, err := restoreVisitor(visitorID, visitorName, rawDocument, rawPlate, visitorCreatedAt, visitorUpdatedAt)
	if err != nil {
		return PassWithVisitor{}, err
	}

	limit, err := domain.NewTimeLimit(rawLimit)
	if err != nil {
		return PassWithVisitor{}, err
	}
	pass := domain.RestorePass(passID, passResidentID, passVisitorID, limit, daysValid, expiresAt, passCreatedAt, passUpdatedAt)

	return PassWithVisitor{
		Visitor:        visitor,
		Pass:           pass,
		ResidentUnitID: unitID,
		ResidentName:   residentName,
	}, nil
}
