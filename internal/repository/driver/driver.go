package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"delivery/internal/entities"
	"delivery/internal/repository"
	"delivery/internal/service/driver"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const driverColumns = `id, user_id, vehicle_type, vehicle_number,
	latitude, longitude, address, available, current_delivery_id,
	rating, total_deliveries, created_at, updated_at`

// haversineMeters is the great-circle distance between the driver row
// and the ($1, $2) center, in meters. Plain trigonometry keeps the query
// on a stock Postgres without PostGIS.
const haversineMeters = `2 * 6371000 * asin(sqrt(
		power(sin(radians(latitude - $1) / 2), 2) +
		cos(radians($1)) * cos(radians(latitude)) *
		power(sin(radians(longitude - $2) / 2), 2)))`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, driverModifyEntity entities.DriverModify) (int64, error) {
	driverModifyModel := FromDomainModify(&driverModifyEntity)
	query := `INSERT INTO drivers (user_id, vehicle_type, vehicle_number, latitude, longitude, address, rating)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, 0))
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		driverModifyModel.UserID,
		driverModifyModel.VehicleType,
		driverModifyModel.VehicleNumber,
		driverModifyModel.Latitude,
		driverModifyModel.Longitude,
		driverModifyModel.Address,
		driverModifyModel.Rating,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, driver.ErrDriverConflict
		}
		return 0, fmt.Errorf("unexpected driver repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Driver, error) {
	query := `SELECT ` + driverColumns + `
		FROM drivers
		WHERE id = $1`

	driverModel, err := scanDriverRow(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrDriverNotFound
		}

		return nil, fmt.Errorf("unexpected driver repository getbyid error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Driver, error) {
	query := `SELECT ` + driverColumns + `
		FROM drivers
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository getall error: %w", err)
	}
	defer rows.Close()

	driverModels, err := collectDriverRows(rows)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository getall error: %w", err)
	}

	return ToDomainList(driverModels), nil
}

// FindAvailableWithinRadius returns free drivers with a known position
// inside the ring, best rated first with the id as a stable tie-break.
func (r *Repository) FindAvailableWithinRadius(ctx context.Context, center entities.Location, radiusMeters float64) ([]entities.Driver, error) {
	query := `SELECT ` + driverColumns + `
		FROM drivers
		WHERE available = true
		  AND current_delivery_id IS NULL
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
		  AND ` + haversineMeters + ` <= $3
		ORDER BY rating DESC, id ASC`

	rows, err := r.querier.Query(ctx, query, center.Latitude, center.Longitude, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository findavailable error: %w", err)
	}
	defer rows.Close()

	driverModels, err := collectDriverRows(rows)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository findavailable error: %w", err)
	}

	return ToDomainList(driverModels), nil
}

func (r *Repository) UpdateLocation(ctx context.Context, id int64, location entities.Location) (*entities.Driver, error) {
	query := `UPDATE drivers
		SET latitude = $2, longitude = $3, address = NULLIF($4, ''), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + driverColumns

	driverModel, err := scanDriverRow(r.querier.QueryRow(
		ctx,
		query,
		id,
		location.Latitude,
		location.Longitude,
		location.Address,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrDriverNotFound
		}

		return nil, fmt.Errorf("unexpected driver repository updatelocation error: %w", err)
	}

	return ToDomain(driverModel), nil
}

// SetAvailability flips the manual flag. Going available is refused while
// the row still references an active delivery.
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) (*entities.Driver, error) {
	query := `UPDATE drivers
		SET available = $2, updated_at = NOW()
		WHERE id = $1
		  AND ($2::boolean = false OR current_delivery_id IS NULL)
		RETURNING ` + driverColumns

	driverModel, err := scanDriverRow(r.querier.QueryRow(ctx, query, id, available))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.resolveMissedUpdate(ctx, id, driver.ErrDriverBusy)
		}

		return nil, fmt.Errorf("unexpected driver repository setavailability error: %w", err)
	}

	return ToDomain(driverModel), nil
}

// Reserve is the assignment compare-and-set: the row is claimed only when
// it is still available and unpinned, concurrent claimants lose with
// ErrDriverReserved.
func (r *Repository) Reserve(ctx context.Context, id, deliveryID int64) (*entities.Driver, error) {
	query := `UPDATE drivers
		SET available = false, current_delivery_id = $2, updated_at = NOW()
		WHERE id = $1
		  AND available = true
		  AND current_delivery_id IS NULL
		RETURNING ` + driverColumns

	driverModel, err := scanDriverRow(r.querier.QueryRow(ctx, query, id, deliveryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.resolveMissedUpdate(ctx, id, driver.ErrDriverReserved)
		}
		// Under Serializable the losing claimant does not see zero rows,
		// Postgres aborts its transaction with a serialization failure.
		if repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, driver.ErrDriverReserved
		}

		return nil, fmt.Errorf("unexpected driver repository reserve error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) Release(ctx context.Context, id int64, completed bool) (*entities.Driver, error) {
	query := `UPDATE drivers
		SET available = true,
		    current_delivery_id = NULL,
		    total_deliveries = total_deliveries + CASE WHEN $2 THEN 1 ELSE 0 END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + driverColumns

	driverModel, err := scanDriverRow(r.querier.QueryRow(ctx, query, id, completed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrDriverNotFound
		}

		return nil, fmt.Errorf("unexpected driver repository release error: %w", err)
	}

	return ToDomain(driverModel), nil
}

// resolveMissedUpdate disambiguates a guarded UPDATE that touched no
// rows: a missing driver reports not found, an existing one reports the
// guard failure the caller expects.
func (r *Repository) resolveMissedUpdate(ctx context.Context, id int64, guardErr error) error {
	query := `SELECT 1 FROM drivers WHERE id = $1`

	var one int
	err := r.querier.QueryRow(ctx, query, id).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return driver.ErrDriverNotFound
		}
		return fmt.Errorf("unexpected driver repository existence check error: %w", err)
	}

	return guardErr
}

func scanDriverRow(row pgx.Row) (*DriverDB, error) {
	var driverModel DriverDB
	err := row.Scan(
		&driverModel.ID,
		&driverModel.UserID,
		&driverModel.VehicleType,
		&driverModel.VehicleNumber,
		&driverModel.Latitude,
		&driverModel.Longitude,
		&driverModel.Address,
		&driverModel.Available,
		&driverModel.CurrentDeliveryID,
		&driverModel.Rating,
		&driverModel.TotalDeliveries,
		&driverModel.CreatedAt,
		&driverModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &driverModel, nil
}

func collectDriverRows(rows pgx.Rows) ([]DriverDB, error) {
	driverModels := make([]DriverDB, 0, 8)
	for rows.Next() {
		var driverModel DriverDB
		err := rows.Scan(
			&driverModel.ID,
			&driverModel.UserID,
			&driverModel.VehicleType,
			&driverModel.VehicleNumber,
			&driverModel.Latitude,
			&driverModel.Longitude,
			&driverModel.Address,
			&driverModel.Available,
			&driverModel.CurrentDeliveryID,
			&driverModel.Rating,
			&driverModel.TotalDeliveries,
			&driverModel.CreatedAt,
			&driverModel.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		driverModels = append(driverModels, driverModel)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return driverModels, nil
}
