package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"delivery/internal/entities"
	"delivery/internal/repository"
	"delivery/internal/service/delivery"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const deliveryColumns = `id, order_id, driver_id,
	pickup_latitude, pickup_longitude, pickup_address,
	dropoff_latitude, dropoff_longitude, dropoff_address,
	status, estimated_delivery_time, actual_delivery_time,
	notes, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, createEntity entities.CreateDelivery) (*entities.Delivery, error) {
	query := `INSERT INTO deliveries (order_id,
			pickup_latitude, pickup_longitude, pickup_address,
			dropoff_latitude, dropoff_longitude, dropoff_address,
			notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + deliveryColumns

	deliveryModel, err := scanDeliveryRow(r.querier.QueryRow(
		ctx,
		query,
		createEntity.OrderID,
		createEntity.PickupLocation.Latitude,
		createEntity.PickupLocation.Longitude,
		createEntity.PickupLocation.Address,
		createEntity.DropoffLocation.Latitude,
		createEntity.DropoffLocation.Longitude,
		createEntity.DropoffLocation.Address,
		createEntity.Notes,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, delivery.ErrOrderAlreadyHasDelivery
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return ToDomain(deliveryModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE id = $1`

	deliveryModel, err := scanDeliveryRow(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}

		return nil, fmt.Errorf("unexpected delivery repository getbyid error: %w", err)
	}

	return ToDomain(deliveryModel), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE order_id = $1`

	deliveryModel, err := scanDeliveryRow(r.querier.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}

		return nil, fmt.Errorf("unexpected delivery repository getbyorderid error: %w", err)
	}

	return ToDomain(deliveryModel), nil
}

func (r *Repository) GetByDriverID(ctx context.Context, driverID int64) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE driver_id = $1
		ORDER BY created_at DESC`

	rows, err := r.querier.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository getbydriverid error: %w", err)
	}
	defer rows.Close()

	deliveryModels, err := collectDeliveryRows(rows)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository getbydriverid error: %w", err)
	}

	return ToDomainList(deliveryModels), nil
}

// GetPendingCreatedBefore feeds the assignment retry pass: oldest
// undispatched deliveries first, bounded by limit.
func (r *Repository) GetPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE status = 'PENDING'
		  AND created_at < $1
		ORDER BY created_at
		LIMIT $2`

	rows, err := r.querier.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository getpending error: %w", err)
	}
	defer rows.Close()

	deliveryModels, err := collectDeliveryRows(rows)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository getpending error: %w", err)
	}

	return ToDomainList(deliveryModels), nil
}

func (r *Repository) Update(ctx context.Context, deliveryModifyEntity entities.DeliveryModify) (*entities.Delivery, error) {
	deliveryModifyModel := FromDomainModify(&deliveryModifyEntity)

	builder := qb.
		Update("deliveries")

	if deliveryModifyModel.ClearDriver {
		builder = builder.Set("driver_id", nil)
	} else if deliveryModifyModel.DriverID != nil {
		builder = builder.Set("driver_id", deliveryModifyModel.DriverID)
	}
	if deliveryModifyModel.Status != nil {
		builder = builder.Set("status", deliveryModifyModel.Status)
	}
	if deliveryModifyModel.EstimatedDeliveryTime != nil {
		builder = builder.Set("estimated_delivery_time", deliveryModifyModel.EstimatedDeliveryTime)
	}
	if deliveryModifyModel.ActualDeliveryTime != nil {
		builder = builder.Set("actual_delivery_time", deliveryModifyModel.ActualDeliveryTime)
	}
	if deliveryModifyModel.Notes != nil {
		builder = builder.Set("notes", deliveryModifyModel.Notes)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": deliveryModifyModel.ID}).
		Suffix("RETURNING " + deliveryColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	deliveryModel, err := scanDeliveryRow(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}

		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	return ToDomain(deliveryModel), nil
}

func scanDeliveryRow(row pgx.Row) (*DeliveryDB, error) {
	var deliveryModel DeliveryDB
	err := row.Scan(
		&deliveryModel.ID,
		&deliveryModel.OrderID,
		&deliveryModel.DriverID,
		&deliveryModel.PickupLatitude,
		&deliveryModel.PickupLongitude,
		&deliveryModel.PickupAddress,
		&deliveryModel.DropoffLatitude,
		&deliveryModel.DropoffLongitude,
		&deliveryModel.DropoffAddress,
		&deliveryModel.Status,
		&deliveryModel.EstimatedDeliveryTime,
		&deliveryModel.ActualDeliveryTime,
		&deliveryModel.Notes,
		&deliveryModel.CreatedAt,
		&deliveryModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &deliveryModel, nil
}

func collectDeliveryRows(rows pgx.Rows) ([]DeliveryDB, error) {
	deliveryModels := make([]DeliveryDB, 0, 8)
	for rows.Next() {
		var deliveryModel DeliveryDB
		err := rows.Scan(
			&deliveryModel.ID,
			&deliveryModel.OrderID,
			&deliveryModel.DriverID,
			&deliveryModel.PickupLatitude,
			&deliveryModel.PickupLongitude,
			&deliveryModel.PickupAddress,
			&deliveryModel.DropoffLatitude,
			&deliveryModel.DropoffLongitude,
			&deliveryModel.DropoffAddress,
			&deliveryModel.Status,
			&deliveryModel.EstimatedDeliveryTime,
			&deliveryModel.ActualDeliveryTime,
			&deliveryModel.Notes,
			&deliveryModel.CreatedAt,
			&deliveryModel.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		deliveryModels = append(deliveryModels, deliveryModel)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deliveryModels, nil
}
