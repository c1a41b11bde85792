package repository

import (
	"context"
	"errors"

	"satwatch/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type TelemetryRepository interface {
	Create(ctx context.Context, telemetry *models.Telemetry) error
	BatchCreate(ctx context.Context, telemetries []models.Telemetry) error
	GetByID(ctx context.Context, id uint) (*models.Telemetry, error)
	// List returns matching records newest first; limit < 0 means no limit.
	List(ctx context.Context, filter TelemetryFilter, offset, limit int) ([]models.Telemetry, error)
	Count(ctx context.Context, filter TelemetryFilter) (int64, error)
	Update(ctx context.Context, telemetry *models.Telemetry) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) (int64, error)
	DistinctSatelliteIDs(ctx context.Context) ([]string, error)
}

type telemetryRepository struct {
	db *gorm.DB
}

func NewTelemetryRepository(db *gorm.DB) TelemetryRepository {
	return &telemetryRepository{db: db}
}

func (r *telemetryRepository) Create(ctx context.Context, telemetry *models.Telemetry) error {
	return r.db.WithContext(ctx).Create(telemetry).Error
}

func (r *telemetryRepository) BatchCreate(ctx context.Context, telemetries []models.Telemetry) error {
	if len(telemetries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(telemetries, 100).Error
}

func (r *telemetryRepository) GetByID(ctx context.Context, id uint) (*models.Telemetry, error) {
	var telemetry models.Telemetry
	err := r.db.WithContext(ctx).First(&telemetry, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &telemetry, nil
}

func (r *telemetryRepository) List(ctx context.Context, filter TelemetryFilter, offset, limit int) ([]models.Telemetry, error) {
	var telemetries []models.Telemetry
	err := r.db.WithContext(ctx).
		Scopes(FilterScope(filter), NewestFirst).
		Offset(offset).
		Limit(limit).
		Find(&telemetries).
		Error
	return telemetries, err
}

func (r *telemetryRepository) Count(ctx context.Context, filter TelemetryFilter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Telemetry{}).
		Scopes(FilterScope(filter)).
		Count(&count).
		Error
	return count, err
}

// Update полностью заменяет запись с telemetry.ID.
func (r *telemetryRepository) Update(ctx context.Context, telemetry *models.Telemetry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Telemetry
		if err := tx.Select("id").First(&existing, telemetry.ID).Error; err != nil {
			return notFound(err)
		}
		return tx.Save(telemetry).Error
	})
}

func (r *telemetryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Telemetry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *telemetryRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Telemetry{})
	return result.RowsAffected, result.Error
}

func (r *telemetryRepository) DistinctSatelliteIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Telemetry{}).
		Distinct().
		Order("satellite_id").
		Pluck("satellite_id", &ids).
		Error
	return ids, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
