package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strconv"
	"time"

	"satwatch/internal/models"
	"satwatch/internal/repository"
	"satwatch/internal/utils"
	"satwatch/internal/validation"
)

// PageSize - фиксированный размер страницы списка и HTML-страницы.
const PageSize = 50

const satelliteIDsCacheKey = "telemetry:satellite_ids"

var (
	ErrInvalidPage       = errors.New("invalid page")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

type TelemetryService interface {
	List(ctx context.Context, filter repository.TelemetryFilter, page int) (*Page, error)
	Create(ctx context.Context, telemetry *models.Telemetry) (*models.Telemetry, error)
	Get(ctx context.Context, id uint) (*models.Telemetry, error)
	Update(ctx context.Context, id uint, telemetry *models.Telemetry) (*models.Telemetry, error)
	Delete(ctx context.Context, id uint) error
	SatelliteIDs(ctx context.Context) ([]string, error)
	Export(ctx context.Context, format string, filter repository.TelemetryFilter) (*Export, error)
	Seed(ctx context.Context, count int) (int, error)
}

type Page struct {
	Count    int64
	Number   int
	NumPages int
	Results  []models.Telemetry
}

func (p *Page) HasNext() bool     { return p.Number < p.NumPages }
func (p *Page) HasPrevious() bool { return p.Number > 1 }

type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

type telemetryService struct {
	repo     repository.TelemetryRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	now      func() time.Time
}

func NewTelemetryService(repo repository.TelemetryRepository, cache repository.CacheRepository, cacheTTL time.Duration) TelemetryService {
	if cache == nil {
		cache = repository.NewNoopCache()
	}
	return &telemetryService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (s *telemetryService) List(ctx context.Context, filter repository.TelemetryFilter, page int) (*Page, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count telemetry: %w", err)
	}

	numPages := int((count + PageSize - 1) / PageSize)
	if numPages == 0 {
		numPages = 1 // пустая первая страница допустима
	}
	if page > numPages {
		return nil, ErrInvalidPage
	}

	results, err := s.repo.List(ctx, filter, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list telemetry: %w", err)
	}

	return &Page{
		Count:    count,
		Number:   page,
		NumPages: numPages,
		Results:  results,
	}, nil
}

func (s *telemetryService) Create(ctx context.Context, telemetry *models.Telemetry) (*models.Telemetry, error) {
	if err := validation.CheckRecord(telemetry); err != nil {
		return nil, err
	}

	telemetry.ID = 0
	if err := s.repo.Create(ctx, telemetry); err != nil {
		return nil, fmt.Errorf("failed to save telemetry: %w", err)
	}
	s.invalidateSatelliteIDs(ctx)

	return telemetry, nil
}

func (s *telemetryService) Get(ctx context.Context, id uint) (*models.Telemetry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *telemetryService) Update(ctx context.Context, id uint, telemetry *models.Telemetry) (*models.Telemetry, error) {
	if err := validation.CheckRecord(telemetry); err != nil {
		return nil, err
	}

	telemetry.ID = id
	if err := s.repo.Update(ctx, telemetry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update telemetry %d: %w", id, err)
	}
	s.invalidateSatelliteIDs(ctx)

	return telemetry, nil
}

func (s *telemetryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete telemetry %d: %w", id, err)
	}
	s.invalidateSatelliteIDs(ctx)
	return nil
}

// SatelliteIDs returns the sorted distinct satellite ids, served from cache when possible.
func (s *telemetryService) SatelliteIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if found, err := s.cache.GetJSON(ctx, satelliteIDsCacheKey, &ids); err != nil {
		log.Printf("Failed to read satellite ids from cache: %v", err)
	} else if found {
		return ids, nil
	}

	ids, err := s.repo.DistinctSatelliteIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get satellite ids: %w", err)
	}

	if err := s.cache.SetJSON(ctx, satelliteIDsCacheKey, ids, s.cacheTTL); err != nil {
		log.Printf("Failed to cache satellite ids: %v", err)
	}
	return ids, nil
}

func (s *telemetryService) invalidateSatelliteIDs(ctx context.Context) {
	if err := s.cache.Delete(ctx, satelliteIDsCacheKey); err != nil {
		log.Printf("Failed to invalidate satellite ids cache: %v", err)
	}
}

func (s *telemetryService) Export(ctx context.Context, format string, filter repository.TelemetryFilter) (*Export, error) {
	records, err := s.repo.List(ctx, filter, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to get telemetry data: %w", err)
	}

	timestamp := s.now().UTC().Format("20060102_150405")

	switch format {
	case "csv":
		data, err := telemetryCSV(records)
		if err != nil {
			return nil, err
		}
		return &Export{
			Filename:    fmt.Sprintf("telemetry_export_%s.csv", timestamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil

	case "excel", "xlsx":
		buf, err := utils.CreateTelemetryWorkbook(records)
		if err != nil {
			return nil, fmt.Errorf("failed to create Excel file: %w", err)
		}
		return &Export{
			Filename:    fmt.Sprintf("telemetry_export_%s.xlsx", timestamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        buf.Bytes(),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func telemetryCSV(records []models.Telemetry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"id", "satellite_id", "timestamp", "altitude", "velocity", "status"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, record := range records {
		row := []string{
			strconv.FormatUint(uint64(record.ID), 10),
			record.SatelliteID,
			record.Timestamp.UTC().Format(time.RFC3339Nano),
			strconv.FormatFloat(record.Altitude, 'f', -1, 64),
			strconv.FormatFloat(record.Velocity, 'f', -1, 64),
			record.Status.String(),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// Seed очищает таблицу и заполняет ее случайными записями.
func (s *telemetryService) Seed(ctx context.Context, count int) (int, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear telemetry: %w", err)
	}
	log.Printf("Cleared %d telemetry entries", deleted)

	records := s.generateSampleData(count)
	if err := s.repo.BatchCreate(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to seed telemetry: %w", err)
	}
	s.invalidateSatelliteIDs(ctx)

	return len(records), nil
}

func (s *telemetryService) generateSampleData(count int) []models.Telemetry {
	statuses := models.HealthStatuses()
	now := s.now().UTC()

	records := make([]models.Telemetry, 0, count)
	for i := 0; i < count; i++ {
		age := time.Duration(rand.Intn(31))*24*time.Hour +
			time.Duration(rand.Intn(24))*time.Hour +
			time.Duration(rand.Intn(60))*time.Minute

		records = append(records, models.Telemetry{
			SatelliteID: fmt.Sprintf("SAT-%03d", rand.Intn(10)+1),
			Timestamp:   now.Add(-age),
			Altitude:    randFloat(200, 36000),
			Velocity:    randFloat(3, 11),
			Status:      statuses[rand.Intn(len(statuses))],
		})
	}

	return records
}

func randFloat(min, max float64) float64 {
	return math.Round((min+rand.Float64()*(max-min))*100) / 100
}
