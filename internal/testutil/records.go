package testutil

import (
	"time"

	"satwatch/internal/models"
)

// MakeRecord returns a valid record with defaults, modified by opts.
func MakeRecord(opts ...func(*models.Telemetry)) models.Telemetry {
	rec := models.Telemetry{
		SatelliteID: "SAT-001",
		Timestamp:   time.Now().UTC().Truncate(time.Microsecond),
		Altitude:    500.0,
		Velocity:    7.5,
		Status:      models.StatusHealthy,
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

func WithSatellite(id string) func(*models.Telemetry) {
	return func(t *models.Telemetry) { t.SatelliteID = id }
}

func WithStatus(s models.HealthStatus) func(*models.Telemetry) {
	return func(t *models.Telemetry) { t.Status = s }
}

func WithTimestamp(ts time.Time) func(*models.Telemetry) {
	return func(t *models.Telemetry) { t.Timestamp = ts }
}

func WithAltitude(a float64) func(*models.Telemetry) {
	return func(t *models.Telemetry) { t.Altitude = a }
}
