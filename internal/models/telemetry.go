package models

import (
	"fmt"
	"time"
)

// Telemetry - одно наблюдение спутника.
type Telemetry struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	SatelliteID string       `gorm:"type:varchar(100);not null;index:idx_telemetry_satellite_status,priority:1" json:"satellite_id"`
	Timestamp   time.Time    `gorm:"not null;index:idx_telemetry_timestamp,sort:desc" json:"timestamp"`
	Altitude    float64      `gorm:"not null" json:"altitude"`
	Velocity    float64      `gorm:"not null" json:"velocity"`
	Status      HealthStatus `gorm:"type:varchar(20);not null;index:idx_telemetry_satellite_status,priority:2" json:"status"`
}

func (Telemetry) TableName() string {
	return "telemetry_entries"
}

func (t Telemetry) String() string {
	return fmt.Sprintf("%s - %s", t.SatelliteID, t.Timestamp.Format(time.RFC3339))
}
