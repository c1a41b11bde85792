package repository

import "gorm.io/gorm"

// TelemetryFilter - необязательные условия равенства, объединяемые через AND.
// Пустое поле ничего не ограничивает.
type TelemetryFilter struct {
	SatelliteID string
	Status      string
}

func (f TelemetryFilter) IsEmpty() bool {
	return f.SatelliteID == "" && f.Status == ""
}

// FilterScope applies the filter as a conjunction of exact, case-sensitive matches.
func FilterScope(f TelemetryFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.SatelliteID != "" {
			db = db.Where("satellite_id = ?", f.SatelliteID)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		return db
	}
}

// NewestFirst is the default ordering of every telemetry listing.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp DESC, id DESC")
}
