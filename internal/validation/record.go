package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"satwatch/internal/models"
)

const maxSatelliteIDLength = 100

// CheckRecord enforces the stored-record invariants on an already typed value.
// Records built by DecodeTelemetry always pass.
func CheckRecord(t *models.Telemetry) error {
	errs := FieldErrors{}

	switch id := strings.TrimSpace(t.SatelliteID); {
	case id == "":
		errs.Add("satellite_id", msgBlank)
	case utf8.RuneCountInString(t.SatelliteID) > maxSatelliteIDLength:
		errs.Add("satellite_id", fmt.Sprintf(msgTooLong, fmt.Sprint(maxSatelliteIDLength)))
	}
	if t.Timestamp.IsZero() {
		errs.Add("timestamp", msgRequired)
	}
	if math.IsNaN(t.Altitude) || t.Altitude < 0 {
		errs.Add("altitude", fmt.Sprintf(msgNegative, "Altitude"))
	}
	if math.IsNaN(t.Velocity) || t.Velocity < 0 {
		errs.Add("velocity", fmt.Sprintf(msgNegative, "Velocity"))
	}
	if !t.Status.IsValid() {
		errs.Add("status", fmt.Sprintf(msgInvalidChoice, t.Status))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
