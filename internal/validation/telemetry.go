package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"satwatch/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired      = "This field is required."
	msgNull          = "This field may not be null."
	msgBlank         = "This field may not be blank."
	msgNotANumber    = "A valid number is required."
	msgNotAString    = "Not a valid string."
	msgTooLong       = "Ensure this field has no more than %s characters."
	msgBadTimestamp  = "Datetime has wrong format. Use one of these formats instead: " + TimestampFormatHint + "."
	msgInvalidChoice = "\"%v\" is not a valid choice."
	// Граница на самом деле >= 0, формулировка сохранена как есть.
	msgNegative = "%s must be a positive number."
)

type telemetryPayload struct {
	SatelliteID *string  `json:"satellite_id" validate:"required,min=1,max=100"`
	Timestamp   *string  `json:"timestamp" validate:"required,iso8601"`
	Altitude    *float64 `json:"altitude" validate:"required,gte=0"`
	Velocity    *float64 `json:"velocity" validate:"required,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=healthy warning critical"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// DecodeTelemetry parses and validates a full telemetry payload. On failure it
// returns FieldErrors listing every rejected field, or an error wrapping
// ErrMalformedRequest when the body is not a JSON object.
func DecodeTelemetry(body []byte) (*models.Telemetry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedRequest)
	}

	var p telemetryPayload
	errs := FieldErrors{}

	decodeField(raw, "satellite_id", &p.SatelliteID, msgNotAString, errs)
	decodeField(raw, "timestamp", &p.Timestamp, msgBadTimestamp, errs)
	decodeField(raw, "altitude", &p.Altitude, msgNotANumber, errs)
	decodeField(raw, "velocity", &p.Velocity, msgNotANumber, errs)
	decodeField(raw, "status", &p.Status, msgNotAString, errs)

	if p.SatelliteID != nil {
		trimmed := strings.TrimSpace(*p.SatelliteID)
		p.SatelliteID = &trimmed
	}

	if err := validate.Struct(&p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate payload: %w", err)
		}
		for _, fe := range verrs {
			// Поле уже отклонено на этапе декодирования
			if errs.Has(fe.Field()) && fe.Tag() == "required" {
				continue
			}
			errs.Add(fe.Field(), message(fe))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	ts, _ := ParseTimestamp(*p.Timestamp)
	status := models.StatusHealthy
	if p.Status != nil {
		status, _ = models.ParseHealthStatus(*p.Status)
	}

	return &models.Telemetry{
		SatelliteID: *p.SatelliteID,
		Timestamp:   ts.UTC(),
		Altitude:    *p.Altitude,
		Velocity:    *p.Velocity,
		Status:      status,
	}, nil
}

// decodeField leaves dst nil for absent keys so the required rule reports them.
func decodeField[T any](raw map[string]json.RawMessage, key string, dst **T, typeMsg string, errs FieldErrors) {
	msg, ok := raw[key]
	if !ok {
		return
	}
	if string(msg) == "null" {
		errs.Add(key, msgNull)
		return
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		errs.Add(key, typeMsg)
		return
	}
	*dst = &v
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "min":
		return msgBlank
	case "max":
		return fmt.Sprintf(msgTooLong, fe.Param())
	case "iso8601":
		return msgBadTimestamp
	case "gte":
		return fmt.Sprintf(msgNegative, capitalize(fe.Field()))
	case "oneof":
		return fmt.Sprintf(msgInvalidChoice, deref(fe.Value()))
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func deref(v interface{}) interface{} {
	if p, ok := v.(*string); ok && p != nil {
		return *p
	}
	return v
}
