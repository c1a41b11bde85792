package models

import (
	"database/sql/driver"
	"fmt"
)

// HealthStatus описывает состояние спутника в момент наблюдения.
// Нулевое значение - StatusHealthy.
type HealthStatus uint8

const (
	StatusHealthy HealthStatus = iota
	StatusWarning
	StatusCritical
)

var healthStatusNames = [...]string{
	StatusHealthy:  "healthy",
	StatusWarning:  "warning",
	StatusCritical: "critical",
}

// HealthStatuses returns every status in display order.
func HealthStatuses() []HealthStatus {
	return []HealthStatus{StatusHealthy, StatusWarning, StatusCritical}
}

func ParseHealthStatus(s string) (HealthStatus, error) {
	for i, name := range healthStatusNames {
		if name == s {
			return HealthStatus(i), nil
		}
	}
	return StatusHealthy, fmt.Errorf("unknown health status %q", s)
}

func (s HealthStatus) IsValid() bool {
	return int(s) < len(healthStatusNames)
}

func (s HealthStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("HealthStatus(%d)", uint8(s))
	}
	return healthStatusNames[s]
}

// Label is the capitalised name shown in the listing page.
func (s HealthStatus) Label() string {
	switch s {
	case StatusWarning:
		return "Warning"
	case StatusCritical:
		return "Critical"
	default:
		return "Healthy"
	}
}

func (s HealthStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid health status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *HealthStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseHealthStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value хранит статус в БД строкой.
func (s HealthStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid health status %d", uint8(s))
	}
	return s.String(), nil
}

func (s *HealthStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	case nil:
		*s = StatusHealthy
		return nil
	default:
		return fmt.Errorf("cannot scan %T into HealthStatus", src)
	}
}
