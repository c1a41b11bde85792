package models

import (
	"encoding/json"
	"testing"
)

func TestParseHealthStatus(t *testing.T) {
	tests := []struct {
		in   string
		want HealthStatus
	}{
		{"healthy", StatusHealthy},
		{"warning", StatusWarning},
		{"critical", StatusCritical},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHealthStatus(tc.in)
			if err != nil {
				t.Fatalf("ParseHealthStatus(%q) err = %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseHealthStatus(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	for _, bad := range []string{"", "exploded", "Healthy", "CRITICAL", " warning"} {
		if _, err := ParseHealthStatus(bad); err == nil {
			t.Fatalf("ParseHealthStatus(%q) = nil error, want error", bad)
		}
	}
}

func TestHealthStatusZeroValueIsHealthy(t *testing.T) {
	var s HealthStatus
	if s != StatusHealthy {
		t.Fatalf("zero HealthStatus = %v, want healthy", s)
	}
	var rec Telemetry
	if rec.Status.String() != "healthy" {
		t.Fatalf("zero Telemetry status = %q, want healthy", rec.Status.String())
	}
}

func TestHealthStatusesClosedSet(t *testing.T) {
	all := HealthStatuses()
	if len(all) != 3 {
		t.Fatalf("len(HealthStatuses()) = %d, want 3", len(all))
	}
	seen := map[string]bool{}
	for _, s := range all {
		seen[s.String()] = true
	}
	for _, name := range []string{"healthy", "warning", "critical"} {
		if !seen[name] {
			t.Fatalf("HealthStatuses() missing %q", name)
		}
	}
	if HealthStatus(3).IsValid() {
		t.Fatal("HealthStatus(3) reported valid")
	}
}

func TestHealthStatusJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Status HealthStatus `json:"status"`
	}{StatusCritical})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"status":"critical"}` {
		t.Fatalf("marshal = %s", b)
	}

	var out struct {
		Status HealthStatus `json:"status"`
	}
	if err := json.Unmarshal([]byte(`{"status":"warning"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Status != StatusWarning {
		t.Fatalf("unmarshal status = %v, want warning", out.Status)
	}
	if err := json.Unmarshal([]byte(`{"status":"exploded"}`), &out); err == nil {
		t.Fatal("unmarshal of unknown status succeeded")
	}
	if _, err := json.Marshal(HealthStatus(9)); err == nil {
		t.Fatal("marshal of out-of-range status succeeded")
	}
}

func TestHealthStatusScanValue(t *testing.T) {
	v, err := StatusWarning.Value()
	if err != nil || v != "warning" {
		t.Fatalf("Value() = %v, %v; want warning", v, err)
	}

	var s HealthStatus
	if err := s.Scan([]byte("critical")); err != nil || s != StatusCritical {
		t.Fatalf("Scan([]byte) = %v, %v", s, err)
	}
	if err := s.Scan("healthy"); err != nil || s != StatusHealthy {
		t.Fatalf("Scan(string) = %v, %v", s, err)
	}
	if err := s.Scan(42); err == nil {
		t.Fatal("Scan(int) succeeded")
	}
	if err := s.Scan("broken"); err == nil {
		t.Fatal("Scan of unknown name succeeded")
	}
}
