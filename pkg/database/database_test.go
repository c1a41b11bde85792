package database

import (
	"strings"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

func TestDialectorPostgres(t *testing.T) {
	d, err := Dialector(Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "satwatch", SSLMode: "disable"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pg, ok := d.(*postgres.Dialector)
	if !ok {
		t.Fatalf("expected postgres dialector, got %T", d)
	}
	for _, part := range []string{"host=db", "port=5432", "dbname=satwatch", "sslmode=disable", "TimeZone=UTC"} {
		if !strings.Contains(pg.Config.DSN, part) {
			t.Fatalf("expected DSN %q to contain %q", pg.Config.DSN, part)
		}
	}
}

func TestDialectorMySQL(t *testing.T) {
	d, err := Dialector(Config{Driver: "mysql", Host: "db", Port: "3306", User: "u", Password: "p", DBName: "satwatch"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	my, ok := d.(*mysql.Dialector)
	if !ok {
		t.Fatalf("expected mysql dialector, got %T", d)
	}
	if want := "u:p@tcp(db:3306)/satwatch?charset=utf8mb4&parseTime=True&loc=UTC"; my.Config.DSN != want {
		t.Fatalf("expected DSN %q, got %q", want, my.Config.DSN)
	}
}

func TestDialectorUnknownDriver(t *testing.T) {
	if _, err := Dialector(Config{Driver: "sqlite"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
