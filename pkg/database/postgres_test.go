package database

import (
	"testing"

	"hostal-booking/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestConnStringEscapesCredentials(t *testing.T) {
	config := utils.DatabaseConfig{
		Host:     "db.local",
		Port:     "5432",
		Name:     "hostal",
		User:     "app",
		Password: "p@ss word/1",
	}

	parsed, err := pgxpool.ParseConfig(connString(config))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cc := parsed.ConnConfig
	if cc.Password != config.Password || cc.User != "app" || cc.Database != "hostal" || cc.Host != "db.local" || cc.Port != 5432 {
		t.Fatalf("round trip = %s@%s:%d/%s (%q)", cc.User, cc.Host, cc.Port, cc.Database, cc.Password)
	}
}
