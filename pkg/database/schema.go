package database

import (
	"context"
	"fmt"
)

// schema is idempotent. The exclusion constraint is the storage-level guard
// against two occupying reservations overlapping on the same room; the
// application additionally serializes writers per room with an advisory lock.
const schema = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS rooms (
	id                 UUID PRIMARY KEY,
	number             TEXT NOT NULL UNIQUE,
	type               TEXT NOT NULL CHECK (type IN ('single', 'double', 'triple', 'family')),
	capacity           INT NOT NULL CHECK (capacity > 0),
	nightly_rate_cents BIGINT NOT NULL CHECK (nightly_rate_cents > 0),
	amenities          TEXT[] NOT NULL DEFAULT '{}',
	description        TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS room_rates (
	room_id    UUID NOT NULL REFERENCES rooms(id),
	rate_date  DATE NOT NULL,
	rate_cents BIGINT NOT NULL CHECK (rate_cents > 0),
	PRIMARY KEY (room_id, rate_date)
);

CREATE TABLE IF NOT EXISTS guests (
	id            UUID PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	phone_digits  TEXT NOT NULL DEFAULT '',
	visit_count   INT NOT NULL DEFAULT 0 CHECK (visit_count >= 0),
	password_hash TEXT,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS guests_email_idx ON guests (lower(email));
CREATE INDEX IF NOT EXISTS guests_phone_digits_idx ON guests (phone_digits);

CREATE TABLE IF NOT EXISTS reservations (
	id                UUID PRIMARY KEY,
	code              TEXT NOT NULL,
	guest_id          UUID NOT NULL REFERENCES guests(id),
	room_id           UUID NOT NULL REFERENCES rooms(id),
	check_in          DATE NOT NULL,
	check_out         DATE NOT NULL,
	party_size        INT NOT NULL CHECK (party_size > 0),
	total_price_cents BIGINT NOT NULL,
	status            TEXT NOT NULL CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')),
	payment_method    TEXT,
	notes             TEXT,
	visit_credited    BOOLEAN NOT NULL DEFAULT FALSE,
	version           BIGINT NOT NULL DEFAULT 1,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL,
	CHECK (check_out > check_in),
	CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
		room_id WITH =,
		daterange(check_in, check_out, '[)') WITH &&
	) WHERE (status IN ('pending', 'confirmed'))
);
CREATE UNIQUE INDEX IF NOT EXISTS reservations_code_idx ON reservations (upper(code));
CREATE INDEX IF NOT EXISTS reservations_room_stay_idx ON reservations (room_id, check_in, check_out);
CREATE INDEX IF NOT EXISTS reservations_guest_idx ON reservations (guest_id, created_at DESC);

CREATE TABLE IF NOT EXISTS reservation_code_counters (
	period   TEXT PRIMARY KEY,
	last_seq INT NOT NULL
);

CREATE TABLE IF NOT EXISTS staff_users (
	id         UUID PRIMARY KEY,
	full_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	password   TEXT NOT NULL,
	role       TEXT NOT NULL CHECK (role IN ('staff', 'admin')),
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS staff_users_email_idx ON staff_users (lower(email));

CREATE TABLE IF NOT EXISTS sessions (
	id           UUID PRIMARY KEY,
	subject_id   UUID NOT NULL,
	subject_kind TEXT NOT NULL CHECK (subject_kind IN ('guest', 'staff')),
	token        UUID NOT NULL UNIQUE,
	user_agent   TEXT,
	ip_address   TEXT,
	expires_at   TIMESTAMPTZ NOT NULL,
	revoked_at   TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the tables the repositories expect.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
