package database

import (
	"context"
	"fmt"

	"taruf-api/core/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id          BIGSERIAL PRIMARY KEY,
		email       TEXT NOT NULL UNIQUE,
		password    TEXT NOT NULL,
		name        TEXT,
		role        TEXT NOT NULL DEFAULT 'admin',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS tarufs (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		location    TEXT,
		event_date  DATE,
		status      INT NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id             BIGSERIAL PRIMARY KEY,
		taruf_id       BIGINT NOT NULL REFERENCES tarufs(id),
		its_number     TEXT NOT NULL,
		name           TEXT NOT NULL,
		password       TEXT,
		gender         TEXT,
		group_name     TEXT,
		badge_no       TEXT,
		photo1_url     TEXT,
		date_of_birth  DATE,
		current_city   TEXT,
		counsellor     TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ,
		UNIQUE (taruf_id, its_number)
	)`,
	`CREATE TABLE IF NOT EXISTS round1_selected (
		id                        BIGSERIAL PRIMARY KEY,
		taruf_id                  BIGINT NOT NULL,
		selector_registration_id  BIGINT NOT NULL,
		selected_registration_id  BIGINT NOT NULL,
		selector_its              TEXT,
		selected_its              TEXT,
		selector_name             TEXT,
		selected_name             TEXT,
		selector_photo1url        TEXT,
		selected_photo1url        TEXT,
		selector_date_of_birth    DATE,
		selected_date_of_birth    DATE,
		selected_badge            TEXT,
		selector_counsellor       TEXT,
		first_choice              TEXT,
		room_no                   TEXT,
		created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at                TIMESTAMPTZ,
		UNIQUE (taruf_id, selector_registration_id, selected_registration_id)
	)`,
	`CREATE INDEX IF NOT EXISTS round1_selected_taruf_idx ON round1_selected (taruf_id, id)`,
	`CREATE TABLE IF NOT EXISTS round2_selected (
		id                        BIGSERIAL PRIMARY KEY,
		taruf_id                  BIGINT NOT NULL,
		selector_registration_id  BIGINT NOT NULL,
		selected_registration_id  BIGINT NOT NULL,
		selector_its              TEXT,
		selected_its              TEXT,
		selector_name             TEXT,
		selected_name             TEXT,
		selector_badge            TEXT,
		selected_badge            TEXT,
		selected_photo1url        TEXT,
		selected_date_of_birth    DATE,
		created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (taruf_id, selector_registration_id)
	)`,
	`CREATE TABLE IF NOT EXISTS round1_slot (
		id                        BIGSERIAL PRIMARY KEY,
		taruf_id                  BIGINT NOT NULL,
		selector_registration_id  BIGINT NOT NULL,
		selected_registration_id  BIGINT NOT NULL,
		candidate_its             TEXT,
		slot                      INT NOT NULL DEFAULT 0,
		room_no                   TEXT,
		timings                   TEXT,
		is_perfect_match          BOOLEAN NOT NULL DEFAULT FALSE,
		is_first_choice           BOOLEAN NOT NULL DEFAULT FALSE,
		admin_note                TEXT,
		created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at                TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS round1_slot_taruf_slot_idx ON round1_slot (taruf_id, slot)`,
}

// Migrate creates the tables the service needs. Every statement is idempotent.
func Migrate(ctx context.Context, db IDatabase) error {
	for i, stmt := range schema {
		if err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	logger.Info("Database:Migrate:Done", "statements", len(schema))
	return nil
}
