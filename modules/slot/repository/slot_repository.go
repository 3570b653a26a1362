package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taruf-api/core/database"
	"taruf-api/core/logger"
	"taruf-api/modules/slot/entity"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// SlotRepository reads round-1 selections and owns the round1_slot table.
type SlotRepository struct {
	DB database.Database
}

// NewSlotRepository creates a new repository
func NewSlotRepository(db database.Database) *SlotRepository {
	return &SlotRepository{DB: db}
}

type SlotRepositoryInterface interface {
	ListSelectionsByTaruf(ctx context.Context, tarufID int64) ([]entity.Selection, error)

	// ReplaceAutoAssignments deletes the event's auto rows and inserts rows
	// in one transaction. It returns how many old rows were removed.
	ReplaceAutoAssignments(ctx context.Context, tarufID int64, rows []entity.SlotAssignment) (int64, error)
	ClearAutoSlots(ctx context.Context, tarufID int64, slot int) (int64, error)
	UpdateManualSlot(ctx context.Context, m *entity.ManualSlot) (*entity.SlotAssignment, error)
	SetSlotTimings(ctx context.Context, tarufID int64, slot int, timings string) (int64, error)

	HasSlottedSelected(ctx context.Context, tarufID int64, registrationID int64) (bool, error)
	GetFirstChoiceAssignment(ctx context.Context, tarufID int64, selectorID int64) (*entity.SlotAssignment, error)
	UpdateSelectedRegistration(ctx context.Context, id int64, selectedID int64, candidateITS *string) (*entity.SlotAssignment, error)

	ListAssignmentsForRegistration(ctx context.Context, tarufID int64, registrationID int64) ([]entity.SlotAssignment, error)
	ListAssignments(ctx context.Context, tarufID int64) ([]entity.SlotAssignment, error)
	GetProfilesByIDs(ctx context.Context, ids []int64) ([]entity.Profile, error)
}

const assignmentColumns = `
	id, taruf_id, selector_registration_id, selected_registration_id, candidate_its,
	slot, room_no, timings, is_perfect_match, is_first_choice, admin_note, created_at, updated_at`

func (r *SlotRepository) ListSelectionsByTaruf(ctx context.Context, tarufID int64) ([]entity.Selection, error) {
	query := `
		SELECT id, taruf_id, selector_registration_id, selected_registration_id,
		       selector_its, selected_its, first_choice, room_no
		FROM round1_selected
		WHERE taruf_id = $1
		ORDER BY id
	`

	selections := []entity.Selection{}
	if err := r.DB.SelectContext(ctx, &selections, query, tarufID); err != nil {
		logger.Error("SlotRepository:ListSelectionsByTaruf", err)
		return nil, err
	}
	return selections, nil
}

func (r *SlotRepository) ReplaceAutoAssignments(ctx context.Context, tarufID int64, rows []entity.SlotAssignment) (int64, error) {
	var deleted int64
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM round1_slot
			WHERE taruf_id = $1 AND (is_perfect_match OR is_first_choice)
		`, tarufID)
		if err != nil {
			return err
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO round1_slot (
				taruf_id, selector_registration_id, selected_registration_id, candidate_its,
				slot, room_no, timings, is_perfect_match, is_first_choice
			) VALUES (
				:taruf_id, :selector_registration_id, :selected_registration_id, :candidate_its,
				:slot, :room_no, :timings, :is_perfect_match, :is_first_choice
			)
		`, rows)
		return err
	})
	if err != nil {
		logger.Error("SlotRepository:ReplaceAutoAssignments", "taruf_id", tarufID, err)
		return 0, err
	}
	return deleted, nil
}

func (r *SlotRepository) ClearAutoSlots(ctx context.Context, tarufID int64, slot int) (int64, error) {
	res, err := r.DB.SQLx().ExecContext(ctx, `
		DELETE FROM round1_slot
		WHERE taruf_id = $1 AND slot = $2 AND (is_perfect_match OR is_first_choice)
	`, tarufID, slot)
	if err != nil {
		logger.Error("SlotRepository:ClearAutoSlots", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SlotRepository) UpdateManualSlot(ctx context.Context, m *entity.ManualSlot) (*entity.SlotAssignment, error) {
	set := []string{"slot = $4", "updated_at = NOW()"}
	args := []any{m.TarufID, m.SelectorRegistrationID, m.SelectedRegistrationID, m.Slot}
	if m.RoomNoSet {
		args = append(args, m.RoomNo)
		set = append(set, fmt.Sprintf("room_no = $%d", len(args)))
	}
	if m.CandidateITSSet {
		args = append(args, m.CandidateITS)
		set = append(set, fmt.Sprintf("candidate_its = $%d", len(args)))
	}

	query := `
		UPDATE round1_slot
		SET ` + strings.Join(set, ", ") + `
		WHERE taruf_id = $1 AND selector_registration_id = $2 AND selected_registration_id = $3
		RETURNING ` + assignmentColumns

	var updated entity.SlotAssignment
	err := r.DB.GetContext(ctx, &updated, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SlotRepository:UpdateManualSlot", err)
		return nil, err
	}
	return &updated, nil
}

func (r *SlotRepository) SetSlotTimings(ctx context.Context, tarufID int64, slot int, timings string) (int64, error) {
	res, err := r.DB.SQLx().ExecContext(ctx, `
		UPDATE round1_slot SET timings = $3, updated_at = NOW()
		WHERE taruf_id = $1 AND slot = $2
	`, tarufID, slot, timings)
	if err != nil {
		logger.Error("SlotRepository:SetSlotTimings", "slot", slot, err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SlotRepository) HasSlottedSelected(ctx context.Context, tarufID int64, registrationID int64) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM round1_slot
			WHERE taruf_id = $1 AND selected_registration_id = $2 AND slot > 0
		)
	`, tarufID, registrationID)
	if err != nil {
		logger.Error("SlotRepository:HasSlottedSelected", err)
		return false, err
	}
	return exists, nil
}

func (r *SlotRepository) GetFirstChoiceAssignment(ctx context.Context, tarufID int64, selectorID int64) (*entity.SlotAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM round1_slot
		WHERE taruf_id = $1 AND selector_registration_id = $2 AND is_first_choice
		ORDER BY id
		LIMIT 1
	`

	var row entity.SlotAssignment
	if err := r.DB.GetContext(ctx, &row, query, tarufID, selectorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SlotRepository:GetFirstChoiceAssignment", err)
		return nil, err
	}
	return &row, nil
}

func (r *SlotRepository) UpdateSelectedRegistration(ctx context.Context, id int64, selectedID int64, candidateITS *string) (*entity.SlotAssignment, error) {
	query := `
		UPDATE round1_slot
		SET selected_registration_id = $2, candidate_its = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + assignmentColumns

	var row entity.SlotAssignment
	if err := r.DB.GetContext(ctx, &row, query, id, selectedID, candidateITS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SlotRepository:UpdateSelectedRegistration", err)
		return nil, err
	}
	return &row, nil
}

func (r *SlotRepository) ListAssignmentsForRegistration(ctx context.Context, tarufID int64, registrationID int64) ([]entity.SlotAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM round1_slot
		WHERE taruf_id = $1 AND (selector_registration_id = $2 OR selected_registration_id = $2)
		ORDER BY slot, id
	`

	rows := []entity.SlotAssignment{}
	if err := r.DB.SelectContext(ctx, &rows, query, tarufID, registrationID); err != nil {
		logger.Error("SlotRepository:ListAssignmentsForRegistration", err)
		return nil, err
	}
	return rows, nil
}

func (r *SlotRepository) ListAssignments(ctx context.Context, tarufID int64) ([]entity.SlotAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM round1_slot
		WHERE taruf_id = $1
		ORDER BY slot, id
	`

	rows := []entity.SlotAssignment{}
	if err := r.DB.SelectContext(ctx, &rows, query, tarufID); err != nil {
		logger.Error("SlotRepository:ListAssignments", err)
		return nil, err
	}
	return rows, nil
}

func (r *SlotRepository) GetProfilesByIDs(ctx context.Context, ids []int64) ([]entity.Profile, error) {
	profiles := []entity.Profile{}
	if len(ids) == 0 {
		return profiles, nil
	}

	query := `
		SELECT id, name, photo1_url, its_number, badge_no
		FROM registrations
		WHERE id = ANY($1)
	`
	if err := r.DB.SelectContext(ctx, &profiles, query, pq.Array(ids)); err != nil {
		logger.Error("SlotRepository:GetProfilesByIDs", err)
		return nil, err
	}
	return profiles, nil
}
