package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taruf-api/core/database"
	"taruf-api/core/logger"
	"taruf-api/modules/selection/dto"
	"taruf-api/modules/selection/entity"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// SelectionRepository owns the round1_selected and round2_selected tables.
type SelectionRepository struct {
	DB database.Database
}

func NewSelectionRepository(db database.Database) *SelectionRepository {
	return &SelectionRepository{DB: db}
}

type SelectionRepositoryInterface interface {
	GetSelectorState(ctx context.Context, tarufID int64, selectorID int64) (entity.SelectorState, error)
	GetCandidates(ctx context.Context, tarufID int64, ids []int64) ([]entity.Candidate, error)

	// InsertRound1 stores rows in one transaction, skipping pairs that
	// already exist, and returns how many were inserted.
	InsertRound1(ctx context.Context, rows []entity.Round1Selection) (int64, error)
	// AddRound1 returns nil when the pair already exists.
	AddRound1(ctx context.Context, row *entity.Round1Selection) (*entity.Round1Selection, error)
	DeleteRound1(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (int64, error)
	SetFirstChoice(ctx context.Context, tarufID int64, selectorID int64, firstChoice *string) (int64, error)
	ListRound1(ctx context.Context, filter dto.Round1Filter) ([]entity.Round1Selection, error)

	HasRound2(ctx context.Context, tarufID int64, selectorID int64) (bool, error)
	// InsertRound2 returns nil when the selector already has a round-2 pick.
	InsertRound2(ctx context.Context, row *entity.Round2Selection) (*entity.Round2Selection, error)
}

const round1Columns = `
	id, taruf_id, selector_registration_id, selected_registration_id,
	selector_its, selected_its, selector_name, selected_name,
	selector_photo1url, selected_photo1url, selector_date_of_birth, selected_date_of_birth,
	selected_badge, selector_counsellor, first_choice, room_no, created_at`

const insertRound1Query = `
	INSERT INTO round1_selected (
		taruf_id, selector_registration_id, selected_registration_id,
		selector_its, selected_its, selector_name, selected_name,
		selector_photo1url, selected_photo1url, selector_date_of_birth, selected_date_of_birth,
		selected_badge, selector_counsellor, first_choice
	) VALUES (
		:taruf_id, :selector_registration_id, :selected_registration_id,
		:selector_its, :selected_its, :selector_name, :selected_name,
		:selector_photo1url, :selected_photo1url, :selector_date_of_birth, :selected_date_of_birth,
		:selected_badge, :selector_counsellor, :first_choice
	)
	ON CONFLICT (taruf_id, selector_registration_id, selected_registration_id) DO NOTHING`

func (r *SelectionRepository) GetSelectorState(ctx context.Context, tarufID int64, selectorID int64) (entity.SelectorState, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE room_no IS NOT NULL AND TRIM(room_no) <> '') AS locked
		FROM round1_selected
		WHERE taruf_id = $1 AND selector_registration_id = $2
	`

	var state entity.SelectorState
	if err := r.DB.GetContext(ctx, &state, query, tarufID, selectorID); err != nil {
		logger.Error("SelectionRepository:GetSelectorState", err)
		return state, err
	}
	return state, nil
}

func (r *SelectionRepository) GetCandidates(ctx context.Context, tarufID int64, ids []int64) ([]entity.Candidate, error) {
	candidates := []entity.Candidate{}
	if len(ids) == 0 {
		return candidates, nil
	}

	query := `
		SELECT id, taruf_id, its_number, name, photo1_url, date_of_birth, badge_no, counsellor
		FROM registrations
		WHERE taruf_id = $1 AND id = ANY($2)
	`
	if err := r.DB.SelectContext(ctx, &candidates, query, tarufID, pq.Array(ids)); err != nil {
		logger.Error("SelectionRepository:GetCandidates", err)
		return nil, err
	}
	return candidates, nil
}

func (r *SelectionRepository) InsertRound1(ctx context.Context, rows []entity.Round1Selection) (int64, error) {
	var inserted int64
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		for i := range rows {
			res, err := tx.NamedExecContext(ctx, insertRound1Query, &rows[i])
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		logger.Error("SelectionRepository:InsertRound1", err)
		return 0, err
	}
	return inserted, nil
}

func (r *SelectionRepository) AddRound1(ctx context.Context, row *entity.Round1Selection) (*entity.Round1Selection, error) {
	query := `
		INSERT INTO round1_selected (
			taruf_id, selector_registration_id, selected_registration_id,
			selector_its, selected_its, selector_name, selected_name,
			selector_photo1url, selected_photo1url, selector_date_of_birth, selected_date_of_birth,
			selected_badge, selector_counsellor
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (taruf_id, selector_registration_id, selected_registration_id) DO NOTHING
		RETURNING` + round1Columns

	var out entity.Round1Selection
	err := r.DB.GetContext(ctx, &out, query,
		row.TarufID, row.SelectorRegistrationID, row.SelectedRegistrationID,
		row.SelectorITS, row.SelectedITS, row.SelectorName, row.SelectedName,
		row.SelectorPhoto1URL, row.SelectedPhoto1URL, row.SelectorDateOfBirth, row.SelectedDateOfBirth,
		row.SelectedBadge, row.SelectorCounsellor,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SelectionRepository:AddRound1", err)
		return nil, err
	}
	return &out, nil
}

func (r *SelectionRepository) DeleteRound1(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (int64, error) {
	query := `
		DELETE FROM round1_selected
		WHERE taruf_id = $1 AND selector_registration_id = $2 AND selected_registration_id = $3
	`

	res, err := r.DB.SQLx().ExecContext(ctx, query, tarufID, selectorID, selectedID)
	if err != nil {
		logger.Error("SelectionRepository:DeleteRound1", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SelectionRepository) SetFirstChoice(ctx context.Context, tarufID int64, selectorID int64, firstChoice *string) (int64, error) {
	query := `
		UPDATE round1_selected
		SET first_choice = $3, updated_at = NOW()
		WHERE taruf_id = $1 AND selector_registration_id = $2
	`

	res, err := r.DB.SQLx().ExecContext(ctx, query, tarufID, selectorID, firstChoice)
	if err != nil {
		logger.Error("SelectionRepository:SetFirstChoice", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SelectionRepository) ListRound1(ctx context.Context, filter dto.Round1Filter) ([]entity.Round1Selection, error) {
	query := `SELECT` + round1Columns + ` FROM round1_selected s WHERE s.taruf_id = $1`
	args := []any{filter.TarufID}
	argIndex := 2

	if filter.SelectorID > 0 {
		query += fmt.Sprintf(" AND s.selector_registration_id = $%d", argIndex)
		args = append(args, filter.SelectorID)
		argIndex++
	}
	if filter.Counsellor != "" {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM registrations r
			WHERE r.counsellor ILIKE $%d
			  AND r.id IN (s.selector_registration_id, s.selected_registration_id)
		)`, argIndex)
		args = append(args, "%"+filter.Counsellor+"%")
	}
	query += " ORDER BY s.selector_registration_id, s.id"

	rows := []entity.Round1Selection{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Error("SelectionRepository:ListRound1", err)
		return nil, err
	}
	return rows, nil
}

func (r *SelectionRepository) HasRound2(ctx context.Context, tarufID int64, selectorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM round2_selected WHERE taruf_id = $1 AND selector_registration_id = $2
		)
	`

	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, tarufID, selectorID); err != nil {
		logger.Error("SelectionRepository:HasRound2", err)
		return false, err
	}
	return exists, nil
}

func (r *SelectionRepository) InsertRound2(ctx context.Context, row *entity.Round2Selection) (*entity.Round2Selection, error) {
	query := `
		INSERT INTO round2_selected (
			taruf_id, selector_registration_id, selected_registration_id,
			selector_its, selected_its, selector_name, selected_name,
			selector_badge, selected_badge, selected_photo1url, selected_date_of_birth
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (taruf_id, selector_registration_id) DO NOTHING
		RETURNING id, taruf_id, selector_registration_id, selected_registration_id,
		          selector_its, selected_its, selector_name, selected_name,
		          selector_badge, selected_badge, selected_photo1url, selected_date_of_birth, created_at
	`

	var out entity.Round2Selection
	err := r.DB.GetContext(ctx, &out, query,
		row.TarufID, row.SelectorRegistrationID, row.SelectedRegistrationID,
		row.SelectorITS, row.SelectedITS, row.SelectorName, row.SelectedName,
		row.SelectorBadge, row.SelectedBadge, row.SelectedPhoto1URL, row.SelectedDateOfBirth,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SelectionRepository:InsertRound2", err)
		return nil, err
	}
	return &out, nil
}
