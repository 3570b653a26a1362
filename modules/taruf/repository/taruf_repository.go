package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taruf-api/core/constants"
	"taruf-api/core/database"
	coreentity "taruf-api/core/entity"
	"taruf-api/core/logger"
	"taruf-api/core/params"
	"taruf-api/modules/taruf/dto"
	"taruf-api/modules/taruf/entity"
)

type TarufRepository struct {
	DB database.Database
}

func NewTarufRepository(db database.Database) *TarufRepository {
	return &TarufRepository{DB: db}
}

type TarufRepositoryInterface interface {
	ListActiveTarufs(ctx context.Context) ([]entity.Taruf, error)
	ListRegistrations(ctx context.Context, filter dto.RegistrationFilter, params params.QueryParams) (*coreentity.Pagination[entity.Registration], error)
	GetRegistrationByID(ctx context.Context, id int64) (*entity.Registration, error)
	ListCandidatesNotSelectors(ctx context.Context, tarufID int64) ([]entity.Registration, error)
}

const registrationColumns = `
	r.id, r.taruf_id, r.its_number, r.name, r.gender, r.group_name, r.badge_no,
	r.photo1_url, r.date_of_birth, r.current_city, r.counsellor, r.created_at`

func (r *TarufRepository) ListActiveTarufs(ctx context.Context) ([]entity.Taruf, error) {
	query := `
		SELECT id, name, location, event_date, status
		FROM tarufs
		WHERE status = $1
		ORDER BY event_date NULLS LAST, id
	`

	tarufs := []entity.Taruf{}
	if err := r.DB.SelectContext(ctx, &tarufs, query, constants.TarufStatusActive); err != nil {
		logger.Error("TarufRepository:ListActiveTarufs", err)
		return nil, err
	}
	return tarufs, nil
}

func (r *TarufRepository) ListRegistrations(ctx context.Context, filter dto.RegistrationFilter, params params.QueryParams) (*coreentity.Pagination[entity.Registration], error) {
	baseQuery := ` FROM registrations r WHERE r.taruf_id = $1`
	args := []any{filter.TarufID}
	argIndex := 2

	if filter.Group != "" {
		baseQuery += fmt.Sprintf(" AND r.group_name = $%d", argIndex)
		args = append(args, filter.Group)
		argIndex++
	}
	if params.Search != "" {
		baseQuery += fmt.Sprintf(" AND (r.name ILIKE $%d OR r.its_number ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*)"+baseQuery, args...); err != nil {
		logger.Error("TarufRepository:ListRegistrations:Count", err)
		return nil, err
	}

	dataQuery := "SELECT" + registrationColumns + baseQuery +
		fmt.Sprintf(" ORDER BY r.badge_no NULLS LAST, r.id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	registrations := []entity.Registration{}
	if err := r.DB.SelectContext(ctx, &registrations, dataQuery, args...); err != nil {
		logger.Error("TarufRepository:ListRegistrations:Select", err)
		return nil, err
	}

	return coreentity.NewPagination(registrations, totalItems, params.PageNumber, params.PageSize), nil
}

func (r *TarufRepository) GetRegistrationByID(ctx context.Context, id int64) (*entity.Registration, error) {
	query := `SELECT` + registrationColumns + ` FROM registrations r WHERE r.id = $1`

	var registration entity.Registration
	if err := r.DB.GetContext(ctx, &registration, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("TarufRepository:GetRegistrationByID", err)
		return nil, err
	}
	return &registration, nil
}

// ListCandidatesNotSelectors returns registrations that have not made any
// round-1 selection, matched by registration id or by ITS number.
func (r *TarufRepository) ListCandidatesNotSelectors(ctx context.Context, tarufID int64) ([]entity.Registration, error) {
	query := `SELECT` + registrationColumns + `
		FROM registrations r
		WHERE r.taruf_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM round1_selected s
			WHERE s.taruf_id = r.taruf_id
			  AND (s.selector_registration_id = r.id OR TRIM(s.selector_its) = TRIM(r.its_number))
		  )
		ORDER BY r.badge_no NULLS LAST, r.id
	`

	registrations := []entity.Registration{}
	if err := r.DB.SelectContext(ctx, &registrations, query, tarufID); err != nil {
		logger.Error("TarufRepository:ListCandidatesNotSelectors", err)
		return nil, err
	}
	return registrations, nil
}
