package repository

import (
	"context"
	"database/sql"
	"errors"

	"taruf-api/core/database"
	"taruf-api/core/logger"
	"taruf-api/modules/auth/entity"
)

// AuthRepository reads admin accounts and candidate credentials.
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error)

	GetCandidateByITS(ctx context.Context, tarufID int64, itsNumber string) (*entity.CandidateCredential, error)
	GetCandidateByID(ctx context.Context, registrationID int64) (*entity.CandidateCredential, error)

	// SetCandidatePassword stores hashed only when the registration has no
	// password yet. It reports whether a row was updated.
	SetCandidatePassword(ctx context.Context, registrationID int64, hashed string) (bool, error)
}

func (r *AuthRepository) GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `
		SELECT id, email, password, name, role, created_at, updated_at
		FROM admins
		WHERE LOWER(email) = LOWER($1)
	`

	var admin entity.Admin
	if err := r.DB.GetContext(ctx, &admin, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetAdminByEmail", err)
		return nil, err
	}
	return &admin, nil
}

func (r *AuthRepository) GetCandidateByITS(ctx context.Context, tarufID int64, itsNumber string) (*entity.CandidateCredential, error) {
	query := `
		SELECT id, taruf_id, its_number, name, password
		FROM registrations
		WHERE taruf_id = $1 AND its_number = $2
		ORDER BY badge_no
		LIMIT 1
	`

	var cred entity.CandidateCredential
	if err := r.DB.GetContext(ctx, &cred, query, tarufID, itsNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetCandidateByITS", err)
		return nil, err
	}
	return &cred, nil
}

func (r *AuthRepository) GetCandidateByID(ctx context.Context, registrationID int64) (*entity.CandidateCredential, error) {
	query := `
		SELECT id, taruf_id, its_number, name, password
		FROM registrations
		WHERE id = $1
	`

	var cred entity.CandidateCredential
	if err := r.DB.GetContext(ctx, &cred, query, registrationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetCandidateByID", err)
		return nil, err
	}
	return &cred, nil
}

func (r *AuthRepository) SetCandidatePassword(ctx context.Context, registrationID int64, hashed string) (bool, error) {
	query := `
		UPDATE registrations
		SET password = $2, updated_at = NOW()
		WHERE id = $1 AND (password IS NULL OR password = '')
		RETURNING id
	`

	var id int64
	if err := r.DB.GetContext(ctx, &id, query, registrationID, hashed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error("AuthRepository:SetCandidatePassword", err)
		return false, err
	}
	return true, nil
}
