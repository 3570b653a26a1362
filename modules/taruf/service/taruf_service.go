package service

import (
	"context"

	"taruf-api/core/constants"
	coreentity "taruf-api/core/entity"
	"taruf-api/core/errors"
	"taruf-api/core/params"
	"taruf-api/core/storage"
	"taruf-api/modules/taruf/dto"
	"taruf-api/modules/taruf/entity"
	"taruf-api/modules/taruf/repository"

	"github.com/gosimple/slug"
)

type TarufService struct {
	repo   repository.TarufRepositoryInterface
	signer storage.URLSigner
}

type TarufServiceInterface interface {
	ListActiveTarufs(ctx context.Context) ([]dto.TarufResponse, *errors.AppError)
	ListRegistrations(ctx context.Context, filter dto.RegistrationFilter, params params.QueryParams) (*coreentity.Pagination[entity.Registration], *errors.AppError)
	GetRegistration(ctx context.Context, id int64) (*entity.Registration, *errors.AppError)
	ListCandidatesNotSelectors(ctx context.Context, tarufID int64) ([]entity.Registration, *errors.AppError)
}

func NewTarufService(repo repository.TarufRepositoryInterface, signer storage.URLSigner) *TarufService {
	return &TarufService{repo: repo, signer: signer}
}

func (s *TarufService) ListActiveTarufs(ctx context.Context) ([]dto.TarufResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	tarufs, err := s.repo.ListActiveTarufs(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load tarufs", err)
	}

	out := make([]dto.TarufResponse, 0, len(tarufs))
	for _, t := range tarufs {
		out = append(out, dto.TarufResponse{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      slug.Make(t.Name),
			Location:  t.Location,
			EventDate: t.EventDate,
		})
	}
	return out, nil
}

func (s *TarufService) ListRegistrations(ctx context.Context, filter dto.RegistrationFilter, params params.QueryParams) (*coreentity.Pagination[entity.Registration], *errors.AppError) {
	if filter.TarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.ListRegistrations(ctx, filter, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load registrations", err)
	}
	s.signPhotos(ctx, page.Items)
	return page, nil
}

func (s *TarufService) GetRegistration(ctx context.Context, id int64) (*entity.Registration, *errors.AppError) {
	if id <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid registration id", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	registration, err := s.repo.GetRegistrationByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load registration", err)
	}
	if registration == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "registration not found", nil)
	}
	s.signPhoto(ctx, registration)
	return registration, nil
}

func (s *TarufService) ListCandidatesNotSelectors(ctx context.Context, tarufID int64) ([]entity.Registration, *errors.AppError) {
	if tarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	registrations, err := s.repo.ListCandidatesNotSelectors(ctx, tarufID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load candidates", err)
	}
	s.signPhotos(ctx, registrations)
	return registrations, nil
}

func (s *TarufService) signPhotos(ctx context.Context, registrations []entity.Registration) {
	for i := range registrations {
		s.signPhoto(ctx, &registrations[i])
	}
}

func (s *TarufService) signPhoto(ctx context.Context, r *entity.Registration) {
	if s.signer == nil || r.Photo1URL == nil {
		return
	}
	signed := s.signer.SignURL(ctx, *r.Photo1URL)
	r.Photo1URL = &signed
}
