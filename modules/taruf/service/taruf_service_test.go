package service

import (
	"context"
	"testing"

	coreentity "taruf-api/core/entity"
	"taruf-api/core/errors"
	"taruf-api/core/params"
	"taruf-api/modules/taruf/dto"
	"taruf-api/modules/taruf/entity"
)

type fakeTarufRepo struct {
	tarufs        []entity.Taruf
	registrations []entity.Registration
	lastFilter    dto.RegistrationFilter
}

func (f *fakeTarufRepo) ListActiveTarufs(context.Context) ([]entity.Taruf, error) {
	return f.tarufs, nil
}

func (f *fakeTarufRepo) ListRegistrations(_ context.Context, filter dto.RegistrationFilter, p params.QueryParams) (*coreentity.Pagination[entity.Registration], error) {
	f.lastFilter = filter
	items := append([]entity.Registration(nil), f.registrations...)
	return coreentity.NewPagination(items, len(items), p.PageNumber, p.PageSize), nil
}

func (f *fakeTarufRepo) GetRegistrationByID(_ context.Context, id int64) (*entity.Registration, error) {
	for _, r := range f.registrations {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeTarufRepo) ListCandidatesNotSelectors(context.Context, int64) ([]entity.Registration, error) {
	return append([]entity.Registration(nil), f.registrations...), nil
}

type signer struct{}

func (signer) SignURL(_ context.Context, ref string) string { return "https://cdn.test/" + ref }

func ptr(s string) *string { return &s }

func TestListActiveTarufsAddsSlug(t *testing.T) {
	repo := &fakeTarufRepo{tarufs: []entity.Taruf{{ID: 1, Name: "Mumbai Taruf 2026", Status: 1}}}
	svc := NewTarufService(repo, nil)

	got, err := svc.ListActiveTarufs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Slug != "mumbai-taruf-2026" {
		t.Errorf("tarufs = %+v", got)
	}
}

func TestRegistrationsSignPhotos(t *testing.T) {
	repo := &fakeTarufRepo{registrations: []entity.Registration{
		{ID: 1, TarufID: 2, Name: "A", Photo1URL: ptr("photos/a.jpg")},
		{ID: 2, TarufID: 2, Name: "B"},
	}}
	svc := NewTarufService(repo, signer{})

	page, err := svc.ListRegistrations(context.Background(), dto.RegistrationFilter{TarufID: 2, Group: "G1"}, params.QueryParams{PageNumber: 1, PageSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 2 || *page.Items[0].Photo1URL != "https://cdn.test/photos/a.jpg" || page.Items[1].Photo1URL != nil {
		t.Errorf("page = %+v", page)
	}
	if repo.lastFilter.Group != "G1" {
		t.Errorf("filter = %+v", repo.lastFilter)
	}
	if *repo.registrations[0].Photo1URL != "photos/a.jpg" {
		t.Error("stored registration was mutated")
	}

	_, err = svc.ListRegistrations(context.Background(), dto.RegistrationFilter{}, params.QueryParams{})
	if err == nil || err.Code != errors.ErrInvalidInput {
		t.Errorf("missing taruf error = %v", err)
	}
}

func TestGetRegistration(t *testing.T) {
	repo := &fakeTarufRepo{registrations: []entity.Registration{{ID: 5, Name: "E", Photo1URL: ptr("e.jpg")}}}
	svc := NewTarufService(repo, signer{})

	got, err := svc.GetRegistration(context.Background(), 5)
	if err != nil || *got.Photo1URL != "https://cdn.test/e.jpg" {
		t.Errorf("GetRegistration() = %+v, %v", got, err)
	}

	_, err = svc.GetRegistration(context.Background(), 6)
	if err == nil || err.Code != errors.ErrNotFound {
		t.Errorf("missing registration error = %v", err)
	}
}
