package service

import (
	"context"

	"taruf-api/core/constants"
	"taruf-api/core/errors"
	"taruf-api/core/logger"
	"taruf-api/core/storage"
	"taruf-api/core/utils"
	"taruf-api/modules/selection/dto"
	"taruf-api/modules/selection/entity"
	"taruf-api/modules/selection/repository"
)

type SelectionService struct {
	repo   repository.SelectionRepositoryInterface
	signer storage.URLSigner
}

type SelectionServiceInterface interface {
	SubmitRound1(ctx context.Context, tarufID int64, selectorID int64, items []dto.SelectionItem) (*dto.SubmitRound1Response, *errors.AppError)
	AddRound1(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (*entity.Round1Selection, *errors.AppError)
	DeleteRound1(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (*dto.DeleteSelectionResponse, *errors.AppError)
	SetFirstChoice(ctx context.Context, tarufID int64, selectorID int64, firstChoice any) (*dto.SetFirstChoiceResponse, *errors.AppError)
	ListRound1(ctx context.Context, filter dto.Round1Filter) ([]entity.Round1Selection, *errors.AppError)
	SubmitRound2(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (*entity.Round2Selection, *errors.AppError)
}

// NewSelectionService creates a new selection service
func NewSelectionService(repo repository.SelectionRepositoryInterface, signer storage.URLSigner) *SelectionService {
	return &SelectionService{repo: repo, signer: signer}
}

func errLocked() *errors.AppError {
	return errors.NewAppError(errors.ErrConflict, "selections are locked once a room is assigned", nil)
}

func (s *SelectionService) state(ctx context.Context, tarufID, selectorID int64) (entity.SelectorState, *errors.AppError) {
	st, err := s.repo.GetSelectorState(ctx, tarufID, selectorID)
	if err != nil {
		return st, errors.NewAppError(errors.ErrGetFailed, "failed to load round 1 selections", err)
	}
	return st, nil
}

// candidates loads the selector together with the requested picks and
// returns them keyed by registration id.
func (s *SelectionService) candidates(ctx context.Context, tarufID int64, ids ...int64) (map[int64]entity.Candidate, *errors.AppError) {
	found, err := s.repo.GetCandidates(ctx, tarufID, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load registrations", err)
	}
	byID := make(map[int64]entity.Candidate, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	return byID, nil
}

func isSelf(selector, picked entity.Candidate) bool {
	return selector.ID == picked.ID || utils.SameITS(&selector.ITSNumber, &picked.ITSNumber)
}

func round1Row(tarufID int64, selector, picked entity.Candidate) entity.Round1Selection {
	return entity.Round1Selection{
		TarufID:                tarufID,
		SelectorRegistrationID: selector.ID,
		SelectedRegistrationID: picked.ID,
		SelectorITS:            utils.NormalizeITSPtr(&selector.ITSNumber),
		SelectedITS:            utils.NormalizeITSPtr(&picked.ITSNumber),
		SelectorName:           utils.StringPtr(selector.Name),
		SelectedName:           utils.StringPtr(picked.Name),
		SelectorPhoto1URL:      selector.Photo1URL,
		SelectedPhoto1URL:      picked.Photo1URL,
		SelectorDateOfBirth:    selector.DateOfBirth,
		SelectedDateOfBirth:    picked.DateOfBirth,
		SelectedBadge:          picked.BadgeNo,
		SelectorCounsellor:     selector.Counsellor,
	}
}

// SubmitRound1 stores a selector's whole round-1 list in one go. A selector
// submits once; picks of themselves, unknown registrations and repeats are
// skipped and counted.
func (s *SelectionService) SubmitRound1(ctx context.Context, tarufID int64, selectorID int64, items []dto.SelectionItem) (*dto.SubmitRound1Response, *errors.AppError) {
	if tarufID <= 0 || selectorID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id and selector_id are required", nil)
	}
	if len(items) == 0 || len(items) > constants.MaxRound1Selections {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "between 1 and 5 selections are required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	st, appErr := s.state(ctx, tarufID, selectorID)
	if appErr != nil {
		return nil, appErr
	}
	if st.Total > 0 {
		return nil, errors.NewAppError(errors.ErrConflict, "round 1 selections already submitted", nil)
	}

	ids := make([]int64, 0, len(items)+1)
	ids = append(ids, selectorID)
	for _, item := range items {
		ids = append(ids, item.RegistrationID)
	}
	byID, appErr := s.candidates(ctx, tarufID, ids...)
	if appErr != nil {
		return nil, appErr
	}
	selector, ok := byID[selectorID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "selector registration not found", nil)
	}

	rows := make([]entity.Round1Selection, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		picked, ok := byID[item.RegistrationID]
		if !ok || seen[picked.ID] || isSelf(selector, picked) {
			continue
		}
		seen[picked.ID] = true
		rows = append(rows, round1Row(tarufID, selector, picked))
	}

	var inserted int64
	if len(rows) > 0 {
		n, err := s.repo.InsertRound1(ctx, rows)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to save round 1 selections", err)
		}
		inserted = n
	}

	resp := &dto.SubmitRound1Response{
		InsertedCount: int(inserted),
		SkippedCount:  len(items) - int(inserted),
	}
	logger.Info("SelectionService:SubmitRound1:Done",
		"taruf_id", tarufID,
		"selector_id", selectorID,
		"inserted", resp.InsertedCount,
		"skipped", resp.SkippedCount,
	)
	return resp, nil
}

func (s *SelectionService) AddRound1(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (*entity.Round1Selection, *errors.AppError) {
	if tarufID <= 0 || selectorID <= 0 || selectedID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id, selector_id and selected_registration_id are required", nil)
	}
	if selectorID == selectedID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a candidate cannot select themselves", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	st, appErr := s.state(ctx, tarufID, selectorID)
	if appErr != nil {
		return nil, appErr
	}
	if st.IsLocked() {
		return nil, errLocked()
	}
	if st.Total >= constants.MaxRound1Selections {
		return nil, errors.NewAppError(errors.ErrConflict, "round 1 selection limit reached", nil)
	}

	byID, appErr := s.candidates(ctx, tarufID, selectorID, selectedID)
	if appErr != nil {
		return nil, appErr
	}
	selector, ok := byID[selectorID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "selector registration not found", nil)
	}
	picked, ok := byID[selectedID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "selected registration not found", nil)
	}
	if isSelf(selector, picked) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a candidate cannot select themselves", nil)
	}

	row := round1Row(tarufID, selector, picked)
	created, err := s.repo.AddRound1(ctx, &row)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to add selection", err)
	}
	if created == nil {
		return nil, errors.NewAppError(errors.ErrConflict, "candidate already selected", nil)
	}
	return created, nil
}

func (s *SelectionService) DeleteRound1(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (*dto.DeleteSelectionResponse, *errors.AppError) {
	if tarufID <= 0 || selectorID <= 0 || selectedID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id, selector_id and selected_registration_id are required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	st, appErr := s.state(ctx, tarufID, selectorID)
	if appErr != nil {
		return nil, appErr
	}
	if st.IsLocked() {
		return nil, errLocked()
	}

	deleted, err := s.repo.DeleteRound1(ctx, tarufID, selectorID, selectedID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDeleteFailed, "failed to delete selection", err)
	}
	if deleted == 0 {
		return nil, errors.NewAppError(errors.ErrNotFound, "selection not found", nil)
	}
	logger.Info("SelectionService:DeleteRound1:Done", "taruf_id", tarufID, "selector_id", selectorID, "selected_id", selectedID)
	return &dto.DeleteSelectionResponse{Deleted: deleted}, nil
}

// SetFirstChoice records the ITS number of the selector's preferred pick on
// every one of their round-1 rows. An empty value clears it.
func (s *SelectionService) SetFirstChoice(ctx context.Context, tarufID int64, selectorID int64, firstChoice any) (*dto.SetFirstChoiceResponse, *errors.AppError) {
	if tarufID <= 0 || selectorID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id and selector_id are required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	st, appErr := s.state(ctx, tarufID, selectorID)
	if appErr != nil {
		return nil, appErr
	}
	if st.IsLocked() {
		return nil, errLocked()
	}

	value := utils.NormalizeITSPtr(utils.NilIfEmpty(utils.ToString(firstChoice)))
	updated, err := s.repo.SetFirstChoice(ctx, tarufID, selectorID, value)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update first choice", err)
	}
	if updated == 0 {
		return nil, errors.NewAppError(errors.ErrNotFound, "no round 1 selections found for this selector", nil)
	}
	return &dto.SetFirstChoiceResponse{Updated: updated}, nil
}

func (s *SelectionService) ListRound1(ctx context.Context, filter dto.Round1Filter) ([]entity.Round1Selection, *errors.AppError) {
	if filter.TarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.ListRound1(ctx, filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load round 1 selections", err)
	}
	if s.signer != nil {
		for i := range rows {
			rows[i].SelectorPhoto1URL = s.sign(ctx, rows[i].SelectorPhoto1URL)
			rows[i].SelectedPhoto1URL = s.sign(ctx, rows[i].SelectedPhoto1URL)
		}
	}
	return rows, nil
}

func (s *SelectionService) sign(ctx context.Context, ref *string) *string {
	if ref == nil {
		return nil
	}
	signed := s.signer.SignURL(ctx, *ref)
	return &signed
}

// SubmitRound2 stores the selector's single round-2 pick. Round 1 must be
// submitted first.
func (s *SelectionService) SubmitRound2(ctx context.Context, tarufID int64, selectorID int64, selectedID int64) (*entity.Round2Selection, *errors.AppError) {
	if tarufID <= 0 || selectorID <= 0 || selectedID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id, selector_id and selected_registration_id are required", nil)
	}
	if selectorID == selectedID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a candidate cannot select themselves", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	st, appErr := s.state(ctx, tarufID, selectorID)
	if appErr != nil {
		return nil, appErr
	}
	if st.Total == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "round 1 must be submitted before round 2", nil)
	}

	done, err := s.repo.HasRound2(ctx, tarufID, selectorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load round 2 selection", err)
	}
	if done {
		return nil, errors.NewAppError(errors.ErrConflict, "round 2 selection already submitted", nil)
	}

	byID, appErr := s.candidates(ctx, tarufID, selectorID, selectedID)
	if appErr != nil {
		return nil, appErr
	}
	selector, ok := byID[selectorID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "selector registration not found", nil)
	}
	picked, ok := byID[selectedID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "selected registration not found", nil)
	}
	if isSelf(selector, picked) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a candidate cannot select themselves", nil)
	}

	created, err := s.repo.InsertRound2(ctx, &entity.Round2Selection{
		TarufID:                tarufID,
		SelectorRegistrationID: selector.ID,
		SelectedRegistrationID: picked.ID,
		SelectorITS:            utils.NormalizeITSPtr(&selector.ITSNumber),
		SelectedITS:            utils.NormalizeITSPtr(&picked.ITSNumber),
		SelectorName:           utils.StringPtr(selector.Name),
		SelectedName:           utils.StringPtr(picked.Name),
		SelectorBadge:          selector.BadgeNo,
		SelectedBadge:          picked.BadgeNo,
		SelectedPhoto1URL:      picked.Photo1URL,
		SelectedDateOfBirth:    picked.DateOfBirth,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to save round 2 selection", err)
	}
	if created == nil {
		return nil, errors.NewAppError(errors.ErrConflict, "round 2 selection already submitted", nil)
	}
	logger.Info("SelectionService:SubmitRound2:Done", "taruf_id", tarufID, "selector_id", selectorID, "selected_id", selectedID)
	return created, nil
}
