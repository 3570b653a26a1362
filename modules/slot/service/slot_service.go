package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taruf-api/core/cache"
	"taruf-api/core/constants"
	"taruf-api/core/errors"
	"taruf-api/core/logger"
	"taruf-api/core/metrics"
	"taruf-api/core/queue"
	"taruf-api/core/storage"
	"taruf-api/core/utils"
	"taruf-api/modules/slot/dto"
	"taruf-api/modules/slot/entity"
	"taruf-api/modules/slot/repository"

	"github.com/google/uuid"
)

// SlotService runs and edits round-1 slot assignments.
type SlotService struct {
	repo     repository.SlotRepositoryInterface
	locker   cache.Cache
	enqueuer queue.Enqueuer
	signer   storage.URLSigner
	planner  *Planner
	lockTTL  time.Duration
}

type SlotServiceInterface interface {
	RunAutoAssignment(ctx context.Context, tarufID int64) (*dto.AutoAssignResponse, *errors.AppError)
	EnqueueAutoAssignment(ctx context.Context, tarufID int64) (*dto.EnqueueResponse, *errors.AppError)
	ClearAutoSlots(ctx context.Context, tarufID int64, slot int) (*dto.ClearSlotsResponse, *errors.AppError)
	ManualSlotUpdate(ctx context.Context, req *dto.ManualSlotUpdateRequest) (*entity.SlotAssignment, *errors.AppError)
	SetTimings(ctx context.Context, tarufID int64, timings []dto.SlotTiming) (*dto.SetTimingsResponse, *errors.AppError)
	ReplaceFirstChoice(ctx context.Context, tarufID int64, selectorID int64, newSelectedID int64) (*entity.SlotAssignment, *errors.AppError)
	GetCandidateSchedule(ctx context.Context, tarufID int64, registrationID int64) ([]dto.ScheduleEntry, *errors.AppError)
	ListSlots(ctx context.Context, tarufID int64) ([]dto.SlotListItem, *errors.AppError)
}

// Options overrides the planner limits and the run lock TTL.
type Options struct {
	RoomCapacity  int
	MaxSlotSearch int
	LockTTL       time.Duration
}

// NewSlotService creates a new slot service
func NewSlotService(
	repo repository.SlotRepositoryInterface,
	locker cache.Cache,
	enqueuer queue.Enqueuer,
	signer storage.URLSigner,
	opts Options,
) *SlotService {
	lockTTL := opts.LockTTL
	if lockTTL <= 0 {
		lockTTL = constants.AssignmentLockTTL
	}
	return &SlotService{
		repo:     repo,
		locker:   locker,
		enqueuer: enqueuer,
		signer:   signer,
		planner:  NewPlanner(opts.RoomCapacity, opts.MaxSlotSearch),
		lockTTL:  lockTTL,
	}
}

func lockKey(tarufID int64) string {
	return constants.RedisKeyAssignmentLock + strconv.FormatInt(tarufID, 10)
}

// RunAutoAssignment recomputes every auto-assigned pairing of an event.
// Runs for one event are serialized through an advisory lock; a second
// caller gets a conflict instead of racing the first.
func (s *SlotService) RunAutoAssignment(ctx context.Context, tarufID int64) (*dto.AutoAssignResponse, *errors.AppError) {
	if tarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}

	owner, err := s.locker.AcquireLock(ctx, lockKey(tarufID), s.lockTTL)
	if err != nil {
		if stderrors.Is(err, cache.ErrLockHeld) {
			metrics.AssignmentRuns.WithLabelValues(metrics.OutcomeConflict).Inc()
			return nil, errors.NewAppError(errors.ErrConflict, "auto-assignment already running for this taruf", nil)
		}
		logger.Error("SlotService:RunAutoAssignment:AcquireLock", "taruf_id", tarufID, err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to acquire assignment lock", err)
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
		defer cancel()
		if err := s.locker.ReleaseLock(releaseCtx, lockKey(tarufID), owner); err != nil {
			logger.Warn("SlotService:RunAutoAssignment:ReleaseLock", "taruf_id", tarufID, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, constants.AssignmentTimeout)
	defer cancel()

	runID := uuid.NewString()
	start := time.Now()
	logger.Info("SlotService:RunAutoAssignment:Start", "taruf_id", tarufID, "run_id", runID)

	selections, err := s.repo.ListSelectionsByTaruf(ctx, tarufID)
	if err != nil {
		metrics.AssignmentRuns.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load round 1 selections", err)
	}

	plan := s.planner.Plan(tarufID, Classify(selections))

	replaced, err := s.repo.ReplaceAutoAssignments(ctx, tarufID, plan.Rows)
	if err != nil {
		metrics.AssignmentRuns.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to save slot assignments", err)
	}

	metrics.AssignmentRuns.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.AssignedPairs.Add(float64(len(plan.Rows)))
	metrics.UnassignedPairs.Add(float64(len(plan.Unassigned)))
	metrics.AssignmentDuration.Observe(time.Since(start).Seconds())

	logger.Info("SlotService:RunAutoAssignment:Done",
		"taruf_id", tarufID,
		"run_id", runID,
		"selections", len(selections),
		"assigned_pairs", len(plan.Rows),
		"unassigned_pairs", len(plan.Unassigned),
		"max_slot", plan.MaxSlot,
		"replaced_rows", replaced,
	)

	message := fmt.Sprintf("Assigned %d pairs across %d slots", len(plan.Rows), plan.MaxSlot)
	if len(plan.Unassigned) > 0 {
		message += fmt.Sprintf("; %d pairs could not be placed", len(plan.Unassigned))
	}

	return &dto.AutoAssignResponse{
		RunID:           runID,
		AssignedPairs:   len(plan.Rows),
		MaxAssignedSlot: plan.MaxSlot,
		ReplacedRows:    replaced,
		Unassigned:      plan.Unassigned,
		Message:         message,
	}, nil
}

func (s *SlotService) EnqueueAutoAssignment(ctx context.Context, tarufID int64) (*dto.EnqueueResponse, *errors.AppError) {
	if tarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}
	if s.enqueuer == nil {
		return nil, errors.NewAppError(errors.ErrEnqueueFailed, "background queue is disabled", nil)
	}

	taskID, err := s.enqueuer.EnqueueAutoAssign(ctx, tarufID)
	if err != nil {
		if stderrors.Is(err, queue.ErrAlreadyQueued) {
			return nil, errors.NewAppError(errors.ErrConflict, "auto-assignment already queued for this taruf", err)
		}
		logger.Error("SlotService:EnqueueAutoAssignment", "taruf_id", tarufID, err)
		return nil, errors.NewAppError(errors.ErrEnqueueFailed, "failed to queue auto-assignment", err)
	}
	return &dto.EnqueueResponse{TaskID: taskID, TarufID: tarufID}, nil
}

func (s *SlotService) ClearAutoSlots(ctx context.Context, tarufID int64, slot int) (*dto.ClearSlotsResponse, *errors.AppError) {
	if tarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}
	if slot <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "slot must be a positive number", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	cleared, err := s.repo.ClearAutoSlots(ctx, tarufID, slot)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDeleteFailed, "failed to clear slot", err)
	}
	logger.Info("SlotService:ClearAutoSlots:Done", "taruf_id", tarufID, "slot", slot, "cleared", cleared)
	return &dto.ClearSlotsResponse{ClearedCount: cleared}, nil
}

func (s *SlotService) ManualSlotUpdate(ctx context.Context, req *dto.ManualSlotUpdateRequest) (*entity.SlotAssignment, *errors.AppError) {
	if req.TarufID <= 0 || req.SelectorRegistrationID <= 0 || req.SelectedRegistrationID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id, selector_registration_id and selected_registration_id are required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	updated, err := s.repo.UpdateManualSlot(ctx, &entity.ManualSlot{
		TarufID:                req.TarufID,
		SelectorRegistrationID: req.SelectorRegistrationID,
		SelectedRegistrationID: req.SelectedRegistrationID,
		Slot:                   manualSlotNumber(req.Slot),
		RoomNo:                 utils.NilIfEmpty(strings.TrimSpace(utils.ToString(req.RoomNo))),
		RoomNoSet:              req.RoomNo != nil,
		CandidateITS:           utils.NormalizeITSPtr(utils.NilIfEmpty(utils.ToString(req.CandidateITS))),
		CandidateITSSet:        req.CandidateITS != nil,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update slot", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "slot assignment not found", nil)
	}
	return updated, nil
}

// manualSlotNumber parses an admin-entered slot. Anything that is not a
// positive integer means unassigned.
func manualSlotNumber(v any) int {
	n := utils.ToIntOrZero(utils.ToString(v))
	if n < 0 {
		return 0
	}
	return n
}

// SetTimings applies each slot's timing separately; one failing slot does
// not stop the others.
func (s *SlotService) SetTimings(ctx context.Context, tarufID int64, timings []dto.SlotTiming) (*dto.SetTimingsResponse, *errors.AppError) {
	if tarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}
	if len(timings) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "timings must not be empty", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	resp := &dto.SetTimingsResponse{UpdatedSlots: []int{}, FailedSlots: []dto.FailedSlot{}}
	for _, t := range timings {
		value := strings.TrimSpace(t.Timings)
		if t.Slot <= 0 || value == "" {
			resp.FailedSlots = append(resp.FailedSlots, dto.FailedSlot{Slot: t.Slot, Error: "slot and timings are required"})
			continue
		}

		n, err := s.repo.SetSlotTimings(ctx, tarufID, t.Slot, value)
		if err != nil {
			resp.FailedSlots = append(resp.FailedSlots, dto.FailedSlot{Slot: t.Slot, Error: "update failed"})
			continue
		}
		resp.UpdatedSlots = append(resp.UpdatedSlots, t.Slot)
		resp.UpdatedRows += n
	}

	if len(resp.FailedSlots) > 0 {
		logger.Warn("SlotService:SetTimings:PartialFailure", "taruf_id", tarufID, "failed", len(resp.FailedSlots))
	}
	return resp, nil
}

// ReplaceFirstChoice swaps the partner in a selector's first-choice slot.
// Slot and room stay as they are.
func (s *SlotService) ReplaceFirstChoice(ctx context.Context, tarufID int64, selectorID int64, newSelectedID int64) (*entity.SlotAssignment, *errors.AppError) {
	if tarufID <= 0 || selectorID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id and selector_registration_id are required", nil)
	}
	if newSelectedID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a valid new first choice is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	taken, err := s.repo.HasSlottedSelected(ctx, tarufID, newSelectedID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check candidate slots", err)
	}
	if taken {
		return nil, errors.NewAppError(errors.ErrConflict, "candidate already has a slot assigned", nil)
	}

	current, err := s.repo.GetFirstChoiceAssignment(ctx, tarufID, selectorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load first choice slot", err)
	}
	if current == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "no first choice slot found for this selector", nil)
	}

	profiles, err := s.repo.GetProfilesByIDs(ctx, []int64{newSelectedID})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load candidate", err)
	}
	if len(profiles) == 0 {
		return nil, errors.NewAppError(errors.ErrNotFound, "candidate registration not found", nil)
	}

	updated, err := s.repo.UpdateSelectedRegistration(ctx, current.ID, newSelectedID, utils.NormalizeITSPtr(&profiles[0].ITSNumber))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update first choice", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "no first choice slot found for this selector", nil)
	}

	logger.Info("SlotService:ReplaceFirstChoice:Done",
		"taruf_id", tarufID,
		"selector_id", selectorID,
		"previous_selected_id", current.SelectedRegistrationID,
		"new_selected_id", newSelectedID,
	)
	return updated, nil
}

func (s *SlotService) GetCandidateSchedule(ctx context.Context, tarufID int64, registrationID int64) ([]dto.ScheduleEntry, *errors.AppError) {
	if tarufID <= 0 || registrationID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id and registration_id are required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.ListAssignmentsForRegistration(ctx, tarufID, registrationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load schedule", err)
	}
	if len(rows) == 0 {
		return []dto.ScheduleEntry{}, nil
	}

	profiles, appErr := s.profileIndex(ctx, partnerIDs(rows, registrationID))
	if appErr != nil {
		return nil, appErr
	}
	return BuildSchedule(rows, registrationID, profiles), nil
}

func (s *SlotService) ListSlots(ctx context.Context, tarufID int64) ([]dto.SlotListItem, *errors.AppError) {
	if tarufID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.ListAssignments(ctx, tarufID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load slots", err)
	}

	seen := make(map[int64]struct{})
	var ids []int64
	for _, r := range rows {
		for _, id := range []int64{r.SelectorRegistrationID, r.SelectedRegistrationID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	profiles, appErr := s.profileIndex(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}

	items := make([]dto.SlotListItem, 0, len(rows))
	for _, r := range rows {
		item := dto.SlotListItem{SlotAssignment: r}
		if p := profiles[r.SelectorRegistrationID]; p != nil {
			item.SelectorName = &p.Name
		}
		if p := profiles[r.SelectedRegistrationID]; p != nil {
			item.SelectedName = &p.Name
		}
		items = append(items, item)
	}
	return items, nil
}

// profileIndex loads the given registrations in one query and signs photos.
func (s *SlotService) profileIndex(ctx context.Context, ids []int64) (map[int64]*entity.Profile, *errors.AppError) {
	profiles, err := s.repo.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load candidate profiles", err)
	}

	index := make(map[int64]*entity.Profile, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if s.signer != nil && p.Photo1URL != nil {
			signed := s.signer.SignURL(ctx, *p.Photo1URL)
			p.Photo1URL = &signed
		}
		index[p.ID] = p
	}
	return index, nil
}
