package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taruf-api/core/cache"
	"taruf-api/core/config"
	"taruf-api/core/constants"
	"taruf-api/core/errors"
	"taruf-api/core/middleware"
	"taruf-api/core/utils"
	"taruf-api/modules/slot/controller"
	"taruf-api/modules/slot/dto"
	"taruf-api/modules/slot/entity"
	"taruf-api/modules/slot/service"

	"github.com/labstack/echo/v4"
)

type stubSlotService struct {
	service.SlotServiceInterface
	runErr     *errors.AppError
	ran        bool
	queued     bool
	clearedFor int
}

func (s *stubSlotService) RunAutoAssignment(context.Context, int64) (*dto.AutoAssignResponse, *errors.AppError) {
	s.ran = true
	if s.runErr != nil {
		return nil, s.runErr
	}
	return &dto.AutoAssignResponse{RunID: "r1", AssignedPairs: 1, MaxAssignedSlot: 1, Message: "Assigned 1 pairs across 1 slots"}, nil
}

func (s *stubSlotService) EnqueueAutoAssignment(_ context.Context, tarufID int64) (*dto.EnqueueResponse, *errors.AppError) {
	s.queued = true
	return &dto.EnqueueResponse{TaskID: "t1", TarufID: tarufID}, nil
}

func (s *stubSlotService) ClearAutoSlots(_ context.Context, _ int64, slot int) (*dto.ClearSlotsResponse, *errors.AppError) {
	s.clearedFor = slot
	return &dto.ClearSlotsResponse{ClearedCount: 3}, nil
}

func (s *stubSlotService) ManualSlotUpdate(context.Context, *dto.ManualSlotUpdateRequest) (*entity.SlotAssignment, *errors.AppError) {
	return nil, errors.NewAppError(errors.ErrNotFound, "slot assignment not found", nil)
}

func (s *stubSlotService) GetCandidateSchedule(context.Context, int64, int64) ([]dto.ScheduleEntry, *errors.AppError) {
	return []dto.ScheduleEntry{}, nil
}

func setup(t *testing.T, svc *stubSlotService) *echo.Echo {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "router-secret", TokenTTL: time.Hour}})

	e := echo.New()
	mw := middleware.NewMiddleware(cache.NewMemoryCache(utils.GenerateLockToken))
	NewSlotRouter(controller.NewSlotController(svc)).Setup(e, mw)
	return e
}

func bearer(t *testing.T, id int64, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, role, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

func do(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAutoAssignRoute(t *testing.T) {
	svc := &stubSlotService{}
	e := setup(t, svc)
	admin := bearer(t, 1, constants.RoleAdmin)

	if rec := do(e, http.MethodPost, "/api/4/round1_slots/auto", bearer(t, 7, constants.RoleCandidate), ""); rec.Code != http.StatusForbidden {
		t.Errorf("candidate status = %d, want 403", rec.Code)
	}

	rec := do(e, http.MethodPost, "/api/4/round1_slots/auto", admin, "")
	if rec.Code != http.StatusOK || !svc.ran {
		t.Errorf("sync status = %d ran = %v", rec.Code, svc.ran)
	}
	if !strings.Contains(rec.Body.String(), `"max_assigned_slot":1`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/api/4/round1_slots/auto?async=true", admin, "")
	if rec.Code != http.StatusAccepted || !svc.queued {
		t.Errorf("async status = %d queued = %v", rec.Code, svc.queued)
	}

	if rec := do(e, http.MethodPost, "/api/abc/round1_slots/auto", admin, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad taruf status = %d, want 400", rec.Code)
	}

	svc.runErr = errors.NewAppError(errors.ErrConflict, "auto-assignment already running for this taruf", nil)
	if rec := do(e, http.MethodPost, "/api/4/round1_slots/auto", admin, ""); rec.Code != http.StatusConflict {
		t.Errorf("locked status = %d, want 409", rec.Code)
	}
}

func TestSlotAdminRoutes(t *testing.T) {
	svc := &stubSlotService{}
	e := setup(t, svc)
	admin := bearer(t, 1, constants.RoleAdmin)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "clear slot", method: http.MethodPost, path: "/api/4/round1_slots/clear?slot=2", want: http.StatusOK},
		{name: "clear without slot", method: http.MethodPost, path: "/api/4/round1_slots/clear", want: http.StatusBadRequest},
		{name: "manual update missing ids", method: http.MethodPost, path: "/api/round1_slot/manual-update", body: `{"taruf_id":4}`, want: http.StatusBadRequest},
		{name: "manual update unknown row", method: http.MethodPost, path: "/api/round1_slot/manual-update",
			body: `{"taruf_id":4,"selector_registration_id":1,"selected_registration_id":2,"slot":"3","room_no":""}`, want: http.StatusNotFound},
		{name: "timings empty", method: http.MethodPost, path: "/api/4/round1_slots/timings", body: `{"timings":[]}`, want: http.StatusBadRequest},
		{name: "first choice missing target", method: http.MethodPost, path: "/api/round1_slot/first-choice-update",
			body: `{"taruf_id":4,"selector_registration_id":1}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.path, admin, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	if svc.clearedFor != 2 {
		t.Errorf("cleared slot = %d, want 2", svc.clearedFor)
	}
}

func TestCandidateScheduleAccess(t *testing.T) {
	e := setup(t, &stubSlotService{})

	if rec := do(e, http.MethodGet, "/api/candidate_schedule/4/7", bearer(t, 7, constants.RoleCandidate), ""); rec.Code != http.StatusOK {
		t.Errorf("own schedule status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/candidate_schedule/4/8", bearer(t, 7, constants.RoleCandidate), ""); rec.Code != http.StatusForbidden {
		t.Errorf("other schedule status = %d, want 403", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/candidate_schedule/4/8", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}
}
