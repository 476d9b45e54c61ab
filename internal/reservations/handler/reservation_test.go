package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	reservationserrors "spacebook/internal/reservations/errors"
	apperrors "spacebook/pkg/errors"
	httputil "spacebook/pkg/http"
	"spacebook/pkg/logger"
	"spacebook/pkg/middleware"
	"spacebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockReservationService struct {
	bookFunc            func(ctx context.Context, req *model.BookRequest) (*model.Reservation, error)
	cancelFunc          func(ctx context.Context, id string, requester string) (*model.Reservation, error)
	getAvailabilityFunc func(ctx context.Context, spaceID string, date string) (*model.SpaceAvailability, error)
	listForUserFunc     func(ctx context.Context, userID string) ([]model.Reservation, error)
	getSpaceFunc        func(ctx context.Context, spaceID string) (*model.Space, error)
	readyFunc           func(ctx context.Context) error
}

func (m *mockReservationService) Book(ctx context.Context, req *model.BookRequest) (*model.Reservation, error) {
	return m.bookFunc(ctx, req)
}

func (m *mockReservationService) Cancel(ctx context.Context, id string, requester string) (*model.Reservation, error) {
	return m.cancelFunc(ctx, id, requester)
}

func (m *mockReservationService) GetAvailability(ctx context.Context, spaceID string, date string) (*model.SpaceAvailability, error) {
	return m.getAvailabilityFunc(ctx, spaceID, date)
}

func (m *mockReservationService) ListReservationsForUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	return m.listForUserFunc(ctx, userID)
}

func (m *mockReservationService) ListSpaces(ctx context.Context) []model.Space {
	return []model.Space{{ID: "S1", Name: "Central Court"}}
}

func (m *mockReservationService) GetSpace(ctx context.Context, spaceID string) (*model.Space, error) {
	return m.getSpaceFunc(ctx, spaceID)
}

func (m *mockReservationService) Ready(ctx context.Context) error {
	return m.readyFunc(ctx)
}

func newRouter(svc *mockReservationService) *httprouter.Router {
	router := httprouter.New()
	NewReservationHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return resp
}

func TestBook_Created(t *testing.T) {
	var received *model.BookRequest
	svc := &mockReservationService{
		bookFunc: func(ctx context.Context, req *model.BookRequest) (*model.Reservation, error) {
			received = req
			return &model.Reservation{ID: "r1", SpaceID: req.SpaceID, Date: req.Date, SlotID: req.SlotID, UserID: req.Requester, Status: model.StatusUpcoming}, nil
		},
	}

	w := serve(newRouter(svc), http.MethodPost, "/api/v1/spaces/S1/reservations",
		`{"date":"2025-06-01","slot_id":"morning"}`,
		map[string]string{middleware.HeaderUserID: "alice"})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if received.SpaceID != "S1" || received.Date != "2025-06-01" || received.SlotID != "morning" || received.Requester != "alice" {
		t.Errorf("service received %+v", received)
	}

	var resp struct {
		Data model.Reservation `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID != "r1" || resp.Data.Status != model.StatusUpcoming {
		t.Errorf("response = %+v", resp.Data)
	}
}

func TestBook_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "slot already booked",
			err:        apperrors.Conflict("Slot is already booked for this date").WithCause(reservationserrors.ErrSlotAlreadyBooked),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
		},
		{
			name:       "invalid date",
			err:        apperrors.InvalidInput("bad date").WithCause(reservationserrors.ErrInvalidDate),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name:       "space not found",
			err:        apperrors.NotFoundWithID("Space", "S9").WithCause(reservationserrors.ErrSpaceNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
		},
		{
			name:       "store unavailable",
			err:        apperrors.Unavailable("Reservation store").WithCause(reservationserrors.ErrStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apperrors.CodeUnavailable,
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReservationService{
				bookFunc: func(ctx context.Context, req *model.BookRequest) (*model.Reservation, error) {
					return nil, tt.err
				},
			}

			w := serve(newRouter(svc), http.MethodPost, "/api/v1/spaces/S1/reservations",
				`{"date":"2025-06-01","slot_id":"morning"}`,
				map[string]string{middleware.HeaderUserID: "bob"})

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp := decodeError(t, w); resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestBook_RequestProblems(t *testing.T) {
	svc := &mockReservationService{
		bookFunc: func(ctx context.Context, req *model.BookRequest) (*model.Reservation, error) {
			t.Error("service should not be called")
			return nil, nil
		},
	}
	router := newRouter(svc)

	w := serve(router, http.MethodPost, "/api/v1/spaces/S1/reservations", `{"date":"2025-06-01","slot_id":"morning"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing requester status = %d, want 401", w.Code)
	}

	w = serve(router, http.MethodPost, "/api/v1/spaces/S1/reservations", `{"date":`, map[string]string{middleware.HeaderUserID: "alice"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}
}

func TestGetAvailability(t *testing.T) {
	svc := &mockReservationService{
		getAvailabilityFunc: func(ctx context.Context, spaceID string, date string) (*model.SpaceAvailability, error) {
			return &model.SpaceAvailability{
				SpaceID: spaceID,
				Date:    date,
				Slots: []model.SlotAvailability{
					{TimeSlot: model.TimeSlot{ID: "morning", StartTime: "09:00", EndTime: "10:00"}, Booked: true},
					{TimeSlot: model.TimeSlot{ID: "evening", StartTime: "18:00", EndTime: "19:00"}},
				},
			}, nil
		},
	}
	router := newRouter(svc)

	w := serve(router, http.MethodGet, "/api/v1/spaces/S1/availability?date=2025-06-01", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			SpaceID string `json:"space_id"`
			Slots   []struct {
				ID     string `json:"id"`
				Booked bool   `json:"booked"`
			} `json:"slots"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.SpaceID != "S1" || len(resp.Data.Slots) != 2 || !resp.Data.Slots[0].Booked || resp.Data.Slots[1].Booked {
		t.Errorf("response = %+v", resp.Data)
	}

	w = serve(router, http.MethodGet, "/api/v1/spaces/S1/availability", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing date status = %d, want 400", w.Code)
	}
}

func TestListForUser(t *testing.T) {
	svc := &mockReservationService{
		listForUserFunc: func(ctx context.Context, userID string) ([]model.Reservation, error) {
			if userID != "alice" {
				t.Errorf("userID = %s", userID)
			}
			return []model.Reservation{
				{ID: "r1", Status: model.StatusCompleted},
				{ID: "r2", Status: model.StatusUpcoming},
			}, nil
		},
	}

	w := serve(newRouter(svc), http.MethodGet, "/api/v1/users/alice/reservations", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data []model.Reservation `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].Status != model.StatusCompleted {
		t.Errorf("response = %+v", resp.Data)
	}
}

func TestCancel(t *testing.T) {
	svc := &mockReservationService{
		cancelFunc: func(ctx context.Context, id string, requester string) (*model.Reservation, error) {
			if requester != "alice" {
				return nil, apperrors.Forbidden("not yours").WithCause(reservationserrors.ErrNotOwner)
			}
			return &model.Reservation{ID: id, Status: model.StatusCancelled}, nil
		},
	}
	router := newRouter(svc)

	w := serve(router, http.MethodDelete, "/api/v1/reservations/id/r1", "", map[string]string{middleware.HeaderUserID: "alice"})
	if w.Code != http.StatusOK {
		t.Errorf("owner cancel status = %d", w.Code)
	}

	w = serve(router, http.MethodDelete, "/api/v1/reservations/id/r1", "", map[string]string{middleware.HeaderUserID: "bob"})
	if w.Code != http.StatusForbidden {
		t.Errorf("non-owner cancel status = %d, want 403", w.Code)
	}

	w = serve(router, http.MethodDelete, "/api/v1/reservations/id/r1", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous cancel status = %d, want 401", w.Code)
	}
}

func TestSpaces(t *testing.T) {
	svc := &mockReservationService{
		getSpaceFunc: func(ctx context.Context, spaceID string) (*model.Space, error) {
			if spaceID != "S1" {
				return nil, apperrors.NotFoundWithID("Space", spaceID).WithCause(reservationserrors.ErrSpaceNotFound)
			}
			return &model.Space{ID: "S1"}, nil
		},
	}
	router := newRouter(svc)

	if w := serve(router, http.MethodGet, "/api/v1/spaces", "", nil); w.Code != http.StatusOK {
		t.Errorf("list status = %d", w.Code)
	}
	if w := serve(router, http.MethodGet, "/api/v1/spaces/S1", "", nil); w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}
	if w := serve(router, http.MethodGet, "/api/v1/spaces/S9", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown space status = %d, want 404", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	readyErr := error(nil)
	svc := &mockReservationService{
		readyFunc: func(ctx context.Context) error { return readyErr },
	}
	router := httprouter.New()
	NewHealthHandler(svc, logger.Discard()).RegisterRoutes(router)

	if w := serve(router, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
	if w := serve(router, http.MethodGet, "/ready", "", nil); w.Code != http.StatusOK {
		t.Errorf("ready status = %d", w.Code)
	}

	readyErr = errors.New("store down")
	if w := serve(router, http.MethodGet, "/ready", "", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status with store down = %d, want 503", w.Code)
	}
}
