package controllers_test

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"geocheckin/controllers"
	"geocheckin/middleware"
	"geocheckin/models"
	"geocheckin/response"
	"geocheckin/services"
	"geocheckin/services/geofence"
	"geocheckin/services/logger"
	"geocheckin/services/mocks"
	"geocheckin/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterBindings(); err != nil {
		panic(err)
	}
}

type scanHarness struct {
	router *gin.Engine
	token  string
	gate   *mocks.MockScanGate
	sites  *mocks.MockSiteStore
	store  *mocks.MockAttendanceStore
	cache  *mocks.MockCache
	notify *mocks.MockNotifier
}

func newScanHarness(t *testing.T) *scanHarness {
	ctrl := gomock.NewController(t)
	h := &scanHarness{
		gate:   mocks.NewMockScanGate(ctrl),
		sites:  mocks.NewMockSiteStore(ctrl),
		store:  mocks.NewMockAttendanceStore(ctrl),
		cache:  mocks.NewMockCache(ctrl),
		notify: mocks.NewMockNotifier(ctrl),
	}

	svc := services.NewAttendanceService(services.AttendanceServiceOptions{
		Sites:      h.sites,
		Store:      h.store,
		Gate:       h.gate,
		Cache:      h.cache,
		Notifier:   h.notify,
		Logger:     logger.Nop{},
		Now:        func() time.Time { return time.Date(2024, 5, 10, 15, 4, 0, 0, time.UTC) },
		HistoryTTL: time.Minute,
	})
	tokens := services.NewTokenManager("secret", 60)
	h.token, _ = tokens.GenerateToken(services.UserInfo{UserId: 7, Email: "ana@example.com"})

	ac := controllers.NewAttendanceController(svc)
	h.router = gin.New()
	v1 := h.router.Group("/api/v1", middleware.ErrorHandler())
	v1.POST("/attendance/scan", middleware.SessionMiddleware(), middleware.AuthMiddleware(tokens), ac.Scan)
	v1.GET("/attendance", middleware.AuthMiddleware(tokens), ac.History)
	return h
}

func (h *scanHarness) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func scanBody(payload string, lat, lng float64) gin.H {
	return gin.H{"payload": payload, "latitude": lat, "longitude": lng}
}

func hq() *geofence.SiteRecord {
	return &geofence.SiteRecord{ID: "hq", Name: "Head Office", Latitude: 12.9716, Longitude: 77.5946}
}

func TestScanAdmitted(t *testing.T) {
	h := newScanHarness(t)
	h.gate.EXPECT().Acquire(gomock.Any(), "scan_gate:7").Return("tok", true, nil)
	h.sites.EXPECT().FindSite(gomock.Any(), "hq").Return(hq(), nil)
	h.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	h.cache.EXPECT().Delete(gomock.Any(), "attendance_history:7").Return(nil).Times(2)
	h.notify.EXPECT().SendMessage(gomock.Any()).Return(nil)
	h.gate.EXPECT().Release(gomock.Any(), "scan_gate:7", "tok").Return(nil)

	w, resp := h.do(t, http.MethodPost, "/api/v1/attendance/scan", scanBody(`{"siteId":"hq"}`, 12.9717, 77.5946))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if resp.Code != 1 || resp.Mess != "Attendance recorded" {
		t.Errorf("unexpected envelope %+v", resp)
	}
	if w.Header().Get(middleware.SessionHeader) == "" {
		t.Error("session header missing")
	}
}

func TestScanAdmittedAtSiteReportsZeroDistance(t *testing.T) {
	h := newScanHarness(t)
	h.gate.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return("tok", true, nil)
	h.sites.EXPECT().FindSite(gomock.Any(), "hq").Return(hq(), nil)
	h.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	h.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	h.notify.EXPECT().SendMessage(gomock.Any()).Return(nil)
	h.gate.EXPECT().Release(gomock.Any(), gomock.Any(), "tok").Return(nil)

	w, resp := h.do(t, http.MethodPost, "/api/v1/attendance/scan", scanBody("site:hq", 12.9716, 77.5946))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data %#v", resp.Data)
	}
	distance, ok := data["distanceMeters"]
	if !ok {
		t.Fatalf("distanceMeters missing from %v", data)
	}
	if distance.(float64) != 0 {
		t.Errorf("distanceMeters = %v, want 0", distance)
	}
}

func TestScanRejectionStatuses(t *testing.T) {
	misconfigured := hq()
	misconfigured.Latitude = math.NaN()

	tests := []struct {
		name    string
		payload string
		site    *geofence.SiteRecord
		lookup  bool
		status  int
		code    string
	}{
		{"invalid payload", "hello", nil, false, http.StatusBadRequest, "INVALID_PAYLOAD"},
		{"not found", "site:gone", nil, true, http.StatusNotFound, "SITE_NOT_FOUND"},
		{"misconfigured", "site:hq", misconfigured, true, http.StatusUnprocessableEntity, "SITE_MISCONFIGURED"},
		{"out of range", "site:hq", hq(), true, http.StatusForbidden, "OUT_OF_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newScanHarness(t)
			h.gate.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return("tok", true, nil)
			if tt.lookup {
				h.sites.EXPECT().FindSite(gomock.Any(), gomock.Any()).Return(tt.site, nil)
			}
			h.gate.EXPECT().Release(gomock.Any(), gomock.Any(), "tok").Return(nil)

			w, resp := h.do(t, http.MethodPost, "/api/v1/attendance/scan", scanBody(tt.payload, 12.9816, 77.5946))
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if resp.ErrorCode != tt.code {
				t.Errorf("error code = %q, want %q", resp.ErrorCode, tt.code)
			}
		})
	}
}

func TestScanInProgress(t *testing.T) {
	h := newScanHarness(t)
	h.gate.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return("", false, nil)

	w, resp := h.do(t, http.MethodPost, "/api/v1/attendance/scan", scanBody("site:hq", 1, 1))
	if w.Code != http.StatusConflict || resp.ErrorCode != "SCAN_IN_PROGRESS" {
		t.Fatalf("got %d %+v", w.Code, resp)
	}
}

func TestScanRejectsBadPosition(t *testing.T) {
	h := newScanHarness(t)

	w, _ := h.do(t, http.MethodPost, "/api/v1/attendance/scan", scanBody("site:hq", 123, 1))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	w, _ = h.do(t, http.MethodPost, "/api/v1/attendance/scan", gin.H{"payload": "site:hq"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing position: status = %d, want 400", w.Code)
	}
}

func TestHistory(t *testing.T) {
	h := newScanHarness(t)
	h.cache.EXPECT().Get(gomock.Any(), "attendance_history:7", gomock.Any()).Return(false, nil)
	h.store.EXPECT().ListByUser(gomock.Any(), uint(7), 50).Return([]models.Attendance{
		{SiteID: "hq", UserID: 7, Timestamp: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)},
	}, nil)
	h.sites.EXPECT().SiteNames(gomock.Any(), []string{"hq"}).Return(map[string]string{"hq": "Head Office"}, nil)
	h.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(nil)

	w, resp := h.do(t, http.MethodGet, "/api/v1/attendance?limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	items, ok := resp.Data.([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected data %#v", resp.Data)
	}
	item := items[0].(map[string]interface{})
	if item["siteName"] != "Head Office" || item["displayTime"] != "Today, 09:00 AM" {
		t.Errorf("unexpected item %v", item)
	}
}

func TestHistoryBadLimit(t *testing.T) {
	h := newScanHarness(t)
	w, _ := h.do(t, http.MethodGet, "/api/v1/attendance?limit=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestScanRequiresAuth(t *testing.T) {
	h := newScanHarness(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/scan", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
