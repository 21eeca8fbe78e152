package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cosmoport/internal/dto"
	"cosmoport/internal/service"
	apperrors "cosmoport/pkg/errors"
	"cosmoport/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ShipService ──

type mockShipService struct {
	listResult   []dto.ShipResponse
	listErr      error
	countResult  int
	countErr     error
	getResult    *dto.ShipResponse
	getErr       error
	createResult *dto.ShipResponse
	createErr    error
	updateResult *dto.ShipResponse
	updateErr    error
	deleteErr    error

	lastList   *dto.ShipListRequest
	lastCount  *dto.ShipFilterRequest
	lastUpdate *dto.UpdateShipRequest
	lastID     int64
}

func (m *mockShipService) List(_ context.Context, req *dto.ShipListRequest) ([]dto.ShipResponse, error) {
	m.lastList = req
	return m.listResult, m.listErr
}
func (m *mockShipService) Count(_ context.Context, req *dto.ShipFilterRequest) (int, error) {
	m.lastCount = req
	return m.countResult, m.countErr
}
func (m *mockShipService) GetByID(_ context.Context, id int64) (*dto.ShipResponse, error) {
	m.lastID = id
	return m.getResult, m.getErr
}
func (m *mockShipService) Create(_ context.Context, _ *dto.CreateShipRequest) (*dto.ShipResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockShipService) Update(_ context.Context, id int64, req *dto.UpdateShipRequest) (*dto.ShipResponse, error) {
	m.lastID = id
	m.lastUpdate = req
	return m.updateResult, m.updateErr
}
func (m *mockShipService) Delete(_ context.Context, id int64) error {
	m.lastID = id
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportShips(_ context.Context, _ *dto.ShipListRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func newShipRouter(h *ShipHandler) *gin.Engine {
	r := gin.New()
	ships := r.Group("/rest/ships")
	ships.GET("", h.ListShips)
	ships.GET("/count", h.CountShips)
	ships.POST("", h.CreateShip)
	ships.GET("/:id", h.GetShip)
	ships.POST("/:id", h.UpdateShip)
	ships.DELETE("/:id", h.DeleteShip)
	return r
}

func doRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// ShipHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShipHandler_List_Success(t *testing.T) {
	mock := &mockShipService{listResult: []dto.ShipResponse{{ID: 1, Name: "Orion"}}}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "GET", "/rest/ships?name=Ori&isUsed=false&order=SPEED&pageNumber=1&pageSize=5&after=1000", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}

	req := mock.lastList
	if req == nil {
		t.Fatal("expected List to be called")
	}
	if req.Name == nil || *req.Name != "Ori" {
		t.Errorf("expected name=Ori, got %v", req.Name)
	}
	if req.IsUsed == nil || *req.IsUsed {
		t.Errorf("expected isUsed=false, got %v", req.IsUsed)
	}
	if req.Order != "SPEED" {
		t.Errorf("expected order=SPEED, got %s", req.Order)
	}
	if req.PageNumber == nil || *req.PageNumber != 1 || req.PageSize == nil || *req.PageSize != 5 {
		t.Errorf("unexpected paging: %v / %v", req.PageNumber, req.PageSize)
	}
	if req.After == nil || *req.After != 1000 {
		t.Errorf("expected after=1000, got %v", req.After)
	}
	if req.Before != nil {
		t.Errorf("expected before unset, got %v", *req.Before)
	}
}

func TestShipHandler_List_BadQuery(t *testing.T) {
	mock := &mockShipService{}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "GET", "/rest/ships?pageSize=abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if mock.lastList != nil {
		t.Error("service should not be called on bad query")
	}
}

func TestShipHandler_List_OutOfRange(t *testing.T) {
	mock := &mockShipService{listErr: fmt.Errorf("%w: 起始位置 9，共 7 条", apperrors.ErrOutOfRange)}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "GET", "/rest/ships?pageNumber=3", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20003 {
		t.Errorf("expected error code 20003, got %d", resp.Code)
	}
	if resp.Details == "" {
		t.Error("expected details")
	}
}

func TestShipHandler_Count_Success(t *testing.T) {
	mock := &mockShipService{countResult: 4}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "GET", "/rest/ships/count?shipType=MILITARY", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data dto.ShipCountResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Data.Count != 4 {
		t.Errorf("expected count 4, got %d", body.Data.Count)
	}
	if mock.lastCount == nil || mock.lastCount.ShipType == nil || *mock.lastCount.ShipType != "MILITARY" {
		t.Error("expected shipType=MILITARY to be forwarded")
	}
}

func TestShipHandler_Get_Success(t *testing.T) {
	mock := &mockShipService{getResult: &dto.ShipResponse{ID: 12, Name: "Orion"}}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "GET", "/rest/ships/12", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastID != 12 {
		t.Errorf("expected id 12, got %d", mock.lastID)
	}
}

func TestShipHandler_Get_NonNumericID(t *testing.T) {
	mock := &mockShipService{}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "GET", "/rest/ships/abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20002 {
		t.Errorf("expected error code 20002, got %d", resp.Code)
	}
}

func TestShipHandler_Get_NotFound(t *testing.T) {
	mock := &mockShipService{getErr: service.ErrShipNotFound}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "GET", "/rest/ships/99", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20001 {
		t.Errorf("expected error code 20001, got %d", resp.Code)
	}
}

func TestShipHandler_Create_Success(t *testing.T) {
	mock := &mockShipService{createResult: &dto.ShipResponse{ID: 1, Name: "Orion"}}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "POST", "/rest/ships", jsonBody(map[string]interface{}{
		"name":     "Orion",
		"planet":   "Mars",
		"shipType": "MILITARY",
		"prodDate": 32503680000000,
		"speed":    0.8,
		"crewSize": 100,
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestShipHandler_Create_BadJSON(t *testing.T) {
	mock := &mockShipService{}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "POST", "/rest/ships", bytes.NewReader([]byte("invalid json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestShipHandler_Update_EmptyBody(t *testing.T) {
	mock := &mockShipService{updateResult: &dto.ShipResponse{ID: 3}}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "POST", "/rest/ships/3", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastUpdate == nil || mock.lastID != 3 {
		t.Error("expected Update to be called with id 3")
	}
}

func TestShipHandler_Update_InvalidArgument(t *testing.T) {
	mock := &mockShipService{updateErr: fmt.Errorf("%w: 字段 speed 不合法 (0.995)", apperrors.ErrInvalidArgument)}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "POST", "/rest/ships/3", jsonBody(map[string]interface{}{"name": "New", "speed": 0.995}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20002 {
		t.Errorf("expected error code 20002, got %d", resp.Code)
	}
	if mock.lastUpdate == nil || mock.lastUpdate.Name == nil || *mock.lastUpdate.Name != "New" {
		t.Error("expected name to be forwarded")
	}
}

func TestShipHandler_Delete_Success(t *testing.T) {
	mock := &mockShipService{}
	r := newShipRouter(NewShipHandler(mock))

	w := doRequest(r, "DELETE", "/rest/ships/5", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastID != 5 {
		t.Errorf("expected id 5, got %d", mock.lastID)
	}
}

func TestShipHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"not found", service.ErrShipNotFound, http.StatusNotFound, 20001},
		{"invalid id", service.ErrInvalidShipID, http.StatusBadRequest, 20002},
		{"out of range", apperrors.ErrOutOfRange, http.StatusBadRequest, 20003},
		{"internal", errors.New("db down"), http.StatusInternalServerError, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockShipService{deleteErr: tt.err}
			r := newShipRouter(NewShipHandler(mock))

			w := doRequest(r, "DELETE", "/rest/ships/1", nil)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected error code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "ships.xlsx",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/rest/ships/export", h.ExportShips)
	w := doRequest(r, "GET", "/rest/ships/export?order=RATING", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
	if w.Body.String() != "excel content" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestExportHandler_Empty(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportEmpty}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/rest/ships/export", h.ExportShips)
	w := doRequest(r, "GET", "/rest/ships/export", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20101 {
		t.Errorf("expected error code 20101, got %d", resp.Code)
	}
}

func TestExportHandler_GenerateFail(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportGenerateFail}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/rest/ships/export", h.ExportShips)
	w := doRequest(r, "GET", "/rest/ships/export", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
