package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockdesk/internal/allocation"
	"stockdesk/internal/config"
	"stockdesk/internal/domain"
	"stockdesk/internal/dto"
	"stockdesk/internal/infrastructure/metrics"
	"stockdesk/internal/order"
	"stockdesk/internal/order/repository"
	"stockdesk/internal/stock"
	stockrepo "stockdesk/internal/stock/repository"
)

func intPtr(i int) *int {
	return &i
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Allocation: config.AllocationConfig{ZeroRequested: allocation.ZeroRequestedFulfilled, EditPolicy: allocation.EditPolicyReject},
		Order:      config.OrderConfig{MaxRetryAttempts: 3},
	}
	m := metrics.New()

	stockModule := stock.NewModule(stockrepo.NewMemoryRepository(
		domain.StockLevel{ProductCode: "A", OnHand: intPtr(12), Reserved: intPtr(2)},
	), zap.NewNop())

	orders := repository.NewMemoryOrderRepository(domain.Order{
		ID:    "SO-1",
		Lines: []domain.OrderLine{{ProductCode: "A", RequestedQty: 10, AvailableQty: 5, AllocatedQty: 5}},
	})
	orderModule, err := order.NewModule(orders, stockModule.Service, m, cfg, zap.NewNop())
	require.NoError(t, err)

	return NewRouter(orderModule.Controller, stockModule.Controller, m, zap.NewNop())
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_OrderFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := serve(h, http.MethodGet, "/api/v1/orders/SO-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodPost, "/api/v1/orders/SO-1/availability/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodPatch, "/api/v1/orders/SO-1/lines/A/allocation", `{"allocatedQty":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.OrderStatusFullyAllocated), resp.Status)
	assert.Equal(t, 10, resp.Lines[0].AvailableQty)
}

func TestRouter_StockSearch(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodPost, "/api/v1/stock/search", `{"productCodes":["A"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"productCode":"A"`)
}

func TestRouter_MetricsRecordsEvaluations(t *testing.T) {
	h := newTestHandler(t)

	rec := serve(h, http.MethodPost, "/api/v1/allocation/classify", `{"lines":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `order_status_evaluations_total{status="DRAFT"} 1`)
	assert.Contains(t, rec.Body.String(), `path="/api/v1/allocation/classify"`)
}

func TestRouter_NotFound(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ShutdownWithoutStart(t *testing.T) {
	srv := New(18080, http.NewServeMux(), zap.NewNop())

	assert.Equal(t, ":18080", srv.Addr())
	assert.NoError(t, srv.Shutdown(context.Background()))
}
