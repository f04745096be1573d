package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
)

type orderServiceStub struct{}

func (orderServiceStub) List(ctx context.Context, req orderdomain.ListOrdersRequest) (orderdomain.ListOrdersResponse, error) {
	return orderdomain.ListOrdersResponse{}, nil
}

func (orderServiceStub) ListSignRequests(ctx context.Context, req orderdomain.ListSignRequestsRequest) (orderdomain.ListSignRequestsResponse, error) {
	if req.OfficeID == "" {
		return orderdomain.ListSignRequestsResponse{}, orderdomain.ErrOfficeRequired
	}
	return orderdomain.ListSignRequestsResponse{}, nil
}

func (orderServiceStub) Stats(ctx context.Context, req orderdomain.StatsRequest) (orderdomain.Stats, error) {
	if req.OfficeID == "" {
		return orderdomain.Stats{}, orderdomain.ErrOfficeRequired
	}
	return orderdomain.Stats{}, nil
}

func (orderServiceStub) GetByID(ctx context.Context, id string) (orderdomain.OrderView, error) {
	return orderdomain.OrderView{}, orderdomain.ErrNotFound
}

func (orderServiceStub) Create(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.OrderView, error) {
	return orderdomain.OrderView{}, nil
}

func (orderServiceStub) Update(ctx context.Context, id string, req orderdomain.UpdateOrderRequest) (orderdomain.OrderView, error) {
	return orderdomain.OrderView{}, orderdomain.ErrNotFound
}

func (orderServiceStub) Delete(ctx context.Context, id string) error {
	return orderdomain.ErrNotFound
}

func (orderServiceStub) CheckReorderEligibility(ctx context.Context, id string) (bool, error) {
	return false, orderdomain.ErrNotFound
}

func newSignRequestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	s := &Server{engine: r, orderSvc: orderServiceStub{}}
	r.GET("/api/sign-requests", s.ListSignRequests)
	r.GET("/api/sign-requests/stats", s.SignRequestStats)
	return r
}

func TestSignRequestEndpointsRequireOffice(t *testing.T) {
	r := newSignRequestEngine()

	for _, path := range []string{"/api/sign-requests", "/api/sign-requests/stats"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}

		var resp errorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode body: %v", path, err)
		}
		if resp.Code != "OFFICE_REQUIRED" {
			t.Fatalf("%s: expected code OFFICE_REQUIRED, got %q", path, resp.Code)
		}
		if resp.Message == "" {
			t.Fatalf("%s: expected a message alongside the code", path)
		}
	}
}

func TestSignRequestEndpointsAcceptOfficeFilter(t *testing.T) {
	r := newSignRequestEngine()

	for _, path := range []string{"/api/sign-requests?officeId=1", "/api/sign-requests/stats?officeId=1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d (%s)", path, w.Code, w.Body.String())
		}
	}
}
