package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/server/http/dto"
	"github.com/ivmish/teremok/internal/test"
)

type adminFacadeStub struct {
	authErr    error
	orders     []model.Order
	pendings   []model.PendingOrder
	orderErr   error
	pendingErr error

	approved []int64
	declined []int64
	statuses []model.OrderStatus
	deleted  []int64
}

func (s *adminFacadeStub) AuthenticateOwner(password string) (string, error) {
	if s.authErr != nil {
		return "", s.authErr
	}
	return "token", nil
}

func (s *adminFacadeStub) ParseAdminToken(token string) (int64, error) { return 100, nil }

func (s *adminFacadeStub) PendingOrders(ctx context.Context) ([]model.PendingOrder, error) {
	return s.pendings, s.pendingErr
}

func (s *adminFacadeStub) ApproveOrder(ctx context.Context, id int64) ([]model.Order, error) {
	if s.pendingErr != nil {
		return nil, s.pendingErr
	}
	s.approved = append(s.approved, id)
	return s.orders, nil
}

func (s *adminFacadeStub) DeclineOrder(ctx context.Context, id int64) (*model.PendingOrder, error) {
	if s.pendingErr != nil {
		return nil, s.pendingErr
	}
	s.declined = append(s.declined, id)
	return &model.PendingOrder{ID: id}, nil
}

func (s *adminFacadeStub) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	s.statuses = append(s.statuses, status)
	return &model.Order{ID: orderID, Status: status}, nil
}

func (s *adminFacadeStub) DeleteOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	s.deleted = append(s.deleted, orderID)
	return &model.Order{ID: orderID}, nil
}

func (s *adminFacadeStub) RecentOrders(ctx context.Context, includeDelivered bool) ([]model.Order, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	if !includeDelivered {
		var out []model.Order
		for _, o := range s.orders {
			if o.Status != model.OrderStatusDelivered {
				out = append(out, o)
			}
		}
		return out, nil
	}
	return s.orders, nil
}

func (s *adminFacadeStub) Subscribers(ctx context.Context) ([]model.Subscriber, error) {
	return nil, nil
}

func (s *adminFacadeStub) Unsubscriptions(ctx context.Context, limit int) ([]model.Unsubscription, error) {
	return nil, nil
}

func (s *adminFacadeStub) Referrals(ctx context.Context) ([]model.Referral, error) {
	return nil, nil
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body any, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params

	handler(c)
	c.Writer.WriteHeaderNow()
	return w
}

func TestLoginSuccess(t *testing.T) {
	h := NewAuthHandler(&adminFacadeStub{})

	password := test.RandomASCIIString(16, 32)
	w := performJSON(t, h.Login, http.MethodPost, "/api/admin/login", dto.LoginRequest{Password: password}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp dto.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := NewAuthHandler(&adminFacadeStub{authErr: domainErrors.ErrInvalidCredentials})

	w := performJSON(t, h.Login, http.MethodPost, "/api/admin/login", dto.LoginRequest{Password: "guess"}, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestOrdersListFiltersDelivered(t *testing.T) {
	facade := &adminFacadeStub{orders: []model.Order{
		{ID: 1, Status: model.OrderStatusProcessing},
		{ID: 2, Status: model.OrderStatusDelivered},
	}}
	h := NewOrderHandler(facade)

	w := performJSON(t, h.List, http.MethodGet, "/api/admin/orders", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp []dto.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != 1 {
		t.Fatalf("delivered orders must be hidden by default: %+v", resp)
	}

	w = performJSON(t, h.List, http.MethodGet, "/api/admin/orders?all=true", nil, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected full list with ?all=true, got %d", len(resp))
	}
}

func TestOrdersListEmpty(t *testing.T) {
	h := NewOrderHandler(&adminFacadeStub{})

	w := performJSON(t, h.List, http.MethodGet, "/api/admin/orders", nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestUpdateStatus(t *testing.T) {
	facade := &adminFacadeStub{}
	h := NewOrderHandler(facade)

	w := performJSON(t, h.UpdateStatus, http.MethodPatch, "/api/admin/orders/3",
		dto.StatusUpdateRequest{Status: "SHIPPED"}, gin.Params{{Key: "id", Value: "3"}})

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if len(facade.statuses) != 1 || facade.statuses[0] != model.OrderStatusShipped {
		t.Fatalf("unexpected status calls: %v", facade.statuses)
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	h := NewOrderHandler(&adminFacadeStub{orderErr: domainErrors.ErrInvalidStatus})

	w := performJSON(t, h.UpdateStatus, http.MethodPatch, "/api/admin/orders/3",
		dto.StatusUpdateRequest{Status: "SHIPPED"}, gin.Params{{Key: "id", Value: "3"}})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestUpdateStatusBadID(t *testing.T) {
	h := NewOrderHandler(&adminFacadeStub{})

	w := performJSON(t, h.UpdateStatus, http.MethodPatch, "/api/admin/orders/abc",
		dto.StatusUpdateRequest{Status: "SHIPPED"}, gin.Params{{Key: "id", Value: "abc"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestApproveUnknownPending(t *testing.T) {
	h := NewOrderHandler(&adminFacadeStub{pendingErr: domainErrors.ErrNotFound})

	w := performJSON(t, h.Approve, http.MethodPost, "/api/admin/pending/9/approve", nil,
		gin.Params{{Key: "id", Value: "9"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestDeclinePending(t *testing.T) {
	facade := &adminFacadeStub{}
	h := NewOrderHandler(facade)

	w := performJSON(t, h.Decline, http.MethodPost, "/api/admin/pending/9/decline", nil,
		gin.Params{{Key: "id", Value: "9"}})

	if w.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if len(facade.declined) != 1 || facade.declined[0] != 9 {
		t.Fatalf("unexpected decline calls: %v", facade.declined)
	}
}

func TestBroadcastAccepted(t *testing.T) {
	broadcaster := &test.BroadcasterStub{Queued: 5}
	h := NewBroadcastHandler(&adminFacadeStub{}, broadcaster)

	w := performJSON(t, h.Send, http.MethodPost, "/api/admin/broadcast",
		dto.BroadcastRequest{Text: "Привет"}, nil)

	if w.Code != http.StatusAccepted {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp dto.BroadcastResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Queued != 5 {
		t.Fatalf("unexpected queued count: %d", resp.Queued)
	}
	if len(broadcaster.Calls) != 1 {
		t.Fatalf("expected 1 enqueue, got %d", len(broadcaster.Calls))
	}
}

func TestBroadcastEmptyText(t *testing.T) {
	h := NewBroadcastHandler(&adminFacadeStub{}, &test.BroadcasterStub{})

	w := performJSON(t, h.Send, http.MethodPost, "/api/admin/broadcast",
		dto.BroadcastRequest{Text: "   "}, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

type sinkStub struct {
	updates []tgbotapi.Update
}

func (s *sinkStub) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	s.updates = append(s.updates, update)
}

func TestWebhookSecretMismatch(t *testing.T) {
	sink := &sinkStub{}
	h := NewWebhookHandler("s3cret", sink)

	w := performJSON(t, h.Receive, http.MethodPost, "/telegram/webhook/wrong",
		tgbotapi.Update{UpdateID: 1}, gin.Params{{Key: "secret", Value: "wrong"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if len(sink.updates) != 0 {
		t.Fatal("update must not reach the sink")
	}
}

func TestWebhookDispatchesUpdate(t *testing.T) {
	sink := &sinkStub{}
	h := NewWebhookHandler("s3cret", sink)

	w := performJSON(t, h.Receive, http.MethodPost, "/telegram/webhook/s3cret",
		tgbotapi.Update{UpdateID: 7}, gin.Params{{Key: "secret", Value: "s3cret"}})

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if len(sink.updates) != 1 || sink.updates[0].UpdateID != 7 {
		t.Fatalf("unexpected sink state: %+v", sink.updates)
	}
}

type pingerStub struct{ err error }

func (p pingerStub) HealthCheck(ctx context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler(pingerStub{})
	w := performJSON(t, h.Check, http.MethodGet, "/healthz", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	h = NewHealthHandler(pingerStub{err: context.DeadlineExceeded})
	w = performJSON(t, h.Check, http.MethodGet, "/healthz", nil, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

var _ Broadcaster = (*test.BroadcasterStub)(nil)
