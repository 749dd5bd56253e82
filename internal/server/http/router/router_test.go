package router

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivmish/teremok/internal/config"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/test"
)

type facadeStub struct{}

func (facadeStub) AuthenticateOwner(password string) (string, error) { return "token", nil }
func (facadeStub) ParseAdminToken(token string) (int64, error)       { return 100, nil }
func (facadeStub) PendingOrders(context.Context) ([]model.PendingOrder, error) {
	return nil, nil
}
func (facadeStub) ApproveOrder(context.Context, int64) ([]model.Order, error) { return nil, nil }
func (facadeStub) DeclineOrder(context.Context, int64) (*model.PendingOrder, error) {
	return nil, nil
}
func (facadeStub) SetOrderStatus(context.Context, int64, model.OrderStatus) (*model.Order, error) {
	return nil, nil
}
func (facadeStub) DeleteOrder(context.Context, int64) (*model.Order, error) { return nil, nil }
func (facadeStub) RecentOrders(context.Context, bool) ([]model.Order, error) {
	return []model.Order{{ID: 1, Status: model.OrderStatusProcessing}}, nil
}
func (facadeStub) Subscribers(context.Context) ([]model.Subscriber, error) { return nil, nil }
func (facadeStub) Unsubscriptions(context.Context, int) ([]model.Unsubscription, error) {
	return nil, nil
}
func (facadeStub) Referrals(context.Context) ([]model.Referral, error) { return nil, nil }

type sinkStub struct{ count int }

func (s *sinkStub) HandleUpdate(ctx context.Context, update tgbotapi.Update) { s.count++ }

type pingerStub struct{}

func (pingerStub) HealthCheck(context.Context) error { return nil }

func newParams(webhookSecret string, sink *sinkStub) Params {
	return Params{
		Config:      &config.Config{WebhookSecret: webhookSecret},
		Facade:      facadeStub{},
		Broadcaster: &test.BroadcasterStub{},
		Sink:        sink,
		Pinger:      pingerStub{},
		Logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

func TestRouterRejectsUnauthenticatedAdmin(t *testing.T) {
	engine := Setup(newParams("", &sinkStub{}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestRouterServesAuthenticatedAdmin(t *testing.T) {
	engine := Setup(newParams("", &sinkStub{}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestRouterLoginIsPublic(t *testing.T) {
	engine := Setup(newParams("", &sinkStub{}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		bytes.NewBufferString(`{"password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestRouterHealthz(t *testing.T) {
	engine := Setup(newParams("", &sinkStub{}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestRouterWebhookOnlyWithSecret(t *testing.T) {
	sink := &sinkStub{}
	engine := Setup(newParams("s3cret", sink))

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook/s3cret",
		bytes.NewBufferString(`{"update_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if sink.count != 1 {
		t.Fatalf("update must reach the sink, got %d", sink.count)
	}

	pollingEngine := Setup(newParams("", &sinkStub{}))
	req = httptest.NewRequest(http.MethodPost, "/telegram/webhook/anything",
		bytes.NewBufferString(`{"update_id":1}`))
	w = httptest.NewRecorder()
	pollingEngine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("polling mode must not expose the webhook route, got %d", w.Code)
	}
}
