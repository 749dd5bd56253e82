package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ivmish/teremok/internal/bot"
	"github.com/ivmish/teremok/internal/config"
	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	pkgAuth "github.com/ivmish/teremok/internal/pkg/auth"
	"github.com/ivmish/teremok/internal/usecase"
)

// Notifier delivers text to a chat. Satisfied by the Telegram gateway.
type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// GuesthouseFacade aggregates the application's business operations.
// Status changes and owner decisions notify the affected user from here;
// delivery failures are logged and never fail the underlying mutation.
type GuesthouseFacade struct {
	cart     *usecase.CartUseCase
	orders   *usecase.OrderUseCase
	subs     *usecase.SubscriptionUseCase
	audit    *usecase.AuditUseCase
	notifier Notifier
	tokens   pkgAuth.Strategy
	hasher   pkgAuth.PasswordHasher
	config   *config.Config
	logger   *slog.Logger
}

// NewGuesthouseFacade constructs the facade.
func NewGuesthouseFacade(
	cart *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	subs *usecase.SubscriptionUseCase,
	audit *usecase.AuditUseCase,
	notifier Notifier,
	tokens pkgAuth.Strategy,
	hasher pkgAuth.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) *GuesthouseFacade {
	return &GuesthouseFacade{
		cart:     cart,
		orders:   orders,
		subs:     subs,
		audit:    audit,
		notifier: notifier,
		tokens:   tokens,
		hasher:   hasher,
		config:   cfg,
		logger:   logger,
	}
}

// --- catalog and cart ---

func (f *GuesthouseFacade) CatalogItems() []model.CatalogItem {
	return f.cart.Items()
}

func (f *GuesthouseFacade) CatalogItem(name string) (model.CatalogItem, bool) {
	return f.cart.Item(name)
}

func (f *GuesthouseFacade) AddToCart(ctx context.Context, userID int64, item string, quantity int32) (*model.CartLine, error) {
	return f.cart.Add(ctx, userID, item, quantity)
}

func (f *GuesthouseFacade) CartLines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return f.cart.List(ctx, userID)
}

func (f *GuesthouseFacade) CartTotal(ctx context.Context, userID int64) (int64, error) {
	return f.cart.Total(ctx, userID)
}

func (f *GuesthouseFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.cart.Clear(ctx, userID)
}

// --- order lifecycle ---

// SubmitOrder snapshots the user's cart into a pending order.
func (f *GuesthouseFacade) SubmitOrder(ctx context.Context, userID int64, handle string) (*model.PendingOrder, error) {
	return f.orders.Submit(ctx, userID, handle)
}

func (f *GuesthouseFacade) PendingOrder(ctx context.Context, id int64) (*model.PendingOrder, error) {
	return f.orders.Pending(ctx, id)
}

func (f *GuesthouseFacade) PendingOrders(ctx context.Context) ([]model.PendingOrder, error) {
	return f.orders.PendingList(ctx)
}

// ApproveOrder promotes a pending snapshot into the ledger and tells the
// customer.
func (f *GuesthouseFacade) ApproveOrder(ctx context.Context, id int64) ([]model.Order, error) {
	orders, err := f.orders.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(orders) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "✅ Ваш заказ №%d подтверждён!\n", id)
		for _, o := range orders {
			fmt.Fprintf(&b, "• %s ×%d — %s\n", o.Item, o.Quantity, bot.FormatPrice(o.LineTotal))
		}
		b.WriteString("Статус: " + model.OrderStatusProcessing.Title())
		f.notifyUser(ctx, orders[0].UserID, b.String())
	}
	return orders, nil
}

// DeclineOrder discards a pending snapshot and tells the customer.
func (f *GuesthouseFacade) DeclineOrder(ctx context.Context, id int64) (*model.PendingOrder, error) {
	pending, err := f.orders.Decline(ctx, id)
	if err != nil {
		return nil, err
	}
	f.notifyUser(ctx, pending.UserID, fmt.Sprintf("❌ Ваш заказ №%d отклонён хозяевами.", id))
	return pending, nil
}

// SetOrderStatus moves a ledger row to a new status and tells the customer.
func (f *GuesthouseFacade) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	order, err := f.orders.SetStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	f.notifyUser(ctx, order.UserID,
		fmt.Sprintf("📦 Заказ №%d (%s): статус изменён на «%s».", order.ID, order.Item, order.Status.Title()))
	return order, nil
}

// DeleteOrder removes a ledger row and tells the customer.
func (f *GuesthouseFacade) DeleteOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := f.orders.Delete(ctx, orderID)
	if err != nil {
		return nil, err
	}
	f.notifyUser(ctx, order.UserID,
		fmt.Sprintf("🗑 Заказ №%d (%s) удалён из истории.", order.ID, order.Item))
	return order, nil
}

func (f *GuesthouseFacade) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListForUser(ctx, userID)
}

// RecentOrders returns the owner's action queue, capped by configuration.
func (f *GuesthouseFacade) RecentOrders(ctx context.Context, includeDelivered bool) ([]model.Order, error) {
	return f.orders.Recent(ctx, f.config.RecentOrdersLimit, includeDelivered)
}

// --- subscriptions ---

func (f *GuesthouseFacade) Subscribe(ctx context.Context, userID int64, handle string) error {
	return f.subs.Subscribe(ctx, userID, handle)
}

func (f *GuesthouseFacade) Unsubscribe(ctx context.Context, userID int64, handle string) error {
	return f.subs.Unsubscribe(ctx, userID, handle)
}

func (f *GuesthouseFacade) Subscribers(ctx context.Context) ([]model.Subscriber, error) {
	return f.subs.Subscribers(ctx)
}

func (f *GuesthouseFacade) Unsubscriptions(ctx context.Context, limit int) ([]model.Unsubscription, error) {
	return f.subs.Unsubscriptions(ctx, limit)
}

// --- audit ---

// RecordActivity appends to the user log. Failures are logged only: the
// audit trail must never break a user-facing flow.
func (f *GuesthouseFacade) RecordActivity(ctx context.Context, userID int64, handle, action string) {
	if err := f.audit.RecordActivity(ctx, userID, handle, action); err != nil {
		f.logger.Error("record activity failed",
			slog.Int64("user_id", userID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

func (f *GuesthouseFacade) RecordReferral(ctx context.Context, userID int64, handle, source string) (bool, error) {
	return f.audit.RecordReferral(ctx, userID, handle, source)
}

func (f *GuesthouseFacade) Referrals(ctx context.Context) ([]model.Referral, error) {
	return f.audit.Referrals(ctx)
}

// --- owner identity ---

// IsOwner is the capability check for administrative actions.
func (f *GuesthouseFacade) IsOwner(chatID int64) bool {
	return chatID == f.config.OwnerChatID
}

// OwnerChatID returns the configured owner chat.
func (f *GuesthouseFacade) OwnerChatID() int64 {
	return f.config.OwnerChatID
}

// AuthenticateOwner checks the admin API password and issues a token.
func (f *GuesthouseFacade) AuthenticateOwner(password string) (string, error) {
	if f.config.AdminPasswordHash == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := f.hasher.Compare(f.config.AdminPasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return f.tokens.IssueToken(f.config.OwnerChatID)
}

// ParseAdminToken validates an admin API token.
func (f *GuesthouseFacade) ParseAdminToken(token string) (int64, error) {
	return f.tokens.ParseToken(token)
}

func (f *GuesthouseFacade) notifyUser(ctx context.Context, chatID int64, text string) {
	if err := f.notifier.SendText(ctx, chatID, text); err != nil {
		f.logger.Error("notification delivery failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}
