package test

import (
	"context"
	"time"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/domain/repository"
)

// CartRepositoryStub stores cart lines in-memory for tests.
type CartRepositoryStub struct {
	AddFn   func(context.Context, int64, string, int32, int64) (*model.CartLine, error)
	ListFn  func(context.Context, int64) ([]model.CartLine, error)
	ClearFn func(context.Context, int64) error
	Lines   map[int64][]model.CartLine
	Next    int64
	Err     error

	Cleared []int64
}

// NewCartRepositoryStub constructs stub repository with initialized maps.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Lines: make(map[int64][]model.CartLine), Next: 1}
}

// Add appends a line unless an override or error is configured.
func (s *CartRepositoryStub) Add(ctx context.Context, userID int64, item string, quantity int32, unitPrice int64) (*model.CartLine, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, item, quantity, unitPrice)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Lines == nil {
		s.Lines = make(map[int64][]model.CartLine)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	line := model.CartLine{
		ID:        s.Next,
		UserID:    userID,
		Item:      item,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		AddedAt:   time.Unix(0, 0),
	}
	s.Next++
	s.Lines[userID] = append(s.Lines[userID], line)
	return &line, nil
}

// ListByUser returns stored lines.
func (s *CartRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Lines[userID], nil
}

// Clear drops stored lines and records the call.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	s.Cleared = append(s.Cleared, userID)
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	if s.Err != nil {
		return s.Err
	}
	delete(s.Lines, userID)
	return nil
}

// Total sums stored lines.
func (s *CartRepositoryStub) Total(ctx context.Context, userID int64) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	var total int64
	for _, line := range s.Lines[userID] {
		total += line.LineTotal()
	}
	return total, nil
}

// PendingRepositoryStub allows tests to customize pending queue behaviour.
type PendingRepositoryStub struct {
	CreateFn  func(context.Context, int64, string) (*model.PendingOrder, error)
	GetFn     func(context.Context, int64) (*model.PendingOrder, error)
	ListFn    func(context.Context) ([]model.PendingOrder, error)
	ApproveFn func(context.Context, int64) ([]model.Order, error)
	DeclineFn func(context.Context, int64) (*model.PendingOrder, error)

	Pendings []model.PendingOrder
	Approved []int64
	Declined []int64
}

// CreateFromCart delegates to the override or returns a minimal snapshot.
func (s *PendingRepositoryStub) CreateFromCart(ctx context.Context, userID int64, handle string) (*model.PendingOrder, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, handle)
	}
	return &model.PendingOrder{ID: 1, UserID: userID, Handle: handle}, nil
}

// Get returns matched snapshot either via override or stored slice.
func (s *PendingRepositoryStub) Get(ctx context.Context, id int64) (*model.PendingOrder, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	for _, p := range s.Pendings {
		if p.ID == id {
			pending := p
			return &pending, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns the configured queue.
func (s *PendingRepositoryStub) List(ctx context.Context) ([]model.PendingOrder, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Pendings, nil
}

// Approve records the call and promotes snapshot lines into orders.
func (s *PendingRepositoryStub) Approve(ctx context.Context, id int64) ([]model.Order, error) {
	s.Approved = append(s.Approved, id)
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, id)
	}
	pending, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(pending.Lines))
	for i, line := range pending.Lines {
		orders = append(orders, model.Order{
			ID:        int64(i + 1),
			UserID:    pending.UserID,
			Handle:    pending.Handle,
			Item:      line.Item,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
			Status:    model.OrderStatusProcessing,
		})
	}
	return orders, nil
}

// Decline records the call and returns the removed snapshot.
func (s *PendingRepositoryStub) Decline(ctx context.Context, id int64) (*model.PendingOrder, error) {
	s.Declined = append(s.Declined, id)
	if s.DeclineFn != nil {
		return s.DeclineFn(ctx, id)
	}
	return s.Get(ctx, id)
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize ledger behaviour.
type OrderRepositoryStub struct {
	GetFn          func(context.Context, int64) (*model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	DeleteFn       func(context.Context, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	ListRecentFn   func(context.Context, int, bool) ([]model.Order, error)

	Orders      []model.Order
	StatusCalls []OrderStatusCall
	Deleted     []int64
}

// Get returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus records the call and applies the transition guard.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: orderID, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() && order.Status != status {
		return nil, domainErrors.ErrInvalidStatus
	}
	order.Status = status
	return order, nil
}

// Delete records the call and returns the removed order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, orderID int64) (*model.Order, error) {
	s.Deleted = append(s.Deleted, orderID)
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, orderID)
	}
	return s.Get(ctx, orderID)
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListRecent returns orders honouring the delivered filter.
func (s *OrderRepositoryStub) ListRecent(ctx context.Context, limit int, includeDelivered bool) ([]model.Order, error) {
	if s.ListRecentFn != nil {
		return s.ListRecentFn(ctx, limit, includeDelivered)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if !includeDelivered && o.Status == model.OrderStatusDelivered {
			continue
		}
		out = append(out, o)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// SubscriptionRepositoryStub stores the opt-in list in-memory.
type SubscriptionRepositoryStub struct {
	SubscribeFn   func(context.Context, int64, string) error
	UnsubscribeFn func(context.Context, int64, string) error

	Subscribers []model.Subscriber
	Removed     []model.Unsubscription
	Err         error
}

// Subscribe upserts the subscriber.
func (s *SubscriptionRepositoryStub) Subscribe(ctx context.Context, userID int64, handle string) error {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(ctx, userID, handle)
	}
	if s.Err != nil {
		return s.Err
	}
	for i, sub := range s.Subscribers {
		if sub.UserID == userID {
			s.Subscribers[i].Handle = handle
			return nil
		}
	}
	s.Subscribers = append(s.Subscribers, model.Subscriber{UserID: userID, Handle: handle})
	return nil
}

// Unsubscribe removes the subscriber and logs the event.
func (s *SubscriptionRepositoryStub) Unsubscribe(ctx context.Context, userID int64, handle string) error {
	if s.UnsubscribeFn != nil {
		return s.UnsubscribeFn(ctx, userID, handle)
	}
	if s.Err != nil {
		return s.Err
	}
	for i, sub := range s.Subscribers {
		if sub.UserID == userID {
			s.Subscribers = append(s.Subscribers[:i], s.Subscribers[i+1:]...)
			break
		}
	}
	s.Removed = append(s.Removed, model.Unsubscription{UserID: userID, Handle: handle})
	return nil
}

// List returns current subscribers.
func (s *SubscriptionRepositoryStub) List(ctx context.Context) ([]model.Subscriber, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Subscribers, nil
}

// Unsubscriptions returns logged opt-outs.
func (s *SubscriptionRepositoryStub) Unsubscriptions(ctx context.Context, limit int) ([]model.Unsubscription, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if limit > 0 && len(s.Removed) > limit {
		return s.Removed[:limit], nil
	}
	return s.Removed, nil
}

// ActivityCall records one RecordActivity invocation.
type ActivityCall struct {
	UserID int64
	Handle string
	Action string
}

// AuditRepositoryStub records audit writes for assertions.
type AuditRepositoryStub struct {
	ActivityFn func(context.Context, int64, string, string) error
	ReferralFn func(context.Context, int64, string, string) (bool, error)

	Activities []ActivityCall
	Refs []model.Referral
	Err        error
}

// RecordActivity stores the call.
func (s *AuditRepositoryStub) RecordActivity(ctx context.Context, userID int64, handle, action string) error {
	s.Activities = append(s.Activities, ActivityCall{UserID: userID, Handle: handle, Action: action})
	if s.ActivityFn != nil {
		return s.ActivityFn(ctx, userID, handle, action)
	}
	return s.Err
}

// RecordReferral stores first-seen referrals only.
func (s *AuditRepositoryStub) RecordReferral(ctx context.Context, userID int64, handle, source string) (bool, error) {
	if s.ReferralFn != nil {
		return s.ReferralFn(ctx, userID, handle, source)
	}
	if s.Err != nil {
		return false, s.Err
	}
	for _, r := range s.Refs {
		if r.UserID == userID {
			return false, nil
		}
	}
	s.Refs = append(s.Refs, model.Referral{UserID: userID, Handle: handle, Source: source})
	return true, nil
}

// Referrals returns stored referrals.
func (s *AuditRepositoryStub) Referrals(ctx context.Context) ([]model.Referral, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Refs, nil
}

// FactoryStub bundles repository stubs behind the factory contract.
type FactoryStub struct {
	Cart         *CartRepositoryStub
	Pending      *PendingRepositoryStub
	Order        *OrderRepositoryStub
	Subscription *SubscriptionRepositoryStub
	AuditRepo    *AuditRepositoryStub
}

// NewFactoryStub constructs a factory with fresh stubs.
func NewFactoryStub() *FactoryStub {
	return &FactoryStub{
		Cart:         NewCartRepositoryStub(),
		Pending:      &PendingRepositoryStub{},
		Order:        &OrderRepositoryStub{},
		Subscription: &SubscriptionRepositoryStub{},
		AuditRepo:    &AuditRepositoryStub{},
	}
}

// Carts returns the cart stub.
func (f *FactoryStub) Carts() repository.CartRepository { return f.Cart }

// Pendings returns the pending queue stub.
func (f *FactoryStub) Pendings() repository.PendingOrderRepository { return f.Pending }

// Orders returns the ledger stub.
func (f *FactoryStub) Orders() repository.OrderRepository { return f.Order }

// Subscriptions returns the opt-in stub.
func (f *FactoryStub) Subscriptions() repository.SubscriptionRepository { return f.Subscription }

// Audit returns the audit stub.
func (f *FactoryStub) Audit() repository.AuditRepository { return f.AuditRepo }
