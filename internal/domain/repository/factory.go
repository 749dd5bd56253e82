package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Carts() CartRepository
	Pendings() PendingOrderRepository
	Orders() OrderRepository
	Subscriptions() SubscriptionRepository
	Audit() AuditRepository
}
