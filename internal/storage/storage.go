package storage

import "context"

// Key names one persisted collection. The stored value is the JSON
// serialization of the in-memory collection; most-recent-write-wins.
type Key string

const (
	KeyUsers           Key = "users"
	KeyEmployees       Key = "employees"
	KeyProducts        Key = "products"
	KeySuppliers       Key = "suppliers"
	KeyWorkshops       Key = "workshops"
	KeyOrders          Key = "orders"
	KeyQuotes          Key = "quotes"
	KeyReturns         Key = "returns"
	KeyBlogPosts       Key = "blogPosts"
	KeyRolePermissions Key = "rolePermissions"
	KeyCurrentUser     Key = "currentUser"
	KeyNotifications   Key = "notifications"
	KeyActivityLog     Key = "activityLog"
)

// AllKeys lists every collection key in hydration order.
func AllKeys() []Key {
	return []Key{
		KeyUsers, KeyEmployees, KeyProducts, KeySuppliers, KeyWorkshops,
		KeyOrders, KeyQuotes, KeyReturns, KeyBlogPosts, KeyRolePermissions,
		KeyCurrentUser, KeyNotifications, KeyActivityLog,
	}
}

// Repository is the durable key-value boundary the store persists through.
// Save is best-effort from the store's point of view: a failed write is
// logged by the caller and never rolls back the in-memory mutation.
type Repository interface {
	Load(ctx context.Context, key Key) (doc []byte, ok bool, err error)
	Save(ctx context.Context, key Key, doc []byte) error
	Close() error
}
