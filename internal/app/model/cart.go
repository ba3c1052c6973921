package model

import (
	"time"
)

// CartItem is one line of a session cart: a product plus the phone it was
// configured for. Lines are keyed by ProductID; re-adding the same product
// increments Quantity instead of appending a duplicate line.
type CartItem struct {
	ProductID uint     `json:"product_id"`
	Quantity  int      `json:"quantity"`
	BrandID   uint     `json:"brand_id"`
	ModelID   uint     `json:"model_id"`
	CaseType  CaseType `json:"case_type"`
}

// Cart is a session-scoped aggregate. It lives only in the session store
// (Redis with a TTL), mirroring the browser-session lifetime of the
// storefront cart; nothing is persisted to the catalog database.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FindItem returns the line for a product id, or nil.
func (c *Cart) FindItem(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
