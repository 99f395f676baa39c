package domain

import "context"

type contextKey string

const shopContextKey contextKey = "shop"

// WithShop returns a context carrying the authenticated shop domain
func WithShop(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, shopContextKey, shop)
}

// GetShopFromContext returns the shop domain set by WithShop, or ""
func GetShopFromContext(ctx context.Context) string {
	if shop, ok := ctx.Value(shopContextKey).(string); ok {
		return shop
	}
	return ""
}
