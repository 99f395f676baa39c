package domain

import (
	"math"
	"strings"
)

// AnalyticsOverview summarizes the gifting catalog of a shop
type AnalyticsOverview struct {
	TotalProducts        int `json:"totalProducts"`
	ActiveProducts       int `json:"activeProducts"`
	CustomizableProducts int `json:"customizableProducts"`
	TotalInventory       int `json:"totalInventory"`
	CardProducts         int `json:"cardProducts"`
	RibbonProducts       int `json:"ribbonProducts"`
	// Rates are whole percentages of TotalProducts, 0 for an empty catalog
	ActivationRate    int `json:"activationRate"`
	CustomizationRate int `json:"customizationRate"`
}

// NewAnalyticsOverview aggregates products. A product without a product_type
// metafield counts as a card.
func NewAnalyticsOverview(products []Product) *AnalyticsOverview {
	o := &AnalyticsOverview{TotalProducts: len(products)}
	for i := range products {
		p := &products[i]
		if strings.EqualFold(p.Status, "ACTIVE") {
			o.ActiveProducts++
		}
		settings := p.GiftingSettings
		if settings.Customizable != nil && *settings.Customizable == "true" {
			o.CustomizableProducts++
		}
		o.TotalInventory += p.TotalInventory

		productType := DefaultProductType
		if settings.ProductType != nil && *settings.ProductType != "" {
			productType = *settings.ProductType
		}
		if productType == ProductTypeRibbon {
			o.RibbonProducts++
		} else {
			o.CardProducts++
		}
	}

	o.ActivationRate = percentOf(o.ActiveProducts, o.TotalProducts)
	o.CustomizationRate = percentOf(o.CustomizableProducts, o.TotalProducts)
	return o
}

func percentOf(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
