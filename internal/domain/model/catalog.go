package model

// CatalogItem describes a purchasable souvenir. Items are defined at
// deployment time and never change at runtime; prices are in kopecks.
type CatalogItem struct {
	Name   string
	Price  int64
	Photos []string
}
