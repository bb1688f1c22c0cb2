package models

// Product meta keys read by the export.
const (
	MetaKeyWholesalePrice = "wcwp_wholesale"
	MetaKeyBarcode        = "_global_unique_id"
)

// Product is the catalog snapshot an export row is built from.
// RegularPrice stays a string so stored price representations pass
// through unchanged (no rounding, no currency formatting).
type Product struct {
	ID           int64  `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	RegularPrice string `json:"regularPrice"`
}
