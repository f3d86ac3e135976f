package catalog

// ProductDefaults carries the structural columns the store schema requires
// on every product row. None of these come from the feed; they are fixed
// properties of the target shop. Keeping them in one named value keeps the
// insert contract auditable and leaves ID, Barcode, and Price visually
// distinct from schema boilerplate.
type ProductDefaults struct {
	CategoryDefault   int
	ShopDefault       int
	TaxRulesGroup     int
	Quantity          int
	MinimalQuantity   int
	OutOfStock        int
	Active            bool
	Visibility        string
	Condition         string
	RedirectType      string
	AvailableForOrder bool
	ShowPrice         bool
	Indexed           bool
	Weight            float64
	Width             float64
	Height            float64
	Depth             float64
	PackStockType     int
	State             int
	ProductType       string
}

// DefaultProduct is merged into every create. The values mirror what the
// shop's back office writes for a plain, in-catalog, orderable product.
var DefaultProduct = ProductDefaults{
	CategoryDefault:   1,
	ShopDefault:       1,
	TaxRulesGroup:     1,
	Quantity:          0,
	MinimalQuantity:   1,
	OutOfStock:        2,
	Active:            true,
	Visibility:        "both",
	Condition:         "new",
	RedirectType:      "404",
	AvailableForOrder: true,
	ShowPrice:         true,
	Indexed:           true,
	PackStockType:     3,
	State:             1,
	ProductType:       "standard",
}
