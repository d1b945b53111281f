package domain

// Category partitions the menu into dishes and drinks.
type Category string

const (
	CategoryDish  Category = "dish"
	CategoryDrink Category = "drink"
)

// CatalogItem is a single orderable menu entry.
type CatalogItem struct {
	Name      string   `json:"name"`
	UnitPrice float64  `json:"unit_price"`
	Category  Category `json:"category"`
}

// Catalog is the fixed menu of the counter: dishes, drinks and the accepted
// payment methods. Built once at startup, read-only afterwards. Items keep
// their menu order so selections and receipts render deterministically.
type Catalog struct {
	items          []CatalogItem
	byName         map[string]CatalogItem
	paymentMethods []string
}

// NewCatalog builds a catalog from ordered item lists and payment methods.
func NewCatalog(dishes, drinks []CatalogItem, paymentMethods []string) *Catalog {
	c := &Catalog{
		byName:         make(map[string]CatalogItem, len(dishes)+len(drinks)),
		paymentMethods: paymentMethods,
	}
	for _, it := range dishes {
		it.Category = CategoryDish
		c.items = append(c.items, it)
		c.byName[it.Name] = it
	}
	for _, it := range drinks {
		it.Category = CategoryDrink
		c.items = append(c.items, it)
		c.byName[it.Name] = it
	}
	return c
}

// Lookup returns the catalog entry for name.
func (c *Catalog) Lookup(name string) (CatalogItem, error) {
	it, ok := c.byName[name]
	if !ok {
		return CatalogItem{}, ErrItemNotFound
	}
	return it, nil
}

// Items returns all entries in menu order (dishes first, then drinks).
func (c *Catalog) Items() []CatalogItem {
	out := make([]CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// PaymentMethods returns the accepted payment methods in display order.
func (c *Catalog) PaymentMethods() []string {
	out := make([]string, len(c.paymentMethods))
	copy(out, c.paymentMethods)
	return out
}

// AcceptsPayment reports whether method is one of the accepted payment methods.
func (c *Catalog) AcceptsPayment(method string) bool {
	for _, m := range c.paymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// DefaultCatalog returns the counter's standard menu.
func DefaultCatalog() *Catalog {
	dishes := []CatalogItem{
		{Name: "Tacos", UnitPrice: 15.0},
		{Name: "Quesadillas", UnitPrice: 22.0},
		{Name: "Torta", UnitPrice: 35.0},
		{Name: "Enchiladas", UnitPrice: 45.0},
		{Name: "Hamburguesa", UnitPrice: 55.0},
	}
	drinks := []CatalogItem{
		{Name: "Agua", UnitPrice: 10.0},
		{Name: "Refresco", UnitPrice: 18.0},
		{Name: "Cerveza", UnitPrice: 28.0},
		{Name: "Jugo", UnitPrice: 20.0},
		{Name: "Café", UnitPrice: 12.0},
	}
	payments := []string{"Tarjeta", "Efectivo", "Transferencia"}
	return NewCatalog(dishes, drinks, payments)
}
