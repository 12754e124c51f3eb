package cart

import (
	"fmt"
	"sync"

	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/shopspring/decimal"
)

// NoVariant is the key suffix for lines added without a variant selection.
const NoVariant = "no_variant"

// Line is one (product, variant) pairing with accumulated quantity and the
// unit price snapshotted at first add. TotalPrice and Key are computed on
// iteration, not stored.
type Line struct {
	Key         string          `json:"key"`
	ProductID   uint            `json:"product_id"`
	VariantID   *uint           `json:"variant_id"`
	Name        string          `json:"name"`
	VariantName string          `json:"variant_name"`
	Image       string          `json:"image"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Cart is an ordered mapping from composite line key to line item, owned by a
// single browsing session. Its whole public contract is Add, Remove, Items,
// TotalPrice, Len and Clear.
type Cart struct {
	mu    sync.Mutex
	keys  []string
	lines map[string]*Line
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// LineKey builds the composite key for a product plus optional variant.
func LineKey(productID uint, variantID *uint) string {
	if variantID == nil {
		return fmt.Sprintf("%d_%s", productID, NoVariant)
	}
	return fmt.Sprintf("%d_%d", productID, *variantID)
}

// Add accumulates quantity under the product+variant key. On first add the
// unit price is resolved once as product price plus variant extra; later
// catalog price changes never touch existing lines. Stock is not checked here.
func (c *Cart) Add(product models.Product, variant *models.ProductVariant, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var variantID *uint
	if variant != nil {
		// Copy: the line must not alias the caller's struct.
		id := variant.ID
		variantID = &id
	}
	key := LineKey(product.ID, variantID)

	line, ok := c.lines[key]
	if !ok {
		price := product.Price
		variantName := ""
		if variant != nil {
			price = price.Add(variant.PriceExtra)
			variantName = variant.Name
		}
		line = &Line{
			ProductID:   product.ID,
			VariantID:   variantID,
			Name:        product.Name,
			VariantName: variantName,
			Image:       product.Image,
			UnitPrice:   price,
			Quantity:    0,
		}
		c.lines[key] = line
		c.keys = append(c.keys, key)
	}
	line.Quantity += quantity
}

// Remove deletes the line for that exact key; unknown keys are a no-op.
func (c *Cart) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[key]; !ok {
		return
	}
	delete(c.lines, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Items returns the lines in insertion order, each annotated with its key and
// computed line total. The returned slice is a snapshot.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Line, 0, len(c.keys))
	for _, key := range c.keys {
		line := *c.lines[key]
		line.Key = key
		line.TotalPrice = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, line)
	}
	return items
}

// TotalPrice sums unit price times quantity across all lines, exactly.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Len is the sum of quantities, not the count of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys = nil
	c.lines = make(map[string]*Line)
}
