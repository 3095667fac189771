package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
)

// Seed is the on-disk shape of the dev inventory database.
type Seed struct {
	Products []Product `json:"products"`
	Stock    []Stock   `json:"stock"`
}

// Catalog is an in-process inventory. It backs the dev stub server and tests.
type Catalog struct {
	mu       sync.RWMutex
	products map[int64]Product
	stock    map[int64]Stock
}

// NewCatalog builds a catalog from the given seed.
func NewCatalog(seed Seed) *Catalog {
	c := &Catalog{
		products: make(map[int64]Product, len(seed.Products)),
		stock:    make(map[int64]Stock, len(seed.Stock)),
	}
	for _, p := range seed.Products {
		c.products[p.ID] = p
	}
	for _, s := range seed.Stock {
		c.stock[s.ID] = s
	}
	return c
}

// LoadSeed decodes a seed document.
func LoadSeed(r io.Reader) (Seed, error) {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode inventory seed: %w", err)
	}
	return seed, nil
}

func (c *Catalog) GetStock(ctx context.Context, productID int64) (Stock, error) {
	if err := ctx.Err(); err != nil {
		return Stock{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stock lookup cancelled")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stock[productID]
	if !ok {
		return Stock{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("stock for product %d not found", productID))
	}
	return s, nil
}

func (c *Catalog) GetProduct(ctx context.Context, productID int64) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "product lookup cancelled")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[productID]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", productID))
	}
	return p, nil
}

// Products lists every product ordered by id.
func (c *Catalog) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stocks lists every stock record ordered by id.
func (c *Catalog) Stocks() []Stock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Stock, 0, len(c.stock))
	for _, s := range c.stock {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetStock overwrites the available amount for a product.
func (c *Catalog) SetStock(productID int64, amount int) {
	if amount < 0 {
		amount = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stock[productID] = Stock{ID: productID, Amount: amount}
}

// PutProduct inserts or replaces a catalog product.
func (c *Catalog) PutProduct(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}
