package cart

import (
	"encoding/json"

	"github.com/angelmondragon/rocketshoes-cart/internal/inventory"
	"github.com/shopspring/decimal"
)

// Product is a catalog product plus the quantity held in the cart.
type Product struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

// MarshalJSON writes price as a JSON number, the shape the storefront persists.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain: plain(p), Price: json.Number(p.Price.String())})
}

// Cart is the ordered list of products. Ids are unique and every amount is at least 1.
type Cart []Product

// newProduct keys the entry by the requested id; inventory records are not
// trusted to carry it.
func newProduct(productID int64, p inventory.Product, amount int) Product {
	return Product{
		ID:     productID,
		Title:  p.Title,
		Price:  p.Price,
		Image:  p.Image,
		Amount: amount,
	}
}

// Clone returns a deep copy. Product holds only values, so copying the slice suffices.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// IndexOf returns the position of productID or -1.
func (c Cart) IndexOf(productID int64) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

// ItemCount sums the amounts of every entry.
func (c Cart) ItemCount() int {
	total := 0
	for _, p := range c {
		total += p.Amount
	}
	return total
}

// Subtotal is the sum of price*amount over every entry.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Amount))))
	}
	return total
}
