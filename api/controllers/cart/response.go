package cart

import (
	cartsvc "github.com/angelmondragon/rocketshoes-cart/internal/cart"
	"github.com/shopspring/decimal"
)

// CartView is the public cart snapshot.
type CartView struct {
	Items     []cartsvc.Product `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
}

func newCartView(c cartsvc.Cart) CartView {
	items := []cartsvc.Product(c)
	if items == nil {
		items = []cartsvc.Product{}
	}
	return CartView{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}
