package cart

import (
	"errors"

	"github.com/angelmondragon/rocketshoes-cart/internal/notifications"
	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
)

const (
	OpAddProduct          = "add_product"
	OpRemoveProduct       = "remove_product"
	OpUpdateProductAmount = "update_product_amount"
)

var (
	// ErrProductNotFound is the cause when remove targets a product absent from the cart.
	ErrProductNotFound = errors.New("product not found in cart")
	// ErrInvalidAmount is the cause when update asks for an amount below 1.
	ErrInvalidAmount = errors.New("amount must be at least 1")
	// ErrOutOfStock is the cause when the requested amount exceeds stock.
	ErrOutOfStock = errors.New("requested amount exceeds stock")
	// ErrNotInCart is the cause when update targets a product absent from the cart.
	ErrNotInCart = errors.New("product is not in the cart")
	// ErrProductMismatch is the cause when inventory answers with a different product.
	ErrProductMismatch = errors.New("inventory returned a different product")
)

type failure struct {
	code  pkgerrors.Code
	cause error
}

func outOfStock(stock, requested int) *failure {
	return &failure{code: pkgerrors.CodeOutOfStock, cause: stockError{stock: stock, requested: requested}}
}

func notInCart() *failure {
	return &failure{code: pkgerrors.CodeProductNotInCart, cause: ErrNotInCart}
}

func generic(cause error) *failure {
	return &failure{code: pkgerrors.CodeCartOperation, cause: cause}
}

type stockError struct {
	stock     int
	requested int
}

func (e stockError) Error() string { return ErrOutOfStock.Error() }

func (e stockError) Unwrap() error { return ErrOutOfStock }

// messageFor picks the user-facing notification for a failed operation.
func messageFor(op string, code pkgerrors.Code) notifications.Message {
	switch op {
	case OpAddProduct:
		if code == pkgerrors.CodeOutOfStock {
			return notifications.MessageOutOfStock
		}
		return notifications.MessageAddFailed
	case OpRemoveProduct:
		return notifications.MessageRemoveFailed
	default:
		switch code {
		case pkgerrors.CodeOutOfStock:
			return notifications.MessageOutOfStock
		case pkgerrors.CodeProductNotInCart:
			return notifications.MessageUpdateNotInCart
		default:
			return notifications.MessageUpdateAmountFailed
		}
	}
}
