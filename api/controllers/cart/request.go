package cart

// AddItemRequest is the body of POST /api/v1/cart/items.
type AddItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
}

// UpdateAmountRequest is the body of PATCH /api/v1/cart/items/{productId}.
// Amount is a pointer so that 0 reaches the cart and is rejected there.
type UpdateAmountRequest struct {
	Amount *int `json:"amount" validate:"required"`
}
