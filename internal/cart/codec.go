package cart

import (
	"encoding/json"
	"fmt"
)

// Encode serializes the cart as a JSON array. A nil cart encodes as [].
func Encode(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return b, nil
}

// Decode parses a persisted cart. Entries are returned as stored; see Sanitize.
func Decode(b []byte) (Cart, error) {
	var c Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if c == nil {
		return Cart{}, nil
	}
	return c, nil
}

// Sanitize drops entries with an amount below 1 and repeated ids, keeping the
// first occurrence. The dropped entries are returned in their original order.
func (c Cart) Sanitize() (Cart, []Product) {
	kept := make(Cart, 0, len(c))
	var dropped []Product
	seen := make(map[int64]struct{}, len(c))
	for _, p := range c {
		if _, dup := seen[p.ID]; dup || p.Amount < 1 {
			dropped = append(dropped, p)
			continue
		}
		seen[p.ID] = struct{}{}
		kept = append(kept, p)
	}
	return kept, dropped
}
