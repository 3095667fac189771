package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/rocketshoes-cart/internal/inventory"
	"github.com/angelmondragon/rocketshoes-cart/internal/notifications"
	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
	"github.com/angelmondragon/rocketshoes-cart/pkg/metrics"
)

// DefaultStorageKey is the key the cart is persisted under.
const DefaultStorageKey = "@RocketShoes:cart"

// Inventory answers stock and catalog lookups.
type Inventory interface {
	GetStock(ctx context.Context, productID int64) (inventory.Stock, error)
	GetProduct(ctx context.Context, productID int64) (inventory.Product, error)
}

// Store is a byte-oriented key/value store. ok is false when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Notifier receives user-facing failure text.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// UpdateAmountInput sets the absolute quantity of a product already in the cart.
type UpdateAmountInput struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

// Manager owns the cart. Every mutation validates against inventory, persists
// the full cart, and only then replaces the in-memory snapshot.
type Manager struct {
	inventory Inventory
	store     Store
	notifier  Notifier
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
	localizer *notifications.Localizer
	key       string
	now       func() time.Time

	mu   sync.Mutex
	cart Cart
}

// Option configures optional Manager behavior.
type Option func(*Manager)

func WithLogger(logg *logger.Logger) Option {
	return func(m *Manager) {
		if logg != nil {
			m.logg = logg
		}
	}
}

func WithMetrics(cm *metrics.CartMetrics) Option {
	return func(m *Manager) {
		m.metrics = cm
	}
}

func WithLocalizer(l *notifications.Localizer) Option {
	return func(m *Manager) {
		if l != nil {
			m.localizer = l
		}
	}
}

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// NewManager loads the persisted cart. A missing, unreadable or corrupt value
// starts an empty cart. Entries with an amount below 1 or a repeated id are
// dropped; stored amounts are not revalidated against inventory.
func NewManager(ctx context.Context, inv Inventory, store Store, notifier Notifier, opts ...Option) (*Manager, error) {
	if inv == nil {
		return nil, fmt.Errorf("inventory required")
	}
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}

	m := &Manager{
		inventory: inv,
		store:     store,
		notifier:  notifier,
		logg:      logger.Nop(),
		localizer: notifications.NewLocalizer(""),
		key:       DefaultStorageKey,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	m.cart = m.load(ctx)
	m.metrics.SetItems(len(m.cart))
	return m, nil
}

func (m *Manager) load(ctx context.Context) Cart {
	ctx = m.logg.WithField(ctx, "storage_key", m.key)

	raw, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "cart.load.read_failed")
		return Cart{}
	}
	if !ok {
		return Cart{}
	}

	c, err := Decode(raw)
	if err != nil {
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "cart.load.decode_failed")
		return Cart{}
	}

	c, dropped := c.Sanitize()
	if len(dropped) > 0 {
		ids := make([]int64, 0, len(dropped))
		for _, p := range dropped {
			ids = append(ids, p.ID)
		}
		m.logg.Warn(m.logg.WithField(ctx, "dropped_product_ids", ids), "cart.load.dropped_entries")
	}

	m.logg.Info(m.logg.WithField(ctx, "products", len(c)), "cart.loaded")
	return c
}

// Cart returns a copy of the current snapshot.
func (m *Manager) Cart() Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

// AddProduct increments productID by one, fetching the catalog record on first add.
func (m *Manager) AddProduct(ctx context.Context, productID int64) error {
	return m.run(ctx, OpAddProduct, productID, func(ctx context.Context) *failure {
		stock, err := m.inventory.GetStock(ctx, productID)
		if err != nil {
			return generic(err)
		}

		next := m.cart.Clone()
		idx := next.IndexOf(productID)
		amount := 1
		if idx >= 0 {
			amount = next[idx].Amount + 1
		}
		if amount > stock.Amount {
			return outOfStock(stock.Amount, amount)
		}

		if idx >= 0 {
			next[idx].Amount = amount
		} else {
			product, err := m.inventory.GetProduct(ctx, productID)
			if err != nil {
				return generic(err)
			}
			if product.ID != 0 && product.ID != productID {
				return generic(fmt.Errorf("%w: requested %d, got %d", ErrProductMismatch, productID, product.ID))
			}
			next = append(next, newProduct(productID, product, amount))
		}
		return m.commit(ctx, next)
	})
}

// RemoveProduct drops productID from the cart. No inventory call is made.
func (m *Manager) RemoveProduct(ctx context.Context, productID int64) error {
	return m.run(ctx, OpRemoveProduct, productID, func(ctx context.Context) *failure {
		next := m.cart.Clone()
		idx := next.IndexOf(productID)
		if idx < 0 {
			return generic(ErrProductNotFound)
		}
		next = append(next[:idx], next[idx+1:]...)
		return m.commit(ctx, next)
	})
}

// UpdateProductAmount sets the absolute quantity of a product already in the cart.
func (m *Manager) UpdateProductAmount(ctx context.Context, in UpdateAmountInput) error {
	return m.run(ctx, OpUpdateProductAmount, in.ProductID, func(ctx context.Context) *failure {
		if in.Amount <= 0 {
			return generic(ErrInvalidAmount)
		}

		next := m.cart.Clone()
		idx := next.IndexOf(in.ProductID)
		if idx < 0 {
			return notInCart()
		}

		stock, err := m.inventory.GetStock(ctx, in.ProductID)
		if err != nil {
			return generic(err)
		}
		if in.Amount > stock.Amount {
			return outOfStock(stock.Amount, in.Amount)
		}

		next[idx].Amount = in.Amount
		return m.commit(ctx, next)
	})
}

// commit persists next and swaps it in. A failed write leaves the snapshot untouched.
func (m *Manager) commit(ctx context.Context, next Cart) *failure {
	raw, err := Encode(next)
	if err != nil {
		return generic(err)
	}
	if err := m.store.Set(ctx, m.key, raw); err != nil {
		return generic(fmt.Errorf("persist cart: %w", err))
	}
	m.cart = next
	return nil
}

// run serializes operations, converts panics into the generic failure, and
// reports every failure to the logger, the notifier and the metrics.
func (m *Manager) run(ctx context.Context, op string, productID int64, fn func(ctx context.Context) *failure) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = m.logg.WithProductID(m.logg.WithOperation(ctx, op), productID)

	m.mu.Lock()
	defer m.mu.Unlock()

	start := m.now()
	f := m.guard(ctx, fn)
	elapsed := m.now().Sub(start)

	if f == nil {
		m.metrics.Observe(op, "ok", elapsed)
		m.metrics.SetItems(len(m.cart))
		return nil
	}

	text := m.localizer.Text(messageFor(op, f.code))
	err := pkgerrors.Wrap(f.code, f.cause, text).WithDetails(details(op, productID, f))

	m.metrics.Observe(op, string(f.code), elapsed)
	m.logg.Warn(m.logg.WithFields(ctx, map[string]any{
		"error_code": string(f.code),
		"error":      f.cause.Error(),
	}), "cart.operation.failed")
	m.notify(ctx, text)
	return err
}

func (m *Manager) guard(ctx context.Context, fn func(ctx context.Context) *failure) (f *failure) {
	defer func() {
		if r := recover(); r != nil {
			f = generic(fmt.Errorf("panic: %v", r))
		}
	}()
	if err := ctx.Err(); err != nil {
		return generic(err)
	}
	return fn(ctx)
}

func (m *Manager) notify(ctx context.Context, text string) {
	defer func() {
		if r := recover(); r != nil {
			m.logg.Warn(m.logg.WithField(ctx, "panic", fmt.Sprint(r)), "cart.notify.panicked")
		}
	}()
	m.notifier.Notify(ctx, text)
}

func details(op string, productID int64, f *failure) map[string]any {
	d := map[string]any{
		"op":        op,
		"productId": productID,
	}
	var se stockError
	if errors.As(f.cause, &se) {
		d["stock"] = se.stock
		d["requested"] = se.requested
	}
	return d
}
