package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/angelmondragon/rocketshoes-cart/internal/inventory"
	"github.com/shopspring/decimal"
)

type fakeInventory struct {
	mu         sync.Mutex
	stock      map[int64]int
	products   map[int64]inventory.Product
	stockErr   error
	productErr error
	panicOn    string
	stockCalls int
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		stock: map[int64]int{},
		products: map[int64]inventory.Product{
			1: {ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: decimal.RequireFromString("179.9"), Image: "https://cdn.test/1.jpg"},
			2: {ID: 2, Title: "Tênis VR Caminhada Confortável", Price: decimal.RequireFromString("139.9"), Image: "https://cdn.test/2.jpg"},
			7: {ID: 7, Title: "Tênis Running", Price: decimal.RequireFromString("219.9"), Image: "https://cdn.test/7.jpg"},
		},
	}
}

func (f *fakeInventory) GetStock(_ context.Context, productID int64) (inventory.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockCalls++
	if f.panicOn == "stock" {
		panic("inventory exploded")
	}
	if f.stockErr != nil {
		return inventory.Stock{}, f.stockErr
	}
	return inventory.Stock{ID: productID, Amount: f.stock[productID]}, nil
}

func (f *fakeInventory) GetProduct(_ context.Context, productID int64) (inventory.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.productErr != nil {
		return inventory.Product{}, f.productErr
	}
	p, ok := f.products[productID]
	if !ok {
		return inventory.Product{}, errors.New("product not found")
	}
	return p, nil
}

type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	setErr  error
	setHits int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.setHits++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStore) raw(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
