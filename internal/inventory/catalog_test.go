package inventory

import (
	"context"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `{
  "products": [
    {"id": 2, "title": "Tênis VR Caminhada Confortável", "price": 139.9, "image": "https://cdn.test/2.jpg"},
    {"id": 1, "title": "Tênis de Caminhada Leve Confortável", "price": 179.9, "image": "https://cdn.test/1.jpg"}
  ],
  "stock": [
    {"id": 1, "amount": 3},
    {"id": 2, "amount": 5}
  ]
}`

func TestLoadSeedAndLookups(t *testing.T) {
	seed, err := LoadSeed(strings.NewReader(seedJSON))
	require.NoError(t, err)

	catalog := NewCatalog(seed)
	ctx := context.Background()

	stock, err := catalog.GetStock(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, stock.Amount)

	product, err := catalog.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("179.9")))

	products := catalog.Products()
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Len(t, catalog.Stocks(), 2)
}

func TestCatalogMissingRecords(t *testing.T) {
	catalog := NewCatalog(Seed{})
	ctx := context.Background()

	_, err := catalog.GetStock(ctx, 42)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	_, err = catalog.GetProduct(ctx, 42)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestCatalogMutators(t *testing.T) {
	catalog := NewCatalog(Seed{})
	catalog.PutProduct(Product{ID: 9, Title: "Shoe"})
	catalog.SetStock(9, -4)

	stock, err := catalog.GetStock(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.Amount)

	catalog.SetStock(9, 2)
	stock, err = catalog.GetStock(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 2, stock.Amount)
}

func TestCatalogCancelledContext(t *testing.T) {
	catalog := NewCatalog(Seed{Stock: []Stock{{ID: 1, Amount: 1}}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.GetStock(ctx, 1)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
}

func TestLoadSeedRejectsGarbage(t *testing.T) {
	_, err := LoadSeed(strings.NewReader("{"))
	assert.Error(t, err)
}
