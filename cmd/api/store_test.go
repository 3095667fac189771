package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/rocketshoes-cart/pkg/config"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestResourcesCloseInReverseAndCombinesErrors(t *testing.T) {
	var order []int
	res := &resources{}
	res.add(closerFunc(func() error { order = append(order, 1); return errors.New("first") }))
	res.add(closerFunc(func() error { order = append(order, 2); return errors.New("second") }))

	err := res.Close()
	require.Error(t, err)
	assert.Equal(t, []int{2, 1}, order)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestOpenStoreMemory(t *testing.T) {
	res, err := openStore(context.Background(), &config.Config{}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, res.store.Ping(context.Background()))
	require.NoError(t, res.Close())
}

func TestOpenStoreSQLiteMigratesAndRoundTrips(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageSQLite},
		DB: config.DBConfig{
			SQLitePath:  filepath.Join(t.TempDir(), "cart.db"),
			AutoMigrate: true,
		},
	}
	ctx := context.Background()

	res, err := openStore(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Close() })

	require.NoError(t, res.store.Set(ctx, "@RocketShoes:cart", []byte("[]")))
	v, ok, err := res.store.Get(ctx, "@RocketShoes:cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}, logger.Nop())
	assert.Error(t, err)
}
