// Package storetest builds a migrated in-memory store for tests.
package storetest

import (
	"testing"

	"github.com/Rakhulsr/go-petshop/app/configs"
	"github.com/Rakhulsr/go-petshop/app/models/migrations"
	"github.com/Rakhulsr/go-petshop/app/store"
	"github.com/Rakhulsr/go-petshop/app/utils/pubsub"
	"github.com/stretchr/testify/require"
)

func New(t testing.TB) *store.Store {
	t.Helper()

	db, err := configs.OpenSQLite(":memory:", "silent")
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	st := store.New(db, pubsub.NewHub())
	t.Cleanup(func() { _ = st.Close() })
	return st
}
