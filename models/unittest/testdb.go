// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package unittest

import (
	"context"
	"path/filepath"
	"testing"

	"code.kwd.dev/wordfilter/models/db"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PrepareTestDatabase creates a fresh sqlite database in a temp dir, syncs all registered
// models into it and makes it the default engine until the test finishes.
func PrepareTestDatabase(t testing.TB) {
	t.Helper()
	dir := t.TempDir()

	resetDatabase := test.MockVariableValue(&setting.Database)
	setting.Database.Type = "sqlite3"
	setting.Database.Path = filepath.Join(dir, "wordfilter-test.db")
	setting.Database.Timeout = 500
	setting.Database.SQLiteJournalMode = ""
	setting.Database.LogSQL = false

	eng, err := db.NewEngine()
	require.NoError(t, err)
	db.SetDefaultEngine(context.Background(), eng)
	t.Cleanup(func() {
		db.UnsetDefaultEngine()
		resetDatabase()
	})
	require.NoError(t, db.SyncAllTables())
}

// AssertExistsAndLoadBean assert that a bean exists and load it from the test database
func AssertExistsAndLoadBean[T any](t testing.TB, bean T) T {
	t.Helper()
	has, err := db.GetByBean(db.DefaultContext, bean)
	require.NoError(t, err)
	require.True(t, has, "Expected to find %+v (of type %T), but did not", bean, bean)
	return bean
}

// AssertNotExistsBean assert that a bean does not exist in the test database
func AssertNotExistsBean(t testing.TB, bean any) {
	t.Helper()
	has, err := db.GetByBean(db.DefaultContext, bean)
	assert.NoError(t, err)
	assert.False(t, has)
}

// AssertCount assert the count of a bean
func AssertCount(t testing.TB, bean any, expected int64) {
	t.Helper()
	actual, err := db.CountByBean(db.DefaultContext, bean)
	assert.NoError(t, err)
	assert.Equal(t, expected, actual)
}
