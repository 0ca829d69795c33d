package formstore

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	data, err := fs.ReadFile(Migrations(), "00001_create_transaction_forms.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "-- +goose Down")
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS transaction_forms")
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(""))
	require.NotNil(t, nullableString("lease"))
	assert.Equal(t, "lease", *nullableString("lease"))
}
