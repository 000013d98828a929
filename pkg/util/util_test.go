package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironmentVariable(t *testing.T) {
	t.Setenv("RIDERSHIP_TEST_VALUE", "configured")

	env := GetEnvironmentVariables()

	assert.Equal(t, "configured", GetEnvironmentVariable(env, "RIDERSHIP_TEST_VALUE", "default"))
	assert.Equal(t, "default", GetEnvironmentVariable(env, "RIDERSHIP_TEST_MISSING", "default"))
}

func TestGetEnvironmentInt(t *testing.T) {
	env := map[string]string{"DB": "3", "BROKEN": "three"}

	value, err := GetEnvironmentInt(env, "DB", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, value)

	value, err = GetEnvironmentInt(env, "MISSING", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	_, err = GetEnvironmentInt(env, "BROKEN", 0)
	assert.Error(t, err)
}

func TestRemoveDuplicateStrings(t *testing.T) {
	result := RemoveDuplicateStrings([]string{"trips", "", "ridership", "trips", "revenue"}, []string{"ridership"})

	assert.Equal(t, []string{"trips", "revenue"}, result)
}
