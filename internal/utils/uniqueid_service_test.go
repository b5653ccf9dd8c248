package utils_test

import (
	"strings"
	"testing"

	"taskhub-server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueID(t *testing.T) {
	id, err := utils.GenerateUniqueID(utils.PrefixTask)
	require.NoError(t, err)

	assert.Len(t, id, 13)
	assert.True(t, strings.HasPrefix(id, utils.PrefixTask))
	assert.Equal(t, strings.ToUpper(id), id)

	// The two characters after the prefix are digits.
	for _, r := range id[2:4] {
		assert.True(t, r >= '0' && r <= '9', "expected digit, got %c", r)
	}
}

func TestGenerateUniqueID_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := utils.GenerateUniqueID(utils.PrefixUser)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id generated: %s", id)
		seen[id] = true
	}
}
