package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptionService_Suggest(t *testing.T) {
	svc := NewCaptionService()

	suggestions, err := svc.Suggest("sunset at the beach")
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	for _, s := range suggestions {
		assert.Contains(t, s, "sunset at the beach")
	}

	// Same topic, same suggestions: the stub is deterministic.
	again, err := svc.Suggest("sunset at the beach")
	require.NoError(t, err)
	assert.Equal(t, suggestions, again)

	_, err = svc.Suggest("   ")
	assert.Error(t, err)

	_, err = svc.Suggest(strings.Repeat("x", 201))
	assert.Error(t, err)
}
