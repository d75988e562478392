package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionKey(t *testing.T) {
	a := PartitionKey("0f8fad5b-d9cb-469f-a165-70867728950e")
	b := PartitionKey("0f8fad5b-d9cb-469f-a165-70867728950e")
	c := PartitionKey("7c9e6679-7425-40de-944b-e07fc1f90ae7")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
	assert.NotContains(t, string(a), "0f8fad5b")
}

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one broker")
}
