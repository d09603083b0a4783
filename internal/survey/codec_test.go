package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTripPreservesOrder(t *testing.T) {
	original := []string{"data_privacy", "anti_bribery", "code_of_conduct", "anti_bribery"}
	encoded, err := EncodeStringList(original)
	require.NoError(t, err)

	decoded, err := DecodeStringList(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestStringListNilAndEmpty(t *testing.T) {
	encoded, err := EncodeStringList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)

	decoded, err := DecodeStringList("")
	require.NoError(t, err)
	assert.Equal(t, []string{}, decoded)

	decoded, err = DecodeStringList("null")
	require.NoError(t, err)
	assert.Equal(t, []string{}, decoded)
}

func TestDecodeStringListRejectsGarbage(t *testing.T) {
	_, err := DecodeStringList("{not json")
	assert.Error(t, err)
}

func TestAwarenessRoundTrip(t *testing.T) {
	original := map[string]int{}
	for i, area := range PolicyAreas {
		original[area] = i%5 + 1
	}
	encoded, err := EncodeAwareness(original)
	require.NoError(t, err)

	decoded, err := DecodeAwareness(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
