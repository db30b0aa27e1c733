package tours

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourMarshalJSON(t *testing.T) {
	tour := Tour{
		Name:       "The Forest Hiker",
		Duration:   14,
		SecretTour: true,
	}

	data, err := json.Marshal(tour)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, float64(2), out["durationWeeks"])
	assert.NotContains(t, out, "secretTour")
	assert.NotContains(t, out, "createdAt")
}
