package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableID_DistinguishesAbsentFromNull(t *testing.T) {
	var absent UpdateStartupRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Aurora"}`), &absent))
	assert.False(t, absent.RegionID.Set)

	var cleared UpdateStartupRequest
	require.NoError(t, json.Unmarshal([]byte(`{"regionId":null}`), &cleared))
	assert.True(t, cleared.RegionID.Set)
	assert.Nil(t, cleared.RegionID.Value)

	var set UpdateEventRequest
	require.NoError(t, json.Unmarshal([]byte(`{"regionId":"abc"}`), &set))
	assert.True(t, set.RegionID.Set)
	require.NotNil(t, set.RegionID.Value)
	assert.Equal(t, "abc", *set.RegionID.Value)

	var wrongType UpdateNewsRequest
	assert.Error(t, json.Unmarshal([]byte(`{"regionId":42}`), &wrongType))
}
