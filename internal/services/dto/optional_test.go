package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_ThreeStates(t *testing.T) {
	var req UpdateBasicProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"fullName":"Jane","experienceLevel":null,"cityId":4}`), &req))

	assert.True(t, req.FullName.HasValue())
	assert.Equal(t, "Jane", req.FullName.Value)

	assert.True(t, req.ExperienceLevel.Set)
	assert.True(t, req.ExperienceLevel.Null)
	assert.Nil(t, req.ExperienceLevel.Ptr())

	assert.False(t, req.Gender.Set)

	city := req.PreferredCityID.Or(req.CityID)
	require.True(t, city.HasValue())
	assert.Equal(t, uint(4), city.Value)
}

func TestOptional_Marshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
	}{A: Some(3), B: Null[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null}`, string(out))
}

func TestNewPaged_HasNext(t *testing.T) {
	p := NewPaged([]int{1, 2, 3, 4, 5}, 1, 5, 12)
	assert.True(t, p.HasNext)
	assert.Equal(t, 3, p.Pagination.TotalPages)

	last := NewPaged([]int{11, 12}, 3, 5, 12)
	assert.False(t, last.HasNext)

	empty := NewPaged[int](nil, 1, 10, 0)
	assert.NotNil(t, empty.Jobs)
	assert.False(t, empty.HasNext)
	assert.Equal(t, 0, empty.Pagination.TotalPages)
}
