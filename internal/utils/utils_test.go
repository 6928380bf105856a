package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional_Unmarshal(t *testing.T) {
	var body struct {
		Parent  Optional[uint64] `json:"parent"`
		Project Optional[uint64] `json:"project"`
		Status  Optional[uint64] `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"parent": 3, "project": null}`), &body))

	require.True(t, body.Parent.Set)
	require.Equal(t, uint64(3), *body.Parent.Value)
	require.True(t, body.Project.Set)
	require.Nil(t, body.Project.Value)
	require.False(t, body.Status.Set)
}

func TestOptional_Apply(t *testing.T) {
	current := uint64(5)
	dst := &current

	Optional[uint64]{}.Apply(&dst)
	require.Equal(t, uint64(5), *dst)

	Null[uint64]().Apply(&dst)
	require.Nil(t, dst)

	Some[uint64](9).Apply(&dst)
	require.Equal(t, uint64(9), *dst)
}

func TestNewPaginationParams(t *testing.T) {
	p := NewPaginationParams(0, 1000)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.Limit)
	require.Equal(t, 0, p.Offset)

	p = NewPaginationParams(3, 10)
	require.Equal(t, 20, p.Offset)
	require.Equal(t, PaginationResponse{Page: 3, Limit: 10, Total: 42}, p.Response(42))
}
