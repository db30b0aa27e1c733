package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Metadata(t *testing.T) {
	p := New(2, 10, 25)
	require.Equal(t, 3, p.Pages)
	require.Equal(t, 10, p.Offset)
	require.True(t, p.HasNext)
	require.True(t, p.HasPrev)
}

func TestNew_Clamping(t *testing.T) {
	p := New(0, 1000, 5)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 100, p.Limit)
	require.Equal(t, 1, p.Pages)
	require.False(t, p.HasNext)
	require.False(t, p.HasPrev)
}

func TestFromQuery(t *testing.T) {
	page, limit := FromQuery("3", "20")
	require.Equal(t, 3, page)
	require.Equal(t, 20, limit)

	page, limit = FromQuery("junk", "")
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)
}
