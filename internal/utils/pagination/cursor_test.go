package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := Encode(Cursor{ID: "0190a3c4-msg", Unix: 1717232400123})
	require.NoError(t, err)

	c, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "0190a3c4-msg", c.ID)
	assert.Equal(t, int64(1717232400123), c.Unix)
	assert.False(t, c.IsZero())
}

func TestDecodeEdgeCases(t *testing.T) {
	c, err := Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	_, err = Decode("%%%")
	assert.EqualError(t, err, "invalid pagination token")

	assert.Equal(t, "", Deref(nil))
	s := "abc"
	assert.Equal(t, "abc", Deref(&s))
}
