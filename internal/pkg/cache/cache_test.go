package cache

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsCanonical(t *testing.T) {
	a := Key("media", url.Values{"type": {"news"}, "limit": {"3"}})
	b := Key("media", url.Values{"limit": {"3"}, "type": {"news"}})

	assert.Equal(t, a, b)
	assert.Equal(t, "content:media:limit=3&type=news", a)
	assert.Equal(t, "content:team:", Key("team", nil))
}

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}

	require.NoError(t, c.Set(ctx, "content:team:", []byte("[]")))
	_, hit, err := c.Get(ctx, "content:team:")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.InvalidateResource(ctx, "team"))
}
