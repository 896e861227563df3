package snapshotcache

import (
	"testing"
	"time"

	"github.com/filterspirit/filterspirit/autogen"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	snap := autogen.Snapshot{
		Currency: []autogen.Elem{{Name: "Chaos Orb", Price: autogen.Price{ChaosValue: 1}}},
	}
	meta := Metadata{LeagueName: "Standard", DataSource: "ninja", DownloadedAt: time.Now().Truncate(time.Second)}

	require.NoError(t, cache.Save(snap, meta, "v0.1.0"))

	got, gotMeta, ok, err := cache.Load("ninja", "Standard")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, snap, got)
	require.Equal(t, meta.LeagueName, gotMeta.LeagueName)

	list, err := cache.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestLoadMissingReturnsNotOK(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, ok, err := cache.Load("ninja", "Hardcore")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNormalizedKeyIgnoresCaseAndSpaces(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	meta := Metadata{LeagueName: "Settlers of Kalguur", DataSource: "watch", DownloadedAt: time.Now()}
	require.NoError(t, cache.Save(autogen.Empty(), meta, "v0.1.0"))

	_, _, ok, err := cache.Load("watch", "settlers of kalguur")
	require.NoError(t, err)
	require.True(t, ok)
}
