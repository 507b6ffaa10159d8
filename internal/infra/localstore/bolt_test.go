package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forecasts.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	stored := solunar.Result{
		Date:         "2025-06-15",
		Timezone:     "UTC",
		Rating:       solunar.RatingGood,
		AverageScore: 61.5,
	}
	require.NoError(t, store.Set(ctx, "59.3300:18.0700:2025-06-15:UTC:hour", stored, 0))

	loaded, ok, err := store.Get(ctx, "59.3300:18.0700:2025-06-15:UTC:hour")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, stored.Date, loaded.Date)
	require.Equal(t, stored.Rating, loaded.Rating)
	require.Equal(t, stored.AverageScore, loaded.AverageScore)
}

func TestStoreOverwrite(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "forecasts.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", solunar.Result{Rating: solunar.RatingFair}, time.Hour))
	require.NoError(t, store.Set(ctx, "k", solunar.Result{Rating: solunar.RatingExcellent}, time.Hour))

	loaded, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, solunar.RatingExcellent, loaded.Rating)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecasts.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", solunar.Result{Date: "2025-06-15"}, 0))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2025-06-15", loaded.Date)
}
