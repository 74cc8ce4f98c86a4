package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/document"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	store, err := Open(context.Background(), Config{File: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Latest(ctx, "sac")
	require.True(t, errors.Is(err, ErrNotFound))

	first := time.Date(2026, 1, 27, 9, 0, 0, 0, time.UTC)
	firstID, err := store.Record(ctx, Run{
		StartedAt:  first,
		FinishedAt: first.Add(time.Second),
		Results: []Result{
			{Vendor: "sac", Document: document.Document{
				Location: "SAC",
				Date:     "2026-01-27",
				Status:   document.StatusPartialError,
				Message:  "1 of 9 stalls did not return a menu.",
				Sections: []document.Section{{Section: "Flame", Items: []string{"Wings", "Fries"}}},
			}},
			{Vendor: "dental-cafe", Document: document.Document{
				Location: "Dental Café",
				Date:     "2026-01-27",
				Status:   document.StatusClosed,
				Message:  "Closed for Winter Break",
			}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, firstID)

	second := first.Add(24 * time.Hour)
	secondID, err := store.Record(ctx, Run{
		StartedAt:  second,
		FinishedAt: second.Add(time.Second),
		Results: []Result{
			{Vendor: "sac", Document: document.Document{
				Location: "SAC",
				Date:     "2026-01-28",
				Status:   document.StatusOK,
				Message:  "Menu fetched.",
			}},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, firstID, secondID)

	latest, err := store.Latest(ctx, "sac")
	require.NoError(t, err)
	require.Equal(t, secondID, latest.RunID)
	require.Equal(t, document.StatusOK, latest.Status)
	require.Equal(t, "2026-01-28", latest.Date)
	require.Equal(t, second.Add(time.Second).Unix(), latest.RecordedAt.Unix())

	history, err := store.History(ctx, "sac", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, secondID, history[0].RunID)
	require.Equal(t, firstID, history[1].RunID)
	require.Equal(t, 2, history[1].ItemCount)
	require.Contains(t, history[1].Document, `"section": "Flame"`)

	all, err := store.History(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)

	limited, err := store.History(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "sac", limited[0].Vendor)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "archive.db")

	store, err := Open(context.Background(), Config{File: path})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// reopening an existing database keeps the schema
	store, err = Open(context.Background(), Config{File: path})
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestOpenRequiresTarget(t *testing.T) {
	require.False(t, Config{}.Enabled())
	_, err := Open(context.Background(), Config{})
	require.Error(t, err)
}
