// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"), maxEntries)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entryAt(input, kind string, at time.Time) Entry {
	return Entry{
		CreatedAt: at,
		Input:     input,
		Reduced:   input,
		Degree:    1,
		Kind:      kind,
		Solution:  "x = 0",
	}
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 0)

	stored, err := s.Record(ctx, Entry{
		Input:    "5 * X^0 + 4 * X^1 = 4 * X^0",
		Reduced:  "1 * X^0 + 4 * X^1 = 0",
		Degree:   1,
		Kind:     "linear",
		Solution: "x = -0.25",
	})
	require.NoError(t, err)
	require.Len(t, stored.ID, 36)
	require.False(t, stored.CreatedAt.IsZero())

	got, err := s.Get(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, stored.ID, got.ID)
	require.Equal(t, "1 * X^0 + 4 * X^1 = 0", got.Reduced)
	require.Equal(t, "x = -0.25", got.Solution)
	require.True(t, stored.CreatedAt.Equal(got.CreatedAt))

	byPrefix, err := s.Get(ctx, stored.ID[:8])
	require.NoError(t, err)
	require.Equal(t, stored.ID, byPrefix.ID)
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 0)

	_, err := s.Get(ctx, "deadbeef")
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Get(ctx, "%")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestGet_Ambiguous(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 0)

	now := time.Now()
	_, err := s.Record(ctx, Entry{ID: "abc-1", CreatedAt: now, Kind: "linear"})
	require.NoError(t, err)
	_, err = s.Record(ctx, Entry{ID: "abc-2", CreatedAt: now, Kind: "linear"})
	require.NoError(t, err)

	_, err = s.Get(ctx, "abc")
	require.True(t, errors.Is(err, ErrAmbiguous), "got %v", err)

	got, err := s.Get(ctx, "abc-2")
	require.NoError(t, err)
	require.Equal(t, "abc-2", got.ID)
}

func TestList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 0)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, in := range []string{"a", "b", "c"} {
		_, err := s.Record(ctx, entryAt(in, "linear", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "c", all[0].Input)
	require.Equal(t, "a", all[2].Input)

	two, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	require.Equal(t, "b", two[1].Input)
}

func TestRecord_Prunes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 2)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, in := range []string{"a", "b", "c", "d"} {
		_, err := s.Record(ctx, entryAt(in, "linear", base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "d", all[0].Input)
	require.Equal(t, "c", all[1].Input)
}

func TestStatsAndClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 0)

	empty, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, empty.Total)
	require.True(t, empty.First.IsZero())

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err = s.Record(ctx, entryAt("a", "linear", base))
	require.NoError(t, err)
	_, err = s.Record(ctx, entryAt("b", "complex", base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = s.Record(ctx, entryAt("c", "linear", base.Add(2*time.Hour)))
	require.NoError(t, err)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, st.Total)
	require.Equal(t, map[string]int{"linear": 2, "complex": 1}, st.ByKind)
	require.True(t, base.Equal(st.First))
	require.True(t, base.Add(2*time.Hour).Equal(st.Last))

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path, 0)
	require.NoError(t, err)
	stored, err := s.Record(ctx, entryAt("a", "linear", time.Now()))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, 0)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, "a", got.Input)
}
