package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRankEmptyQueryKeepsOrder(t *testing.T) {
	entries := []Entry{{Body: "bravo"}, {Body: "alpha"}}
	got := Rank(entries, "  ")
	require.Len(t, got, 2)
	require.Equal(t, "bravo", got[0].Body)
	require.Equal(t, "alpha", got[1].Body)
}

func TestRankSubstringBeatsEditDistance(t *testing.T) {
	entries := []Entry{
		{Body: "uploading file"},
		{Body: "upload done"},
		{Body: "disk almost full"},
	}
	got := Rank(entries, "upload")
	require.NotEmpty(t, got)
	require.Equal(t, "upload done", got[0].Body)
	for _, e := range got {
		require.NotEqual(t, "disk almost full", e.Body, "unrelated entry should be filtered")
	}
}

func TestRankCaseInsensitive(t *testing.T) {
	entries := []Entry{{Body: "Import Finished"}}
	got := Rank(entries, "IMPORT")
	require.Len(t, got, 1)
}

func TestRankNearMissSurvives(t *testing.T) {
	entries := []Entry{{Body: "savd"}}
	got := Rank(entries, "saved")
	require.Len(t, got, 1, "one edit away should still match")
}
