// ABOUTME: Unit tests for Charm-based record sync helpers.
// ABOUTME: Verifies key formatting and the last-writer-wins merge.

package charm

import (
	"testing"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(t *testing.T, start, end, updated string) *models.SleepRecord {
	t.Helper()
	parse := func(s string) time.Time {
		ts, err := time.ParseInLocation(models.TimeLayout, s, time.UTC)
		require.NoError(t, err)
		return ts
	}
	return &models.SleepRecord{
		StartTime:  parse(start),
		EndTime:    parse(end),
		UpdateTime: parse(updated),
	}
}

func TestRecordKeyFormat(t *testing.T) {
	r := rec(t, "2025-03-01 23:30:00", "2025-03-02 06:15:00", "2025-03-02 08:00:00")
	key := RecordPrefix + r.Key().String()

	assert.Equal(t, "record:2025-03-01 23:30:00|2025-03-02 06:15:00", key)
}

func TestMergeLaterUpdateWins(t *testing.T) {
	local := rec(t, "2025-03-01 23:30:00", "2025-03-02 06:15:00", "2025-03-02 08:00:00")
	local.SleepScore = models.IntPtr(70)
	remote := rec(t, "2025-03-01 23:30:00", "2025-03-02 06:15:00", "2025-03-05 09:00:00")
	remote.SleepScore = models.IntPtr(85)

	merged := Merge([]*models.SleepRecord{local}, []*models.SleepRecord{remote})
	require.Len(t, merged, 1)
	require.NotNil(t, merged[0].SleepScore)
	assert.Equal(t, 85, *merged[0].SleepScore, "later remote update should win")

	// Same keys, local side newer: local wins regardless of argument order.
	local.UpdateTime = local.UpdateTime.AddDate(0, 1, 0)
	merged = Merge([]*models.SleepRecord{local}, []*models.SleepRecord{remote})
	require.Len(t, merged, 1)
	assert.Equal(t, 70, *merged[0].SleepScore, "newer local update should win")
}

func TestMergeDisjointSetsSorted(t *testing.T) {
	a := rec(t, "2025-03-05 23:00:00", "2025-03-06 06:00:00", "2025-03-06 08:00:00")
	b := rec(t, "2025-03-01 23:00:00", "2025-03-02 06:00:00", "2025-03-02 08:00:00")

	merged := Merge([]*models.SleepRecord{a}, []*models.SleepRecord{b})
	require.Len(t, merged, 2)
	assert.True(t, merged[0].StartTime.Before(merged[1].StartTime), "merged output should be sorted by start time")
}

func TestMergeKeepsKeylessRecords(t *testing.T) {
	keyless := &models.SleepRecord{SleepDuration: models.FloatPtr(6.5)}
	a := rec(t, "2025-03-01 23:00:00", "2025-03-02 06:00:00", "2025-03-02 08:00:00")

	merged := Merge([]*models.SleepRecord{keyless, a}, nil)
	require.Len(t, merged, 2)
	// Unresolved starts sort last.
	assert.Same(t, keyless, merged[1])
}

func TestMergeEmptySides(t *testing.T) {
	a := rec(t, "2025-03-01 23:00:00", "2025-03-02 06:00:00", "2025-03-02 08:00:00")

	assert.Len(t, Merge(nil, []*models.SleepRecord{a}), 1)
	assert.Len(t, Merge([]*models.SleepRecord{a}, nil), 1)
	assert.Empty(t, Merge(nil, nil))
}
