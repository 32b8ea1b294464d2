package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"keepstock/models"
)

func TestBuildSeriesBucketsByPeriod(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 20, 0, 0, time.UTC)
	logs := []models.ActivityLog{
		{Action: ActionInput, Timestamp: now.Add(-10 * time.Minute)},
		{Action: ActionRefill, Timestamp: now.Add(-10 * time.Minute)},
		{Action: ActionInput, Timestamp: now.Add(-2 * time.Hour)},
		{Action: ActionLogin, Timestamp: now.Add(-5 * time.Minute)},
		{Action: ActionInput, Timestamp: now.AddDate(0, 0, -3)},
		{Action: ActionRefill, Timestamp: now.AddDate(0, 0, -20)},
		{Action: ActionInput, Timestamp: now.AddDate(0, 0, -40)},
	}

	day := BuildSeries(logs, PeriodDay, now)
	require.Len(t, day.Labels, 24)
	require.Equal(t, "15:00", day.Labels[23])
	require.Equal(t, 1, day.Inputs[23])
	require.Equal(t, 1, day.Refills[23])
	require.Equal(t, 1, day.Inputs[21])

	week := BuildSeries(logs, "", now)
	require.Equal(t, PeriodWeek, week.Period)
	require.Len(t, week.Labels, 7)
	require.Equal(t, 2, week.Inputs[6])
	require.Equal(t, 1, week.Inputs[3])

	month := BuildSeries(logs, PeriodMonth, now)
	require.Len(t, month.Labels, 4)
	require.Equal(t, 3, month.Inputs[3])
	require.Equal(t, 1, month.Refills[3])
	require.Equal(t, 1, month.Refills[1])
	total := 0
	for _, n := range month.Inputs {
		total += n
	}
	require.Equal(t, 3, total, "entries older than four weeks are not counted")

	require.Equal(t, now.AddDate(0, 0, -28), SeriesStart(PeriodMonth, now))
}
