package activity

import (
	"fmt"
	"time"

	"keepstock/models"
)

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Series is the input versus refill chart of the dashboard.
type Series struct {
	Period  string   `json:"period"`
	Labels  []string `json:"labels"`
	Inputs  []int    `json:"inputs"`
	Refills []int    `json:"refills"`
}

type bucket struct {
	label      string
	start, end time.Time
}

// BuildSeries counts input and refill entries in buckets ending at now:
// 24 hours for day, 7 days for week and 4 weeks for month. Unknown periods
// fall back to week.
func BuildSeries(logs []models.ActivityLog, period string, now time.Time) Series {
	buckets := bucketsFor(period, now)
	if period != PeriodDay && period != PeriodMonth {
		period = PeriodWeek
	}
	s := Series{
		Period:  period,
		Labels:  make([]string, len(buckets)),
		Inputs:  make([]int, len(buckets)),
		Refills: make([]int, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = b.label
	}
	for _, l := range logs {
		for i, b := range buckets {
			if l.Timestamp.Before(b.start) || !l.Timestamp.Before(b.end) {
				continue
			}
			switch l.Action {
			case ActionInput:
				s.Inputs[i]++
			case ActionRefill:
				s.Refills[i]++
			}
			break
		}
	}
	return s
}

// SeriesStart is the earliest instant BuildSeries can count for period.
func SeriesStart(period string, now time.Time) time.Time {
	return bucketsFor(period, now)[0].start
}

func bucketsFor(period string, now time.Time) []bucket {
	switch period {
	case PeriodDay:
		top := now.Truncate(time.Hour)
		out := make([]bucket, 24)
		for i := range out {
			start := top.Add(time.Duration(i-23) * time.Hour)
			out[i] = bucket{label: start.Format("15:00"), start: start, end: start.Add(time.Hour)}
		}
		return out
	case PeriodMonth:
		out := make([]bucket, 4)
		for i := range out {
			end := now.AddDate(0, 0, -7*(3-i))
			start := end.AddDate(0, 0, -7)
			if i == 3 {
				end = now.Add(time.Nanosecond)
			}
			out[i] = bucket{label: fmt.Sprintf("Week %d", i+1), start: start, end: end}
		}
		return out
	default:
		y, m, d := now.Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		out := make([]bucket, 7)
		for i := range out {
			start := today.AddDate(0, 0, i-6)
			out[i] = bucket{label: start.Format("Mon 02"), start: start, end: start.AddDate(0, 0, 1)}
		}
		return out
	}
}
