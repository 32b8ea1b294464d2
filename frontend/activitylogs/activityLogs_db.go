package activitylogs

import (
	"net/url"
	"strings"
	"time"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/models"
)

const dateLayout = "2006-01-02"

// criteriaFromQuery reads the screen filters. Dates are whole local days, so
// end covers the entire day it names.
func criteriaFromQuery(q url.Values, session models.Session, loc *time.Location) (activity.Criteria, error) {
	c := activity.Criteria{
		Branch: sessioncontext.ScopeBranch(session, q.Get("branch")),
		Text:   strings.TrimSpace(q.Get("q")),
		Action: strings.TrimSpace(q.Get("action")),
	}
	if c.Action == "all" {
		c.Action = ""
	}
	if v := strings.TrimSpace(q.Get("start")); v != "" {
		start, err := time.ParseInLocation(dateLayout, v, loc)
		if err != nil {
			return activity.Criteria{}, apperr.Validation("start date must look like 2026-01-31")
		}
		c.Start = start
	}
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		end, err := time.ParseInLocation(dateLayout, v, loc)
		if err != nil {
			return activity.Criteria{}, apperr.Validation("end date must look like 2026-01-31")
		}
		c.End = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !c.Start.IsZero() && !c.End.IsZero() && c.End.Before(c.Start) {
		return activity.Criteria{}, apperr.Validation("end date is before start date")
	}
	return c, nil
}
