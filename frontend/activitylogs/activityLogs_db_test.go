package activitylogs

import (
	"net/url"
	"testing"
	"time"

	"keepstock/infrastructure/apperr"
	"keepstock/models"
)

func TestCriteriaFromQueryScopesStoreUsersToTheirBranch(t *testing.T) {
	store := models.Session{User: models.User{Username: "store1", Branch: "Branch 1"}}
	admin := models.Session{User: models.User{Username: "admin"}}
	q := url.Values{"branch": {"Branch 9"}, "q": {" sku001 "}, "action": {"all"}}

	c, err := criteriaFromQuery(q, store, time.UTC)
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	if c.Branch != "Branch 1" || c.Text != "sku001" || c.Action != "" {
		t.Fatalf("unexpected store criteria: %+v", c)
	}

	c, err = criteriaFromQuery(q, admin, time.UTC)
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	if c.Branch != "Branch 9" {
		t.Fatalf("expected admin to pick Branch 9, got %q", c.Branch)
	}
}

func TestCriteriaFromQueryEndCoversWholeDay(t *testing.T) {
	c, err := criteriaFromQuery(url.Values{"start": {"2026-03-01"}, "end": {"2026-03-02"}}, models.Session{}, time.UTC)
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	if !c.Start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", c.Start)
	}
	if !c.End.Equal(time.Date(2026, 3, 2, 23, 59, 59, 999999999, time.UTC)) {
		t.Fatalf("unexpected end %v", c.End)
	}
}

func TestCriteriaFromQueryRejectsBadDates(t *testing.T) {
	for _, q := range []url.Values{
		{"start": {"01/03/2026"}},
		{"end": {"tomorrow"}},
		{"start": {"2026-03-02"}, "end": {"2026-03-01"}},
	} {
		if _, err := criteriaFromQuery(q, models.Session{}, time.UTC); !apperr.IsValidation(err) {
			t.Fatalf("query %v: expected validation error, got %v", q, err)
		}
	}
}
