package dashboard

import (
	"context"
	"time"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/keepstock"
	"keepstock/models"
)

const recentLimit = 5

// LoadStats summarises boxes and activity of branch ("" for all branches).
func LoadStats(ctx context.Context, boxes *keepstock.Store, logs *activity.Store, branch string, now time.Time) (Stats, error) {
	list, err := boxes.List(ctx, branch)
	if err != nil {
		return Stats{}, err
	}
	stats := summariseBoxes(list)

	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	today, err := logs.ListByDateRange(ctx, startOfDay, now, branch)
	if err != nil {
		return Stats{}, err
	}
	for _, l := range today {
		if l.Action == activity.ActionRefill {
			stats.RefillsToday++
		}
	}

	all, err := logs.List(ctx, activity.Filter{Branch: branch})
	if err != nil {
		return Stats{}, err
	}
	stats.LogCount = len(all)
	if len(all) > recentLimit {
		all = all[:recentLimit]
	}
	stats.Recent = all
	return stats, nil
}

func summariseBoxes(boxes []models.Box) Stats {
	byCategory := make(map[string]*CategoryStat, len(keepstock.Categories))
	stats := Stats{Categories: make([]CategoryStat, 0, len(keepstock.Categories))}
	for _, c := range keepstock.Categories {
		stats.Categories = append(stats.Categories, CategoryStat{Category: c})
	}
	for i := range stats.Categories {
		byCategory[stats.Categories[i].Category] = &stats.Categories[i]
	}

	for _, box := range boxes {
		stats.TotalBoxes++
		stats.TotalSKUs += len(box.Items)
		if keepstock.Status(box) == keepstock.StatusActive {
			stats.ActiveBoxes++
		}
		if c, ok := byCategory[box.Category]; ok {
			c.Boxes++
			c.SKUs += len(box.Items)
		}
	}
	return stats
}
