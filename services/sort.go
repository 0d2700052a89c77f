package services

import (
	"sort"

	"staffly/models"
)

func sortScheduledDays(days []models.ScheduledDay) {
	sort.SliceStable(days, func(i, j int) bool {
		if days[i].Date != days[j].Date {
			return days[i].Date < days[j].Date
		}
		return days[i].StartTime < days[j].StartTime
	})
}
