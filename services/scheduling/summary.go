package scheduling

import "tidyhive/models"

// Summarize aggregates a conflict list into the dashboard summary block.
// Every severity and type key is present even when its count is zero.
func Summarize(conflicts []models.Conflict) models.ConflictSummary {
	summary := models.ConflictSummary{
		Total: len(conflicts),
		BySeverity: map[string]int{
			models.SeverityCritical: 0,
			models.SeverityHigh:     0,
			models.SeverityMedium:   0,
			models.SeverityLow:      0,
		},
		ByType: map[string]int{
			models.ConflictTimeOverlap:         0,
			models.ConflictCrewDoubleBooking:   0,
			models.ConflictCrewUnavailable:     0,
			models.ConflictTravelTime:          0,
			models.ConflictResourceUnavailable: 0,
		},
	}

	bookings := make(map[string]bool)
	crews := make(map[string]bool)
	for _, c := range conflicts {
		summary.BySeverity[c.Severity]++
		summary.ByType[c.Type]++
		for _, id := range c.AffectedBookings {
			bookings[id] = true
		}
		for _, id := range c.AffectedCrewMembers {
			crews[id] = true
		}
	}
	summary.AffectedBookings = len(bookings)
	summary.AffectedCrewMembers = len(crews)
	return summary
}
