package scheduling

import "tidyhive/models"

// Suggestion IDs form a small fixed vocabulary. They are advisory only;
// applying one goes through the booking service.
const (
	SuggestReschedule1 = "reschedule_booking_1"
	SuggestReschedule2 = "reschedule_booking_2"
	SuggestReassign1   = "reassign_crew_1"
	SuggestReassign2   = "reassign_crew_2"
	SuggestExtendSlot  = "extend_time_slot"
	SuggestAddCrew     = "add_crew_member"
)

// KnownSuggestionIDs enumerates every valid suggestion ID for input validation.
var KnownSuggestionIDs = map[string]bool{
	SuggestReschedule1: true,
	SuggestReschedule2: true,
	SuggestReassign1:   true,
	SuggestReassign2:   true,
	SuggestExtendSlot:  true,
	SuggestAddCrew:     true,
}

func suggestionsFor(conflictType string) []models.Suggestion {
	switch conflictType {
	case models.ConflictTimeOverlap:
		return []models.Suggestion{
			{ID: SuggestReschedule1, Label: "Reschedule the first booking to the next free slot", Action: models.ActionReschedule},
			{ID: SuggestReschedule2, Label: "Reschedule the second booking to the next free slot", Action: models.ActionReschedule},
		}
	case models.ConflictCrewDoubleBooking:
		return []models.Suggestion{
			{ID: SuggestReassign1, Label: "Assign a different crew member to the first booking", Action: models.ActionReassignCrew},
			{ID: SuggestReassign2, Label: "Assign a different crew member to the second booking", Action: models.ActionReassignCrew},
			{ID: SuggestAddCrew, Label: "Bring another crew member on shift", Action: models.ActionAddCrew},
		}
	case models.ConflictCrewUnavailable:
		return []models.Suggestion{
			{ID: SuggestReassign1, Label: "Assign an available crew member", Action: models.ActionReassignCrew},
			{ID: SuggestReschedule1, Label: "Reschedule the booking", Action: models.ActionReschedule},
		}
	case models.ConflictTravelTime:
		return []models.Suggestion{
			{ID: SuggestReschedule2, Label: "Push the second booking back to allow travel", Action: models.ActionReschedule},
			{ID: SuggestReassign2, Label: "Assign a closer crew member to the second booking", Action: models.ActionReassignCrew},
		}
	}
	return nil
}
