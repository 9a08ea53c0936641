package handlers

// HandlerBundle groups all the endpoint handlers into one struct so route
// registration takes a single dependency.
type HandlerBundle struct {
	Booking   *BookingHandler
	Conflicts *ConflictHandler
	Crew      *CrewHandler
	Customer  *CustomerHandler
	Payroll   *PayrollHandler
	AI        *AIHandler
	Analytics *AnalyticsHandler
}
