package models

// RevenuePoint is one day's revenue from completed bookings.
type RevenuePoint struct {
	Date     string  `bson:"_id" json:"date"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
	Bookings int     `bson:"bookings" json:"bookings"`
}

// CrewRating is a crew member's average customer rating.
type CrewRating struct {
	CrewID        string  `bson:"_id" json:"crew_id"`
	AverageRating float64 `bson:"average_rating" json:"average_rating"`
	Ratings       int     `bson:"ratings" json:"ratings"`
}

// SatisfactionSummary aggregates customer ratings.
type SatisfactionSummary struct {
	AverageRating float64      `json:"average_rating"`
	Ratings       int          `json:"ratings"`
	ByCrew        []CrewRating `json:"by_crew"`
}

// CrewUtilization is worked time per crew member over a period.
type CrewUtilization struct {
	CrewID        string `bson:"_id" json:"crew_id"`
	Name          string `bson:"-" json:"name"`
	MinutesWorked int    `bson:"minutes_worked" json:"minutes_worked"`
	Jobs          int    `bson:"jobs" json:"jobs"`
}
