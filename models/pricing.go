package models

// QuoteRequest is the input to the pricing engine.
type QuoteRequest struct {
	ServiceType string   `json:"service_type" binding:"required"` // standard, deep, move_out
	Bedrooms    int      `json:"bedrooms" binding:"min=0,max=10"`
	Bathrooms   int      `json:"bathrooms" binding:"min=0,max=10"`
	Frequency   string   `json:"frequency"` // one_time, weekly, biweekly, monthly
	AddOns      []string `json:"add_ons"`
}

// QuoteLine is a single priced component of a quote.
type QuoteLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Quote is a dynamic price breakdown for a booking request.
type Quote struct {
	Lines       []QuoteLine `json:"lines"`
	Subtotal    float64     `json:"subtotal"`
	Discount    float64     `json:"discount"` // frequency discount, negative amounts never appear here
	Total       float64     `json:"total"`
	Currency    string      `json:"currency"`
	DurationMin int         `json:"duration_min"` // estimated job duration
}
