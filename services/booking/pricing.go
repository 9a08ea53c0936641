package booking

import (
	"fmt"
	"math"

	"tidyhive/models"
)

// Base rates and per-room increments in USD. Quotes are deterministic given
// the request, so the booking flow and the chat assistant price identically.
var serviceBaseRates = map[string]float64{
	"standard": 89,
	"deep":     159,
	"move_out": 219,
}

var serviceBaseDuration = map[string]int{
	"standard": 90,
	"deep":     150,
	"move_out": 180,
}

const (
	perBedroomRate  = 24
	perBathroomRate = 19
	perBedroomMin   = 30
	perBathroomMin  = 20
)

var addOnRates = map[string]float64{
	"inside_oven":    28,
	"inside_fridge":  28,
	"interior_walls": 39,
	"windows":        35,
	"laundry":        22,
}

const addOnDurationMin = 20

// Recurring customers get a loyalty discount off the subtotal.
var frequencyDiscounts = map[string]float64{
	"one_time": 0,
	"weekly":   0.15,
	"biweekly": 0.10,
	"monthly":  0.05,
}

// BuildQuote computes the dynamic price breakdown for a cleaning request.
func BuildQuote(req models.QuoteRequest) (*models.Quote, error) {
	base, ok := serviceBaseRates[req.ServiceType]
	if !ok {
		return nil, fmt.Errorf("unknown service type %q", req.ServiceType)
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = "one_time"
	}
	discountRate, ok := frequencyDiscounts[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency %q", frequency)
	}

	quote := &models.Quote{
		Currency:    "usd",
		DurationMin: serviceBaseDuration[req.ServiceType],
	}
	quote.Lines = append(quote.Lines, models.QuoteLine{
		Label:  fmt.Sprintf("%s clean", req.ServiceType),
		Amount: base,
	})
	if req.Bedrooms > 0 {
		quote.Lines = append(quote.Lines, models.QuoteLine{
			Label:  fmt.Sprintf("%d bedrooms", req.Bedrooms),
			Amount: float64(req.Bedrooms) * perBedroomRate,
		})
		quote.DurationMin += req.Bedrooms * perBedroomMin
	}
	if req.Bathrooms > 0 {
		quote.Lines = append(quote.Lines, models.QuoteLine{
			Label:  fmt.Sprintf("%d bathrooms", req.Bathrooms),
			Amount: float64(req.Bathrooms) * perBathroomRate,
		})
		quote.DurationMin += req.Bathrooms * perBathroomMin
	}
	for _, addOn := range req.AddOns {
		rate, ok := addOnRates[addOn]
		if !ok {
			return nil, fmt.Errorf("unknown add-on %q", addOn)
		}
		quote.Lines = append(quote.Lines, models.QuoteLine{Label: addOn, Amount: rate})
		quote.DurationMin += addOnDurationMin
	}

	for _, line := range quote.Lines {
		quote.Subtotal += line.Amount
	}
	quote.Subtotal = roundCents(quote.Subtotal)
	quote.Discount = roundCents(quote.Subtotal * discountRate)
	quote.Total = roundCents(quote.Subtotal - quote.Discount)
	return quote, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
