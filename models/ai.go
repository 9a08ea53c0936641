package models

import "time"

// ChatMessage is one turn in an assistant conversation.
type ChatMessage struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// ChatContext is the rolling conversation state kept per customer in Redis.
type ChatContext struct {
	CustomerID string        `json:"customer_id"`
	Messages   []ChatMessage `json:"messages"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ReminderPayload is the asynq task payload for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"booking_id"`
	Phone     string `json:"phone"`
	Body      string `json:"body"`
	FireDate  string `json:"fire_date"`
}
