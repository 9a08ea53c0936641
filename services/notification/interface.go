package notification

import "context"

// NotificationService covers both customer SMS and crew push channels.
type NotificationService interface {
	SendSMS(ctx context.Context, phone, body string) error
	SendCrewPush(ctx context.Context, crewID, title, body string, data map[string]string) error
}
