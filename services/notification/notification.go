package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"tidyhive/services/crew"
	"tidyhive/utils"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	SMS    SMSClient
	Crew   crew.CrewService
	Logger *zap.Logger
}

func NewDefaultNotificationService(sms SMSClient, crewSvc crew.CrewService, logger *zap.Logger) (*DefaultNotificationService, error) {
	if sms == nil || crewSvc == nil {
		return nil, fmt.Errorf("notification service initialization error: sms client or crew service is nil")
	}
	return &DefaultNotificationService{SMS: sms, Crew: crewSvc, Logger: logger}, nil
}

func (s *DefaultNotificationService) SendSMS(ctx context.Context, phone, body string) error {
	if err := s.SMS.Send(ctx, phone, body); err != nil {
		return fmt.Errorf("SendSMS: %w", err)
	}
	s.Logger.Info("sms sent", zap.String("phone", phone))
	return nil
}

// SendCrewPush looks up the member's FCM token and sends a push.
func (s *DefaultNotificationService) SendCrewPush(ctx context.Context, crewID, title, body string, data map[string]string) error {
	member, err := s.Crew.GetByID(ctx, crewID)
	if err != nil {
		return fmt.Errorf("SendCrewPush: could not find crew member %s: %w", crewID, err)
	}
	if member.FCMToken == "" {
		return fmt.Errorf("SendCrewPush: crew member %s has no FCM token", crewID)
	}

	msg := &messaging.Message{
		Token: member.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendCrewPush: fcm send failed: %w", err)
	}
	return nil
}
