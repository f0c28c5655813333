package service

import "context"

// NotificationService delivers leave-reminder push notifications.
type NotificationService interface {
	// SendSingleNotification sends a push notification to a single device token.
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error
}
