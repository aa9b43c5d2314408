package notification

import (
	"context"
	"fmt"

	"auracare/database/repository"
	"auracare/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Notifier delivers a push message to a user's device.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, data map[string]string) error
}

// Sender is the part of the FCM messaging client the notifier uses.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotifier looks up the user's FCM token and sends through Firebase.
type FCMNotifier struct {
	Users  repository.UserRepository
	Client Sender
}

func NewFCMNotifier(users repository.UserRepository, client Sender) (*FCMNotifier, error) {
	if users == nil || client == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository or FCM client is nil")
	}
	return &FCMNotifier{Users: users, Client: client}, nil
}

// Notify skips users without a registered device token.
func (n *FCMNotifier) Notify(ctx context.Context, userID, title, body string, data map[string]string) error {
	if userID == "" {
		return nil
	}
	u, err := n.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("notify: could not load user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		utils.GetLogger().Debug("notify: no push target", zap.String("userID", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: withRole(data, u.Role),
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := n.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("notify: failed to send FCM message to user %s: %w", userID, err)
	}
	utils.GetLogger().Debug("notify: push sent", zap.String("userID", userID), zap.String("messageID", id))
	return nil
}

// LogNotifier only logs. It is used when Firebase is not configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, userID, title, body string, data map[string]string) error {
	if userID == "" {
		return nil
	}
	utils.GetLogger().Info("notification",
		zap.String("userID", userID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data),
	)
	return nil
}

func withRole(data map[string]string, role string) map[string]string {
	out := make(map[string]string, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	if _, ok := out["role"]; !ok && role != "" {
		out["role"] = role
	}
	return out
}
