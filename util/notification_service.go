// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyAccountChange(ctx context.Context, changeType string, account model.Account) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New account created",
			zap.String("accountID", account.ID),
			zap.Int("authIndex", account.AuthIndex))
	case "updated":
		logger.Info("NOTIFICATION: Account updated",
			zap.String("accountID", account.ID),
			zap.Int("authIndex", account.AuthIndex))
	case "deleted":
		logger.Info("NOTIFICATION: Account deleted",
			zap.String("accountID", account.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyCacheCleared(ctx context.Context, scope string) error {
	logger.Info("NOTIFICATION: Access cache cleared", zap.String("scope", scope))
	return nil
}
