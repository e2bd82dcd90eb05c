package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/repository"
	"github.com/pastor-mobile/church-admin-service/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartOTPSweeper clears expired one-time codes from the primary table on the
// given interval until ctx is cancelled. Expired codes are already rejected at
// verification time; the sweep just keeps stale codes out of the table.
func StartOTPSweeper(ctx context.Context, users repository.UserRepository, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleared, err := users.ClearExpiredOTP(ctx)
				if err != nil {
					logger.Warn("otp sweep failed", zap.Error(err))
					continue
				}
				if cleared > 0 {
					logger.Info("expired otp codes cleared", zap.Int64("count", cleared))
				}
			}
		}
	}()
}
