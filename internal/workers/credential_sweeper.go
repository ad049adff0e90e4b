package workers

import (
	"context"
	"time"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/repositories"

	"gorm.io/gorm"
)

// CredentialSweeper clears expired one-time codes and refresh tokens in
// the background. Expired codes are already unusable; the sweep just
// keeps stale secrets out of the table.
type CredentialSweeper struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	interval time.Duration
}

func NewCredentialSweeper(db *gorm.DB, userRepo repositories.UserRepository) *CredentialSweeper {
	return &CredentialSweeper{
		db:       db,
		userRepo: userRepo,
		interval: 10 * time.Minute,
	}
}

// Start launches the background sweeps.
func (w *CredentialSweeper) Start(ctx context.Context) {
	go w.sweep(ctx)
}

func (w *CredentialSweeper) sweep(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Credential sweeper stopped")
			return
		case <-ticker.C:
			cleared, err := w.userRepo.ClearExpiredOTPs(w.db, time.Now())
			if err != nil {
				logger.WithError(err).Error("Failed to clear expired OTP codes")
			} else if cleared > 0 {
				logger.Info("Cleared expired OTP codes", "count", cleared)
			}

			if err := w.userRepo.CleanExpiredRefreshTokens(w.db); err != nil {
				logger.WithError(err).Error("Failed to clean expired refresh tokens")
			}
		}
	}
}
