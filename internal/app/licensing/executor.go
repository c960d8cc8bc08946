package licensing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/metrics"
	"licensestore/internal/app/repository"

	"github.com/sirupsen/logrus"
)

// Purchase проверяет позиции, считает итог и срок действия, затем выполняет покупку.
// Любая ошибка оставляет баланс и лицензии без изменений.
func (s *Service) Purchase(ctx context.Context, buyerID uint, req PurchaseRequest) ([]IssuedLicense, error) {
	items, err := s.ValidateItems(ctx, req.Items)
	if err != nil {
		metrics.Purchases.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	total := Total(items)
	expiresAt := s.ExpiryFor(req.LicenseDays)

	issued, err := s.ChargeAndIssue(ctx, buyerID, items, total, expiresAt)
	metrics.Purchases.WithLabelValues(purchaseOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return issued, nil
}

// ChargeAndIssue в одной транзакции блокирует строку покупателя, списывает total
// и создаёт по лицензии на каждую позицию. Пакеты повторно не проверяются.
func (s *Service) ChargeAndIssue(ctx context.Context, buyerID uint, items []ValidatedItem, total int64, expiresAt time.Time) ([]IssuedLicense, error) {
	started := time.Now()
	issued := make([]IssuedLicense, 0, len(items))

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.SetLockTimeout(ctx, s.lockTimeout); err != nil {
			return err
		}

		buyer, err := tx.LockUserForUpdate(ctx, buyerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if buyer.Balance < total {
			return fmt.Errorf("%w: balance %d, total %d", ErrInsufficientFunds, buyer.Balance, total)
		}
		if err := tx.DebitBalance(ctx, buyerID, total); err != nil {
			return err
		}

		for _, item := range items {
			key, err := NewLicenseKey()
			if err != nil {
				return err
			}

			lic := &ds.License{
				UserID:    buyerID,
				Key:       key,
				ExpiresAt: expiresAt,
			}
			ids := item.PackageIDs()
			if err := tx.CreateLicense(ctx, lic, ids); err != nil {
				return fmt.Errorf("create license: %w", err)
			}

			issued = append(issued, IssuedLicense{Key: key, PackageIDs: ids, ExpiresAt: expiresAt})
		}
		return nil
	})
	metrics.PurchaseDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		if repository.IsLockContention(err) {
			logrus.WithFields(logrus.Fields{"user_id": buyerID}).Warn("purchase aborted: balance lock contention")
			return nil, fmt.Errorf("%w: %v", ErrBalanceContention, err)
		}
		return nil, err
	}

	metrics.BalanceDebited.Add(float64(total))
	metrics.LicensesIssued.WithLabelValues("purchase").Add(float64(len(issued)))
	logrus.WithFields(logrus.Fields{
		"user_id":  buyerID,
		"total":    total,
		"licenses": len(issued),
	}).Info("purchase completed")

	return issued, nil
}

func purchaseOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInsufficientFunds):
		return metrics.OutcomeInsufficient
	case errors.Is(err, ErrBalanceContention):
		return metrics.OutcomeContention
	default:
		return metrics.OutcomeError
	}
}
