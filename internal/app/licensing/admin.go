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

// LicenseRecord - представление лицензии для администратора
type LicenseRecord struct {
	ID            uint
	Key           string
	UserID        uint
	ExpiresAt     time.Time
	RevokedAt     *time.Time
	RevokedReason *string
	PackageIDs    []uint
}

// UserLicense - лицензия покупателя с именами неустаревших пакетов
type UserLicense struct {
	ID            uint
	Key           string
	ExpiresAt     time.Time
	RevokedAt     *time.Time
	RevokedReason *string
	Valid         bool
	PackageNames  []string
}

func toRecord(lic *ds.License, packageIDs []uint) LicenseRecord {
	if packageIDs == nil {
		packageIDs = []uint{}
	}
	return LicenseRecord{
		ID:            lic.ID,
		Key:           lic.Key,
		UserID:        lic.UserID,
		ExpiresAt:     lic.ExpiresAt,
		RevokedAt:     lic.RevokedAt,
		RevokedReason: lic.RevokedReason,
		PackageIDs:    packageIDs,
	}
}

// IssueLicense выдаёт лицензию пользователю без списания баланса
func (s *Service) IssueLicense(ctx context.Context, userID uint, packageIDs []uint, days *int) (IssuedLicense, error) {
	ids := dedupeIDs(packageIDs)
	if len(ids) == 0 {
		return IssuedLicense{}, fmt.Errorf("%w: no packages", ErrInvalidPackageReference)
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return IssuedLicense{}, fmt.Errorf("%w: %d", ErrInvalidUserReference, userID)
		}
		return IssuedLicense{}, err
	}

	pkgs, err := s.repo.GetPackagesByIDs(ctx, ids)
	if err != nil {
		return IssuedLicense{}, err
	}
	if len(pkgs) != len(ids) {
		return IssuedLicense{}, fmt.Errorf("%w: unknown package id(s)", ErrInvalidPackageReference)
	}

	var base *ds.Package
	addons := make([]uint, 0, len(pkgs))
	for i := range pkgs {
		p := &pkgs[i]
		if p.IsDeprecated {
			return IssuedLicense{}, fmt.Errorf("%w: package %d is deprecated", ErrInvalidPackageReference, p.ID)
		}
		if !p.IsBase {
			addons = append(addons, p.ID)
			continue
		}
		if base != nil {
			return IssuedLicense{}, fmt.Errorf("%w: more than one base package", ErrInvalidComposition)
		}
		base = p
	}
	if base == nil {
		return IssuedLicense{}, fmt.Errorf("%w: exactly one base package required", ErrInvalidComposition)
	}

	// порядок связей как при покупке: базовый, затем дополнения в порядке запроса
	linked := []uint{base.ID}
	for _, id := range ids {
		if id != base.ID {
			linked = append(linked, id)
		}
	}

	key, err := NewLicenseKey()
	if err != nil {
		return IssuedLicense{}, err
	}
	lic := &ds.License{
		UserID:    userID,
		Key:       key,
		ExpiresAt: s.ExpiryFor(days),
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.CreateLicense(ctx, lic, linked)
	})
	if err != nil {
		return IssuedLicense{}, fmt.Errorf("issue license: %w", err)
	}

	metrics.LicensesIssued.WithLabelValues("admin").Inc()
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"license_id": lic.ID,
		"packages":   len(linked),
	}).Info("license issued by admin")

	return IssuedLicense{Key: key, PackageIDs: linked, ExpiresAt: lic.ExpiresAt}, nil
}

// Revoke отзывает лицензию. Повторный отзыв ничего не меняет.
func (s *Service) Revoke(ctx context.Context, licenseID uint, reason *string) (LicenseRecord, error) {
	var lic *ds.License
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		lic, err = tx.LockLicense(ctx, licenseID)
		if err != nil {
			return err
		}
		if lic.RevokedAt != nil {
			return nil
		}

		at := s.now()
		if _, err := tx.RevokeLicense(ctx, licenseID, at, reason); err != nil {
			return err
		}
		lic.RevokedAt = &at
		lic.RevokedReason = reason

		logrus.WithFields(logrus.Fields{"license_id": licenseID}).Info("license revoked")
		return nil
	})
	if err != nil {
		return LicenseRecord{}, licenseError(err)
	}

	return s.record(ctx, lic)
}

// Extend продлевает лицензию ровно на extraDays суток
func (s *Service) Extend(ctx context.Context, licenseID uint, extraDays int) (LicenseRecord, error) {
	if extraDays <= 0 {
		return LicenseRecord{}, ErrInvalidExtension
	}

	var lic *ds.License
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		lic, err = tx.LockLicense(ctx, licenseID)
		if err != nil {
			return err
		}
		if lic.RevokedAt != nil {
			return ErrLicenseRevoked
		}

		lic.ExpiresAt = lic.ExpiresAt.Add(time.Duration(extraDays) * 24 * time.Hour)
		return tx.SetLicenseExpiry(ctx, licenseID, lic.ExpiresAt)
	})
	if err != nil {
		return LicenseRecord{}, licenseError(err)
	}

	logrus.WithFields(logrus.Fields{
		"license_id": licenseID,
		"extra_days": extraDays,
	}).Info("license extended")

	return s.record(ctx, lic)
}

func (s *Service) ListLicenses(ctx context.Context) ([]LicenseRecord, error) {
	licenses, err := s.repo.ListLicenses(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(licenses))
	for _, l := range licenses {
		ids = append(ids, l.ID)
	}
	packageIDs, err := s.repo.PackageIDsByLicenses(ctx, ids)
	if err != nil {
		return nil, err
	}

	records := make([]LicenseRecord, 0, len(licenses))
	for i := range licenses {
		records = append(records, toRecord(&licenses[i], packageIDs[licenses[i].ID]))
	}
	return records, nil
}

// UserLicenses возвращает лицензии пользователя с именами неустаревших пакетов
func (s *Service) UserLicenses(ctx context.Context, userID uint) ([]UserLicense, error) {
	licenses, err := s.repo.ListLicensesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(licenses))
	for _, l := range licenses {
		ids = append(ids, l.ID)
	}
	byLicense, err := s.repo.LinkedPackagesByLicenses(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]UserLicense, 0, len(licenses))
	for i := range licenses {
		lic := &licenses[i]
		names := []string{}
		for _, p := range byLicense[lic.ID] {
			if !p.IsDeprecated {
				names = append(names, p.Name)
			}
		}
		result = append(result, UserLicense{
			ID:            lic.ID,
			Key:           lic.Key,
			ExpiresAt:     lic.ExpiresAt,
			RevokedAt:     lic.RevokedAt,
			RevokedReason: lic.RevokedReason,
			Valid:         isValid(lic, now),
			PackageNames:  names,
		})
	}
	return result, nil
}

func (s *Service) record(ctx context.Context, lic *ds.License) (LicenseRecord, error) {
	packageIDs, err := s.repo.PackageIDsByLicenses(ctx, []uint{lic.ID})
	if err != nil {
		return LicenseRecord{}, err
	}
	return toRecord(lic, packageIDs[lic.ID]), nil
}

func licenseError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLicenseNotFound
	}
	return err
}
