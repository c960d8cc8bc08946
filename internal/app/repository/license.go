package repository

import (
	"context"
	"time"

	"licensestore/internal/app/ds"

	"gorm.io/gorm/clause"
)

// Методы для лицензий и М-М связей лицензия-пакет

// CreateLicense вставляет лицензию и её связи с пакетами в порядке packageIDs.
// Вызывается внутри Transaction.
func (r *Repository) CreateLicense(ctx context.Context, lic *ds.License, packageIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(lic).Error; err != nil {
		return translate(err)
	}

	if len(packageIDs) == 0 {
		return nil
	}

	links := make([]ds.LicensePackage, 0, len(packageIDs))
	for _, pid := range packageIDs {
		links = append(links, ds.LicensePackage{LicenseID: lic.ID, PackageID: pid})
	}
	return translate(db.Create(&links).Error)
}

func (r *Repository) GetLicenseByKey(ctx context.Context, key string) (*ds.License, error) {
	var lic ds.License
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&lic).Error
	if err != nil {
		return nil, translate(err)
	}
	return &lic, nil
}

func (r *Repository) GetLicenseByID(ctx context.Context, id uint) (*ds.License, error) {
	var lic ds.License
	err := r.db.WithContext(ctx).First(&lic, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &lic, nil
}

// LockLicense читает лицензию с блокировкой строки до конца транзакции
func (r *Repository) LockLicense(ctx context.Context, id uint) (*ds.License, error) {
	var lic ds.License
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lic, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &lic, nil
}

func (r *Repository) ListLicenses(ctx context.Context) ([]ds.License, error) {
	var licenses []ds.License
	err := r.db.WithContext(ctx).Order("id").Find(&licenses).Error
	return licenses, err
}

func (r *Repository) ListLicensesByUser(ctx context.Context, userID uint) ([]ds.License, error) {
	var licenses []ds.License
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&licenses).Error
	return licenses, err
}

// PackageIDsByLicenses возвращает id связанных пакетов для каждой лицензии
func (r *Repository) PackageIDsByLicenses(ctx context.Context, licenseIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(licenseIDs))
	if len(licenseIDs) == 0 {
		return result, nil
	}

	var links []ds.LicensePackage
	err := r.db.WithContext(ctx).
		Where("license_id IN ?", licenseIDs).
		Order("license_id, package_id").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		result[l.LicenseID] = append(result[l.LicenseID], l.PackageID)
	}
	return result, nil
}

// LinkedPackages возвращает все пакеты лицензии (включая устаревшие) по возрастанию id
func (r *Repository) LinkedPackages(ctx context.Context, licenseID uint) ([]ds.Package, error) {
	var pkgs []ds.Package
	err := r.db.WithContext(ctx).
		Joins("JOIN license_packages ON license_packages.package_id = packages.id").
		Where("license_packages.license_id = ?", licenseID).
		Order("packages.id").
		Find(&pkgs).Error
	return pkgs, err
}

type licensePackageRow struct {
	LicenseID uint
	ds.Package
}

// LinkedPackagesByLicenses - пакетная версия LinkedPackages для списков лицензий
func (r *Repository) LinkedPackagesByLicenses(ctx context.Context, licenseIDs []uint) (map[uint][]ds.Package, error) {
	result := make(map[uint][]ds.Package, len(licenseIDs))
	if len(licenseIDs) == 0 {
		return result, nil
	}

	var rows []licensePackageRow
	err := r.db.WithContext(ctx).
		Table("packages").
		Select("license_packages.license_id, packages.*").
		Joins("JOIN license_packages ON license_packages.package_id = packages.id").
		Where("license_packages.license_id IN ?", licenseIDs).
		Order("license_packages.license_id, packages.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.LicenseID] = append(result[row.LicenseID], row.Package)
	}
	return result, nil
}

// RevokeLicense проставляет отзыв только если лицензия ещё не отозвана.
// Возвращает false, если строка не изменилась.
func (r *Repository) RevokeLicense(ctx context.Context, id uint, at time.Time, reason *string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&ds.License{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(map[string]interface{}{
			"revoked_at":     at,
			"revoked_reason": reason,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) SetLicenseExpiry(ctx context.Context, id uint, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&ds.License{}).
		Where("id = ?", id).
		Update("expires_at", expiresAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
