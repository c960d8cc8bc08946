package repository

import (
	"context"

	"licensestore/internal/app/ds"
)

// Методы каталога пакетов

func (r *Repository) GetPackageByID(ctx context.Context, id uint) (*ds.Package, error) {
	var pkg ds.Package
	err := r.db.WithContext(ctx).First(&pkg, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pkg, nil
}

func (r *Repository) GetPackageByName(ctx context.Context, name string) (*ds.Package, error) {
	var pkg ds.Package
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&pkg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pkg, nil
}

// GetPackagesByIDs возвращает найденные пакеты по возрастанию id. Отсутствующие id
// просто не попадают в результат - сверку количества делает вызывающий код.
func (r *Repository) GetPackagesByIDs(ctx context.Context, ids []uint) ([]ds.Package, error) {
	if len(ids) == 0 {
		return []ds.Package{}, nil
	}

	var pkgs []ds.Package
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&pkgs).Error
	if err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *Repository) ListPackages(ctx context.Context) ([]ds.Package, error) {
	var pkgs []ds.Package
	err := r.db.WithContext(ctx).Order("id").Find(&pkgs).Error
	return pkgs, err
}

func (r *Repository) PackageNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.Package{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreatePackage(ctx context.Context, pkg *ds.Package) error {
	return translate(r.db.WithContext(ctx).Create(pkg).Error)
}

func (r *Repository) SetPackageDeprecated(ctx context.Context, id uint, deprecated bool) error {
	result := r.db.WithContext(ctx).Model(&ds.Package{}).
		Where("id = ?", id).
		Update("is_deprecated", deprecated)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetPackageArtifact(ctx context.Context, id uint, object string) error {
	result := r.db.WithContext(ctx).Model(&ds.Package{}).
		Where("id = ?", id).
		Update("artifact_object", object)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
