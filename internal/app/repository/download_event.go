package repository

import (
	"context"

	"licensestore/internal/app/ds"
)

// EventFilter - фильтры списка событий скачивания. nil означает "не фильтровать".
type EventFilter struct {
	LicenseKey  *string
	PackageName *string
	Valid       *bool
	Limit       int
	Offset      int
}

func (r *Repository) CreateDownloadEvent(ctx context.Context, evt *ds.DownloadEvent) error {
	return r.db.WithContext(ctx).Create(evt).Error
}

func (r *Repository) ListDownloadEvents(ctx context.Context, f EventFilter) ([]ds.DownloadEvent, error) {
	query := r.db.WithContext(ctx).Model(&ds.DownloadEvent{})
	if f.LicenseKey != nil {
		query = query.Where("license_key = ?", *f.LicenseKey)
	}
	if f.PackageName != nil {
		query = query.Where("package_name = ?", *f.PackageName)
	}
	if f.Valid != nil {
		query = query.Where("valid_at_log_time = ?", *f.Valid)
	}

	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var events []ds.DownloadEvent
	err := query.Order("id DESC").Find(&events).Error
	return events, err
}
