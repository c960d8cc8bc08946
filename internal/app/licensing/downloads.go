package licensing

import (
	"context"
	"errors"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/repository"
)

const (
	DefaultEventsLimit = 100
	MaxEventsLimit     = 500
)

// DownloadLog - входные данные события скачивания
type DownloadLog struct {
	UserID         *uint
	LicenseKey     *string
	PackageName    string
	PackageVersion *string
	IPAddress      *string
}

// LogDownload сохраняет событие скачивания. Действительность ключа фиксируется
// на момент записи; неизвестный ключ считается недействительным.
func (s *Service) LogDownload(ctx context.Context, in DownloadLog) (*ds.DownloadEvent, error) {
	valid := false
	if in.LicenseKey != nil && *in.LicenseKey != "" {
		v, err := s.Validate(ctx, *in.LicenseKey)
		switch {
		case err == nil:
			valid = v.Valid
		case errors.Is(err, ErrLicenseNotFound):
		default:
			return nil, err
		}
	}

	evt := &ds.DownloadEvent{
		UserID:         in.UserID,
		LicenseKey:     in.LicenseKey,
		PackageName:    in.PackageName,
		PackageVersion: in.PackageVersion,
		IPAddress:      in.IPAddress,
		ValidAtLogTime: valid,
	}
	if err := s.repo.CreateDownloadEvent(ctx, evt); err != nil {
		return nil, err
	}
	return evt, nil
}

// ListDownloadEvents применяет лимиты по умолчанию и возвращает события, новые первыми
func (s *Service) ListDownloadEvents(ctx context.Context, f repository.EventFilter) ([]ds.DownloadEvent, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultEventsLimit
	}
	if f.Limit > MaxEventsLimit {
		f.Limit = MaxEventsLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListDownloadEvents(ctx, f)
}

// EntitledArtifact возвращает пакет name, если он входит в текущий набор прав по ключу
// и у него загружен артефакт.
func (s *Service) EntitledArtifact(ctx context.Context, key, name string) (*ds.Package, error) {
	pkgs, err := s.entitled(ctx, key)
	if err != nil {
		return nil, err
	}

	for i := range pkgs {
		if pkgs[i].Name != name {
			continue
		}
		if pkgs[i].ArtifactObject == nil || *pkgs[i].ArtifactObject == "" {
			return nil, ErrArtifactMissing
		}
		return &pkgs[i], nil
	}
	return nil, ErrPackageNotEntitled
}
