package licensing

import (
	"context"
	"errors"
	"time"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/metrics"
	"licensestore/internal/app/repository"

	"github.com/sirupsen/logrus"
)

// Validity - диагностический статус лицензии
type Validity struct {
	Valid     bool
	ExpiresAt time.Time
	RevokedAt *time.Time
	Reason    *string
}

// Entitlement - имена пакетов, доступных по действующей лицензии, по возрастанию id
type Entitlement struct {
	Key          string
	PackageNames []string
}

// isValid: не отозвана и срок ещё не истёк
func isValid(lic *ds.License, now time.Time) bool {
	return lic.RevokedAt == nil && lic.ExpiresAt.After(now)
}

func (s *Service) licenseByKey(ctx context.Context, key string) (*ds.License, error) {
	lic, err := s.repo.GetLicenseByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}
	return lic, nil
}

// Validate возвращает статус лицензии. Истёкшая или отозванная лицензия - не ошибка.
func (s *Service) Validate(ctx context.Context, key string) (Validity, error) {
	lic, err := s.licenseByKey(ctx, key)
	if err != nil {
		metrics.EntitlementChecks.WithLabelValues("validate", checkResult(err)).Inc()
		return Validity{}, err
	}

	v := Validity{
		Valid:     isValid(lic, s.now()),
		ExpiresAt: lic.ExpiresAt,
		RevokedAt: lic.RevokedAt,
		Reason:    lic.RevokedReason,
	}
	if v.Valid {
		metrics.EntitlementChecks.WithLabelValues("validate", "valid").Inc()
	} else {
		metrics.EntitlementChecks.WithLabelValues("validate", "invalid").Inc()
	}
	return v, nil
}

// ResolvePackages возвращает набор пакетов, на который лицензия даёт право сейчас.
// Для недействительной лицензии возвращает ErrLicenseNotValid.
func (s *Service) ResolvePackages(ctx context.Context, key string) (Entitlement, error) {
	pkgs, err := s.entitled(ctx, key)
	metrics.EntitlementChecks.WithLabelValues("resolve", checkResult(err)).Inc()
	if err != nil {
		return Entitlement{}, err
	}

	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	return Entitlement{Key: key, PackageNames: names}, nil
}

func (s *Service) entitled(ctx context.Context, key string) ([]ds.Package, error) {
	lic, err := s.licenseByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !isValid(lic, s.now()) {
		logrus.WithFields(logrus.Fields{"license_id": lic.ID}).Debug("entitlement refused: license not valid")
		return nil, ErrLicenseNotValid
	}

	linked, err := s.repo.LinkedPackages(ctx, lic.ID)
	if err != nil {
		return nil, err
	}
	return entitledPackages(linked), nil
}

// entitledPackages убирает устаревшие пакеты. Если остался ровно один базовый пакет,
// доступен весь оставшийся набор, иначе только базовые пакеты (пустой набор, когда
// базовый пакет устарел). Порядок входа сохраняется.
func entitledPackages(linked []ds.Package) []ds.Package {
	active := make([]ds.Package, 0, len(linked))
	bases := make([]ds.Package, 0, 1)
	for _, p := range linked {
		if p.IsDeprecated {
			continue
		}
		active = append(active, p)
		if p.IsBase {
			bases = append(bases, p)
		}
	}

	if len(bases) == 1 {
		return active
	}
	return bases
}

func checkResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLicenseNotFound):
		return "not_found"
	case errors.Is(err, ErrLicenseNotValid):
		return "not_valid"
	default:
		return "error"
	}
}
