package licensing

import (
	"context"
	"errors"
	"fmt"

	"licensestore/internal/app/repository"
)

// ValidateItems проверяет все позиции запроса по каталогу до любых изменений.
// Первая же некорректная позиция отклоняет весь запрос.
func (s *Service) ValidateItems(ctx context.Context, items []PurchaseItem) ([]ValidatedItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyPurchase
	}

	validated := make([]ValidatedItem, 0, len(items))
	for i, item := range items {
		v, err := s.validateItem(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		validated = append(validated, v)
	}
	return validated, nil
}

func (s *Service) validateItem(ctx context.Context, item PurchaseItem) (ValidatedItem, error) {
	base, err := s.repo.GetPackageByID(ctx, item.BasePackageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ValidatedItem{}, fmt.Errorf("%w: base package %d", ErrInvalidPackageReference, item.BasePackageID)
		}
		return ValidatedItem{}, err
	}
	if !base.IsBase || base.IsDeprecated {
		return ValidatedItem{}, fmt.Errorf("%w: base package %d", ErrInvalidPackageReference, item.BasePackageID)
	}

	addonIDs := dedupeIDs(item.AddonPackageIDs)
	for _, id := range addonIDs {
		if id == base.ID {
			return ValidatedItem{}, fmt.Errorf("%w: base package %d cannot be an add-on", ErrInvalidComposition, base.ID)
		}
	}

	found, err := s.repo.GetPackagesByIDs(ctx, addonIDs)
	if err != nil {
		return ValidatedItem{}, err
	}

	byID := make(map[uint]int, len(found))
	for i, p := range found {
		if p.IsBase || p.IsDeprecated {
			continue
		}
		byID[p.ID] = i
	}
	if len(byID) != len(addonIDs) {
		return ValidatedItem{}, fmt.Errorf("%w: add-on package id(s)", ErrInvalidPackageReference)
	}

	v := ValidatedItem{Base: *base}
	for _, id := range addonIDs {
		v.Addons = append(v.Addons, found[byID[id]])
	}
	v.Subtotal = Subtotal(v)
	return v, nil
}

// dedupeIDs убирает повторы, сохраняя порядок первого появления
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
