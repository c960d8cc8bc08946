package licensing

import "time"

// Subtotal - цена базового пакета плюс цены дополнений
func Subtotal(item ValidatedItem) int64 {
	total := item.Base.Price
	for _, a := range item.Addons {
		total += a.Price
	}
	return total
}

// Total - сумма подытогов всех позиций запроса
func Total(items []ValidatedItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal
	}
	return total
}

// CalculateExpiry: запрошенный срок используется, только если он задан и больше нуля,
// иначе берётся срок по умолчанию.
func CalculateExpiry(now time.Time, requestedDays *int, defaultDays int) time.Time {
	days := defaultDays
	if requestedDays != nil && *requestedDays > 0 {
		days = *requestedDays
	}
	return now.UTC().Add(time.Duration(days) * 24 * time.Hour)
}

// ExpiryFor считает срок действия от текущего момента сервиса
func (s *Service) ExpiryFor(requestedDays *int) time.Time {
	return CalculateExpiry(s.now(), requestedDays, s.defaultDays)
}
