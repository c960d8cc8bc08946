package licensing

import "errors"

// Ошибки ядра. Граница (HTTP) сопоставляет их со статусами через errors.Is.
var (
	// некорректный запрос
	ErrEmptyPurchase           = errors.New("no items provided")
	ErrInvalidPackageReference = errors.New("invalid or deprecated package reference")
	ErrInvalidComposition      = errors.New("invalid item composition")
	ErrInvalidExtension        = errors.New("extra days must be positive")

	// оплата
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrBalanceContention = errors.New("balance is locked by a concurrent purchase, retry")

	// лицензии
	ErrLicenseNotFound    = errors.New("license not found")
	ErrLicenseNotValid    = errors.New("license is expired or revoked")
	ErrLicenseRevoked     = errors.New("license is revoked")
	ErrPackageNotEntitled = errors.New("package is not entitled by this license")
	ErrArtifactMissing    = errors.New("package has no downloadable artifact")

	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidUserReference = errors.New("invalid user_id")
)
