package licensing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const keyBytes = 32

// NewLicenseKey возвращает 43-символьный URL-safe ключ из 32 случайных байт
func NewLicenseKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate license key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
