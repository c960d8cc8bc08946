package handler

import (
	"errors"
	"net/http"

	"licensestore/internal/app/licensing"
	"licensestore/internal/app/repository"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{licensing.ErrEmptyPurchase, http.StatusBadRequest},
	{licensing.ErrInvalidPackageReference, http.StatusBadRequest},
	{licensing.ErrInvalidComposition, http.StatusBadRequest},
	{licensing.ErrInvalidExtension, http.StatusBadRequest},
	{licensing.ErrInvalidUserReference, http.StatusBadRequest},
	{licensing.ErrInsufficientFunds, http.StatusPaymentRequired},
	{licensing.ErrLicenseNotValid, http.StatusForbidden},
	{licensing.ErrPackageNotEntitled, http.StatusForbidden},
	{licensing.ErrLicenseNotFound, http.StatusNotFound},
	{licensing.ErrUserNotFound, http.StatusNotFound},
	{licensing.ErrArtifactMissing, http.StatusNotFound},
	{repository.ErrNotFound, http.StatusNotFound},
	{licensing.ErrLicenseRevoked, http.StatusConflict},
	{licensing.ErrBalanceContention, http.StatusConflict},
	{repository.ErrDuplicate, http.StatusConflict},
}

func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
