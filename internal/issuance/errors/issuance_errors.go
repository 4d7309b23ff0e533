package issuanceerrors

import (
	"net/http"

	"noassets/internal/shared/apperror"
)

var (
	ErrIssuanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Issuance not found",
		http.StatusNotFound,
	)
	ErrInvalidIssuanceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid issuance ID",
		http.StatusBadRequest,
	)
	ErrIssuanceNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Issuance is not in active status",
		http.StatusConflict,
	)
	ErrInvalidStatusChange = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported issuance status change",
		http.StatusBadRequest,
	)
	ErrTransferRoomRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Transfer requires a destination room",
		http.StatusBadRequest,
	)
)
