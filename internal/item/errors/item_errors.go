package itemerrors

import (
	"net/http"

	"noassets/internal/shared/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item not found",
		http.StatusNotFound,
	)
	ErrSerialNoAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Item with the same serial number already exists",
		http.StatusConflict,
	)
	ErrInvalidItemID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid item ID",
		http.StatusBadRequest,
	)
	ErrItemNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Item is not in active status",
		http.StatusConflict,
	)
	ErrItemDeleted = apperror.New(
		apperror.CodeInvalidState,
		"Item has been deleted",
		http.StatusConflict,
	)
)
