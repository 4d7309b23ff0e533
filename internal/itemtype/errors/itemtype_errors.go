package itemtypeerrors

import (
	"net/http"

	"noassets/internal/shared/apperror"
)

var (
	ErrItemTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item type not found",
		http.StatusNotFound,
	)
	ErrItemTypeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Item type with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidItemTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid item type ID",
		http.StatusBadRequest,
	)
)
