package areaerrors

import (
	"net/http"

	"noassets/internal/shared/apperror"
)

var (
	ErrAreaNotFound = apperror.New(
		apperror.CodeNotFound,
		"Area not found",
		http.StatusNotFound,
	)
	ErrAreaAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Area with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidAreaID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid area ID",
		http.StatusBadRequest,
	)
	ErrAreaNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Area is not active",
		http.StatusConflict,
	)
	ErrAreaHasActiveIssuances = apperror.New(
		apperror.CodeInvalidState,
		"Area still has active issuances",
		http.StatusConflict,
	)
)
