package repairerrors

import (
	"net/http"

	"noassets/internal/shared/apperror"
)

var (
	ErrRepairNotFound = apperror.New(
		apperror.CodeNotFound,
		"Repair not found",
		http.StatusNotFound,
	)
	ErrInvalidRepairID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid repair ID",
		http.StatusBadRequest,
	)
	ErrRepairNotOngoing = apperror.New(
		apperror.CodeInvalidState,
		"Repair is not in ongoing status",
		http.StatusConflict,
	)
	ErrItemUnderRepair = apperror.New(
		apperror.CodeInvalidState,
		"Item already has an ongoing repair",
		http.StatusConflict,
	)
)
