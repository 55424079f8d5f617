package handlers

import (
	"errors"
	"net/http"

	"github.com/Billy-Davies-2/expansion-draft/internal/auth"
	"github.com/Billy-Davies-2/expansion-draft/internal/coordinator"
	"github.com/Billy-Davies-2/expansion-draft/internal/draft"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

type errorBody struct {
	Error    string   `json:"error"`
	Overages []string `json:"overages,omitempty"`
}

var errorStatus = []struct {
	err    error
	status int
}{
	{draft.ErrPositionLimits, http.StatusUnprocessableEntity},
	{draft.ErrNotInPool, http.StatusUnprocessableEntity},
	{draft.ErrNotOnRoster, http.StatusUnprocessableEntity},
	{draft.ErrPasswordRequired, http.StatusUnprocessableEntity},
	{draft.ErrNoSelection, http.StatusUnprocessableEntity},
	{auth.ErrPasswordTooLong, http.StatusUnprocessableEntity},
	{draft.ErrOwnerCapReached, http.StatusConflict},
	{draft.ErrProtectionLocked, http.StatusConflict},
	{draft.ErrNotLocked, http.StatusConflict},
	{draft.ErrEmptyDraftOrder, http.StatusConflict},
	{draft.ErrIncorrectPassword, http.StatusForbidden},
	{draft.ErrUnknownOwner, http.StatusNotFound},
	{draft.ErrOrderIndex, http.StatusNotFound},
	{draft.ErrUnsupportedCommand, http.StatusBadRequest},
}

// statusFor maps a command error to an HTTP status
func statusFor(err error) int {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}

	var over *draft.OverLimitError
	if errors.As(err, &over) {
		for _, o := range over.Overages {
			body.Overages = append(body.Overages, o.String())
		}
	}

	if status == http.StatusInternalServerError {
		if errors.Is(err, coordinator.ErrPersist) {
			logger.Error("Draft change applied but not saved", "error", err)
		} else {
			logger.Error("Request failed", "error", err)
		}
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}
