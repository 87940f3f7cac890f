package handlers

import (
	"context"
	"net/http"

	"financialamigo/src/schemas"
)

func (h *Handler) UpdateUserSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.UserSettingsUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	user, err := h.Controller.UpdateUserSettings(ctx, currentUser(r), &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, schemas.NewUserResponse(user), http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	if err := h.Controller.DeleteUser(ctx, currentUser(r)); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, schemas.Success("User deleted successfully"), http.StatusOK)
}
