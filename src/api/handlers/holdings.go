package handlers

import (
	"context"
	"net/http"
)

func (h *Handler) GetAllHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	holdings, err := h.Controller.GetAllHoldings(ctx, currentUser(r))
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) GetAccountHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	holdings, err := h.Controller.GetAccountHoldings(ctx, currentUser(r), accountID)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, holdings, http.StatusOK)
}
