package handlers

import (
	"context"
	"net/http"

	"financialamigo/src/schemas"
)

func (h *Handler) GetAllAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accounts, err := h.Controller.GetAllAccounts(ctx, currentUser(r))
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, accounts, http.StatusOK)
}

func (h *Handler) GetAccountByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	account, err := h.Controller.GetAccountByID(ctx, currentUser(r), id)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, account, http.StatusOK)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.AccountCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	account, err := h.Controller.CreateAccount(ctx, currentUser(r), &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, account, http.StatusOK)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	var req schemas.AccountUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	account, err := h.Controller.UpdateAccount(ctx, currentUser(r), id, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, account, http.StatusOK)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	if err := h.Controller.DeleteAccount(ctx, currentUser(r), id); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, schemas.Success("Account deleted successfully"), http.StatusOK)
}
