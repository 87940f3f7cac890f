package handlers

import (
	"context"
	"net/http"

	"financialamigo/src/schemas"
)

func (h *Handler) GetAccountCashTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	rows, err := h.Controller.GetAccountCashTransactions(ctx, currentUser(r), accountID)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, rows, http.StatusOK)
}

func (h *Handler) CreateCashTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	var req schemas.CashTransactionCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	row, err := h.Controller.CreateCashTransaction(ctx, currentUser(r), accountID, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, row, http.StatusOK)
}

func (h *Handler) GetCashTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	row, err := h.Controller.GetCashTransactionByID(ctx, currentUser(r), id)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, row, http.StatusOK)
}

func (h *Handler) UpdateCashTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	var req schemas.CashTransactionUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	row, err := h.Controller.UpdateCashTransaction(ctx, currentUser(r), id, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, row, http.StatusOK)
}

func (h *Handler) DeleteCashTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	if err := h.Controller.DeleteCashTransaction(ctx, currentUser(r), id); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, schemas.Success("Cash transaction deleted successfully"), http.StatusOK)
}
