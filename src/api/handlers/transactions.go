package handlers

import (
	"context"
	"fmt"
	"net/http"

	"financialamigo/src/schemas"
	"financialamigo/src/services"
	"financialamigo/src/utils"

	"github.com/google/uuid"
)

// optionalAccountID reads the account_id query filter.
func optionalAccountID(r *http.Request) (*uuid.UUID, error) {
	value := r.URL.Query().Get("account_id")
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, utils.BadRequest("Invalid account_id")
	}
	return &id, nil
}

func (h *Handler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := optionalAccountID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	transactions, err := h.Controller.GetAllTransactions(ctx, currentUser(r), accountID)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, transactions, http.StatusOK)
}

func (h *Handler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	transaction, err := h.Controller.GetTransactionByID(ctx, currentUser(r), id)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.TransactionCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	transaction, err := h.Controller.CreateTransaction(ctx, currentUser(r), &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	var req schemas.TransactionUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	transaction, err := h.Controller.UpdateTransaction(ctx, currentUser(r), id, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	if err := h.Controller.DeleteTransaction(ctx, currentUser(r), id); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, schemas.Success("Transaction deleted successfully"), http.StatusOK)
}

// ExportTransactions streams the caller's transactions as an xlsx (default) or
// csv attachment.
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	format := services.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = services.ExportXLSX
	}
	contentType, err := format.ContentType()
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	accountID, err := optionalAccountID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	content, err := h.Controller.ExportTransactions(ctx, currentUser(r), accountID, format)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="transactions.%s"`, format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
