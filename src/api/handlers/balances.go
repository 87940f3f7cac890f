package handlers

import (
	"context"
	"net/http"

	"financialamigo/src/schemas"
	"financialamigo/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAccountBalances(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	dates, err := dateRange(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	balances, err := h.Controller.GetAccountBalances(ctx, currentUser(r), accountID, dates)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, balances, http.StatusOK)
}

func (h *Handler) UpsertAccountBalance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	date, err := utils.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.HandleErrors(w, r, utils.BadRequest(err.Error()))
		return
	}
	var req schemas.BalanceUpsert
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	balance, err := h.Controller.UpsertAccountBalance(ctx, currentUser(r), accountID, date, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, balance, http.StatusOK)
}
