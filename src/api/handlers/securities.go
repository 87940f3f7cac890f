package handlers

import (
	"context"
	"net/http"

	"financialamigo/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllSecurities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	securities, err := h.Controller.GetAllSecurities(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, securities, http.StatusOK)
}

func (h *Handler) GetSecurity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	security, err := h.Controller.GetSecurity(ctx, chi.URLParam(r, "symbol"))
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, security, http.StatusOK)
}

func (h *Handler) UpsertSecurity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.SecurityUpsert
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	security, err := h.Controller.UpsertSecurity(ctx, chi.URLParam(r, "symbol"), &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, security, http.StatusOK)
}

func (h *Handler) GetHistoricalPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	dates, err := dateRange(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	prices, err := h.Controller.GetHistoricalPrices(ctx, chi.URLParam(r, "symbol"), dates)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, prices, http.StatusOK)
}

func (h *Handler) AddHistoricalPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.HistoricalPriceCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	price, err := h.Controller.AddHistoricalPrice(ctx, chi.URLParam(r, "symbol"), &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, price, http.StatusOK)
}

func (h *Handler) GetFXRates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	dates, err := dateRange(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	query := r.URL.Query()
	rates, err := h.Controller.GetFXRates(ctx, query.Get("from_currency"), query.Get("to_currency"), dates)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, rates, http.StatusOK)
}

func (h *Handler) AddFXRate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.FXRateCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	rate, err := h.Controller.AddFXRate(ctx, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, rate, http.StatusOK)
}
