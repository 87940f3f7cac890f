package handlers

import (
	"context"
	"net/http"

	"financialamigo/src/schemas"
)

func (h *Handler) GetAllBenchmarks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	benchmarks, err := h.Controller.GetAllBenchmarks(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, benchmarks, http.StatusOK)
}

func (h *Handler) CreateBenchmark(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.BenchmarkCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	benchmark, err := h.Controller.CreateBenchmark(ctx, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, benchmark, http.StatusOK)
}

func (h *Handler) GetBenchmarkValues(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	dates, err := dateRange(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	values, err := h.Controller.GetBenchmarkValues(ctx, id, dates)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, values, http.StatusOK)
}

func (h *Handler) AddBenchmarkValue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	id, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	var req schemas.BenchmarkValueCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	value, err := h.Controller.AddBenchmarkValue(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, value, http.StatusOK)
}

func (h *Handler) GetAccountBenchmarks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	links, err := h.Controller.GetAccountBenchmarks(ctx, currentUser(r), accountID)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, links, http.StatusOK)
}

func (h *Handler) LinkBenchmark(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	var req schemas.PortfolioBenchmarkCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	link, err := h.Controller.LinkBenchmark(ctx, currentUser(r), accountID, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, link, http.StatusOK)
}

func (h *Handler) UnlinkBenchmark(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	accountID, err := urlUUID(r, "id")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	linkID, err := urlUUID(r, "linkID")
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	if err := h.Controller.UnlinkBenchmark(ctx, currentUser(r), accountID, linkID); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, schemas.Success("Benchmark unlinked successfully"), http.StatusOK)
}
