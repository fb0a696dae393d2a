package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/lotes-map/internal/domain"
	"github.com/msomdec/lotes-map/internal/service"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// PlotHandler handles the plot endpoints.
type PlotHandler struct {
	plots *service.PlotService
}

// NewPlotHandler creates a new PlotHandler.
func NewPlotHandler(plots *service.PlotService) *PlotHandler {
	return &PlotHandler{plots: plots}
}

// HandleList returns every plot.
// GET /lotes
func (h *PlotHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.plots.List(r.Context()))
}

// HandleCreate adds a plot.
// POST /lotes
// Request:  {"name":"...","estado":"...","coords":[...],"altura":...}
// Response: 201 + plot
func (h *PlotHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[domain.NewPlot](w, r)
	if !ok {
		return
	}

	plot, err := h.plots.Create(r.Context(), req)
	if err != nil {
		slog.Error("create plot", "error", err)
		writeError(w, http.StatusInternalServerError, "no se pudo guardar el lote")
		return
	}

	writeJSON(w, http.StatusCreated, plot)
}

// HandleUpdate applies a partial update. Reserving without an explicit
// reservedBy attributes the plot to the signed-in user.
// POST /lotes/update/{id}
// Request:  {"name":"...","estado":"...","altura":...,"reservedBy":"..."}
// Response: {"ok":true}
func (h *PlotHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[domain.PlotUpdate](w, r)
	if !ok {
		return
	}

	if err := h.plots.Update(r.Context(), r.PathValue("id"), req, IdentityFromContext(r.Context())); err != nil {
		slog.Error("update plot", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "no se pudo guardar el lote")
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// HandleDelete removes the given plots.
// POST /lotes/delete
// Request:  {"ids":["..."]}
// Response: {"ok":true,"deleted":["..."]}
func (h *PlotHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[deleteRequest](w, r)
	if !ok {
		return
	}

	deleted, err := h.plots.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		slog.Error("delete plots", "error", err)
		writeError(w, http.StatusInternalServerError, "no se pudieron borrar los lotes")
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{OK: true, Deleted: deleted})
}

// HandleReset discards every plot.
// POST /reset
func (h *PlotHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.plots.ResetAll(r.Context()); err != nil {
		slog.Error("reset plots", "error", err)
		writeError(w, http.StatusInternalServerError, "no se pudo reiniciar")
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// HandleSignals sends the current plots as a datastar signal patch.
// GET /lotes/signals
func (h *PlotHandler) HandleSignals(w http.ResponseWriter, r *http.Request) {
	plots := h.plots.List(r.Context())

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(map[string]any{"lotes": plots}); err != nil {
		slog.Error("patch plot signals", "error", err)
	}
}
