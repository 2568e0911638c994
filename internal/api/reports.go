package api

import (
	"net/http"

	"github.com/fadhilmr/gudang/internal/inventory"
	"github.com/fadhilmr/gudang/internal/model"
)

// ReportsHandler handles the point-in-time report endpoints.
type ReportsHandler struct {
	Service *inventory.Service
}

// Stock handles GET /api/reports/stock?date=YYYY-MM-DD: every barang's total
// stock as of the given date.
func (h *ReportsHandler) Stock(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		jsonError(w, http.StatusBadRequest, "date query required, e.g. ?date=2025-10-01")
		return
	}

	snapshots, err := h.Service.StockSnapshot(r.Context(), date)
	if err != nil {
		serviceError(w, err, "failed to report stock")
		return
	}
	if snapshots == nil {
		snapshots = []model.StockSnapshot{}
	}
	jsonResponse(w, http.StatusOK, snapshots)
}

// Price handles GET /api/reports/price?date=YYYY-MM-DD: the price entries
// whose effective date equals the given date exactly.
func (h *ReportsHandler) Price(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		jsonError(w, http.StatusBadRequest, "date query required, e.g. ?date=2025-10-01")
		return
	}

	snapshots, err := h.Service.PriceSnapshot(r.Context(), date)
	if err != nil {
		serviceError(w, err, "failed to report prices")
		return
	}
	if snapshots == nil {
		snapshots = []model.PriceSnapshot{}
	}
	jsonResponse(w, http.StatusOK, snapshots)
}
