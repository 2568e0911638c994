package api

import (
	"errors"
	"net/http"

	"github.com/fadhilmr/gudang/internal/inventory"
	"github.com/fadhilmr/gudang/internal/model"
)

// BarangHandler handles barang CRUD, stock, price, and foto endpoints.
type BarangHandler struct {
	Service *inventory.Service
}

type createBarangRequest struct {
	Nama      string `json:"nama"`
	Stok      int    `json:"stok"`
	HargaText string `json:"harga_text"`
}

type updateBarangRequest struct {
	Nama      *string `json:"nama"`
	Stok      *int    `json:"stok"`
	HargaText *string `json:"harga_text"`
}

type adjustStockRequest struct {
	Delta *int `json:"delta"`
}

type addPriceRequest struct {
	Harga          string `json:"harga"`
	TanggalBerlaku string `json:"tanggal_berlaku"`
}

// serviceError maps the service's error kinds to HTTP responses.
func serviceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		jsonError(w, http.StatusNotFound, "barang not found")
	case inventory.IsValidation(err):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrKodeConflict):
		jsonError(w, http.StatusConflict, "kode allocation conflict, retry")
	default:
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}

// List handles GET /api/barang.
func (h *BarangHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListBarang(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list barang")
		return
	}
	if items == nil {
		items = []model.Barang{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/barang.
func (h *BarangHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBarangRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.CreateBarang(r.Context(), inventory.CreateParams{
		Nama:      req.Nama,
		Stok:      req.Stok,
		HargaText: req.HargaText,
	})
	if err != nil {
		serviceError(w, err, "failed to create barang")
		return
	}

	jsonResponse(w, http.StatusCreated, b)
}

// Get handles GET /api/barang/{id}: the barang with its full stock ledger
// and price history.
func (h *BarangHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.Service.GetBarang(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get barang")
		return
	}

	logs, err := h.Service.StockLogs(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get stock logs")
		return
	}
	if logs == nil {
		logs = []model.StockLog{}
	}

	prices, err := h.Service.Prices(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get prices")
		return
	}
	if prices == nil {
		prices = []model.Price{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"barang":     b,
		"stock_logs": logs,
		"prices":     prices,
	})
}

// Update handles PUT /api/barang/{id}. Fields absent from the body are left
// untouched; a stok field overwrites the counter without a ledger entry.
func (h *BarangHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBarangRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.UpdateBarang(r.Context(), r.PathValue("id"), inventory.UpdatePatch{
		Nama:      req.Nama,
		Stok:      req.Stok,
		HargaText: req.HargaText,
	})
	if err != nil {
		serviceError(w, err, "failed to update barang")
		return
	}

	jsonResponse(w, http.StatusOK, b)
}

// Delete handles DELETE /api/barang/{id}.
func (h *BarangHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteBarang(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, err, "failed to delete barang")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "barang deleted"})
}

// AdjustStock handles POST /api/barang/{id}/stock.
func (h *BarangHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Delta == nil {
		jsonError(w, http.StatusBadRequest, "delta required")
		return
	}

	entry, err := h.Service.AdjustStock(r.Context(), r.PathValue("id"), *req.Delta)
	if err != nil {
		serviceError(w, err, "failed to adjust stock")
		return
	}

	jsonResponse(w, http.StatusOK, entry)
}

// AddPrice handles POST /api/barang/{id}/price.
func (h *BarangHandler) AddPrice(w http.ResponseWriter, r *http.Request) {
	var req addPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.AddPrice(r.Context(), r.PathValue("id"), req.Harga, req.TanggalBerlaku)
	if err != nil {
		serviceError(w, err, "failed to add price")
		return
	}

	jsonResponse(w, http.StatusCreated, p)
}

// UploadFoto handles PUT /api/barang/{id}/foto.
func (h *BarangHandler) UploadFoto(w http.ResponseWriter, r *http.Request) {
	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("foto")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "foto file required")
		return
	}
	defer file.Close()

	if err := h.Service.SetFoto(r.Context(), r.PathValue("id"), file); err != nil {
		serviceError(w, err, "failed to save foto")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "foto uploaded"})
}

// GetFoto handles GET /api/barang/{id}/foto.
func (h *BarangHandler) GetFoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Service.GetFoto(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err, "failed to get foto")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
