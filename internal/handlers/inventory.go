package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/stocksentry/stocksentry/internal/api"
	"github.com/stocksentry/stocksentry/internal/database"
	"github.com/stocksentry/stocksentry/internal/middleware"
	"github.com/stocksentry/stocksentry/internal/services"
)

// InventoryHandler serves the product, batch and check endpoints.
type InventoryHandler struct {
	inventory *services.InventoryService
}

func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// SetupRoutes sets up inventory routes
func (h *InventoryHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /inventory/products", h.handleListProducts)
	mux.HandleFunc("POST /inventory/products", h.handleCreateProduct)
	mux.HandleFunc("GET /inventory/products/{id}", h.handleGetProduct)
	mux.HandleFunc("PUT /inventory/products/{id}", h.handleUpdateProduct)
	mux.HandleFunc("DELETE /inventory/products/{id}", h.handleDeleteProduct)

	mux.HandleFunc("GET /inventory/batches", h.handleListBatches)
	mux.HandleFunc("POST /inventory/batches", h.handleCreateBatch)
	mux.HandleFunc("PUT /inventory/batches/{id}", h.handleUpdateBatch)
	mux.HandleFunc("DELETE /inventory/batches/{id}", h.handleDeleteBatch)

	mux.HandleFunc("GET /inventory/checks", h.handleListChecks)
	mux.HandleFunc("POST /inventory/checks", h.handleCreateCheck)
	mux.HandleFunc("PUT /inventory/checks/{id}", h.handleUpdateCheck)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func respondInventoryError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, services.ErrNotFound) {
		api.RespondError(w, http.StatusNotFound, "Record not found", nil)
		return
	}
	log.Printf("InventoryHandler: failed to %s: %v", action, err)
	api.RespondError(w, http.StatusInternalServerError, "Failed to "+action, err)
}

func (h *InventoryHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	p := api.ParsePagination(r)
	products, total, err := h.inventory.ListProducts(p.Offset(), p.PerPage)
	if err != nil {
		respondInventoryError(w, "list products", err)
		return
	}
	api.RespondData(w, http.StatusOK, api.NewPaginated(products, p, total))
}

func (h *InventoryHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.CreateProductRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	product := &database.Product{SKU: req.SKU, Name: req.Name, Unit: unit}
	if err := h.inventory.CreateProduct(product); err != nil {
		respondInventoryError(w, "create product", err)
		return
	}
	api.RespondData(w, http.StatusCreated, product)
}

func (h *InventoryHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	product, err := h.inventory.GetProduct(id)
	if err != nil {
		respondInventoryError(w, "get product", err)
		return
	}
	api.RespondData(w, http.StatusOK, product)
}

func (h *InventoryHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	var req api.UpdateProductRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	product := &database.Product{ID: id, SKU: req.SKU, Name: req.Name, Unit: req.Unit}
	if err := h.inventory.UpdateProduct(product); err != nil {
		respondInventoryError(w, "update product", err)
		return
	}
	api.RespondData(w, http.StatusOK, product)
}

func (h *InventoryHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	if err := h.inventory.DeleteProduct(id); err != nil {
		respondInventoryError(w, "delete product", err)
		return
	}
	api.RespondNoContent(w)
}

func (h *InventoryHandler) handleListBatches(w http.ResponseWriter, r *http.Request) {
	p := api.ParsePagination(r)
	batches, total, err := h.inventory.ListBatches(p.Offset(), p.PerPage)
	if err != nil {
		respondInventoryError(w, "list batches", err)
		return
	}
	api.RespondData(w, http.StatusOK, api.NewPaginated(batches, p, total))
}

func (h *InventoryHandler) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	var req api.CreateBatchRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}
	if req.Quantity.IsNegative() {
		api.RespondValidationError(w, map[string]string{"quantity": "must not be negative"})
		return
	}

	batch := &database.InventoryBatch{
		ProductID:  req.ProductID,
		BatchNo:    req.BatchNo,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
		Location:   req.Location,
	}
	if err := h.inventory.CreateBatch(batch); err != nil {
		respondInventoryError(w, "create batch", err)
		return
	}
	api.RespondData(w, http.StatusCreated, batch)
}

func (h *InventoryHandler) handleUpdateBatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid batch id", nil)
		return
	}
	var req api.UpdateBatchRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}
	if req.Quantity.IsNegative() {
		api.RespondValidationError(w, map[string]string{"quantity": "must not be negative"})
		return
	}

	batch := &database.InventoryBatch{
		ID:         id,
		BatchNo:    req.BatchNo,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
		Location:   req.Location,
	}
	if err := h.inventory.UpdateBatch(batch); err != nil {
		respondInventoryError(w, "update batch", err)
		return
	}
	api.RespondData(w, http.StatusOK, batch)
}

func (h *InventoryHandler) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid batch id", nil)
		return
	}
	if err := h.inventory.DeleteBatch(id); err != nil {
		respondInventoryError(w, "delete batch", err)
		return
	}
	api.RespondNoContent(w)
}

func (h *InventoryHandler) handleListChecks(w http.ResponseWriter, r *http.Request) {
	p := api.ParsePagination(r)
	checks, total, err := h.inventory.ListChecks(p.Offset(), p.PerPage)
	if err != nil {
		respondInventoryError(w, "list checks", err)
		return
	}
	api.RespondData(w, http.StatusOK, api.NewPaginated(checks, p, total))
}

func (h *InventoryHandler) handleCreateCheck(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCheckRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	createdBy := req.CreatedBy
	if user := middleware.GetUserFromContext(r.Context()); user != "" {
		createdBy = user
	}
	check := &database.InventoryCheck{
		Status:    database.CheckStatusPending,
		CheckDate: req.CheckDate,
		CreatedBy: createdBy,
		Notes:     req.Notes,
	}
	if err := h.inventory.CreateCheck(check); err != nil {
		respondInventoryError(w, "create check", err)
		return
	}
	api.RespondData(w, http.StatusCreated, check)
}

func (h *InventoryHandler) handleUpdateCheck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid check id", nil)
		return
	}
	var req api.UpdateCheckRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	check := &database.InventoryCheck{
		ID:        id,
		Status:    database.CheckStatus(req.Status),
		CheckDate: req.CheckDate,
		Notes:     req.Notes,
	}
	if err := h.inventory.UpdateCheck(check); err != nil {
		respondInventoryError(w, "update check", err)
		return
	}
	api.RespondData(w, http.StatusOK, check)
}
