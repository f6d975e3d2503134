package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-storefront/store"
	"go-storefront/utils"
)

// ProductController handles product catalog requests
type ProductController struct {
	Catalog *store.Catalog
}

// NewProductController creates a new ProductController
func NewProductController(catalog *store.Catalog) *ProductController {
	return &ProductController{Catalog: catalog}
}

// GetProducts returns the whole catalog
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, pc.Catalog.Read(r.Context()))
}

// UpdateProducts replaces the catalog with the posted array
func (pc *ProductController) UpdateProducts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err := pc.Catalog.Write(r.Context(), body.Products)
	if errors.Is(err, store.ErrNotArray) {
		utils.WriteError(w, http.StatusBadRequest, "Products must be an array")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Products updated successfully",
	})
}
