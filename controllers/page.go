package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/store"
	"go-storefront/utils"
)

// PageController lets the console read and edit HTML pages
type PageController struct {
	Pages  *store.Pages
	Logger *utils.Logger
}

// NewPageController creates a new PageController
func NewPageController(pages *store.Pages, logger *utils.Logger) *PageController {
	return &PageController{Pages: pages, Logger: logger.WithComponent("pages")}
}

// ListPages returns the editable page names
func (pc *PageController) ListPages(w http.ResponseWriter, r *http.Request) {
	files, err := pc.Pages.List(r.Context())
	if err != nil {
		pc.Logger.Errorw("Error listing HTML files", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to read HTML files")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string][]string{"files": files})
}

// GetPage returns one page's raw HTML
func (pc *PageController) GetPage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	content, err := pc.Pages.Read(r.Context(), name)
	if errors.Is(err, store.ErrPageNotFound) {
		utils.WriteError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		pc.Logger.Errorw("Error reading HTML file", "filename", name, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"content":  content,
		"filename": name,
	})
}

// UpdatePage overwrites one page's raw HTML
func (pc *PageController) UpdatePage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var body struct {
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == nil {
		utils.WriteError(w, http.StatusBadRequest, "Content is required")
		return
	}

	err := pc.Pages.Write(r.Context(), name, *body.Content)
	if errors.Is(err, store.ErrPageNotFound) {
		utils.WriteError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		pc.Logger.Errorw("Error writing HTML file", "filename", name, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "File updated successfully",
	})
}
