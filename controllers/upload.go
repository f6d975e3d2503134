package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go-storefront/store"
	"go-storefront/utils"
)

// Multipart framing allowance on top of the file bytes themselves
const multipartOverhead = 64 << 10

// UploadController stores product images posted by the console
type UploadController struct {
	Uploads *store.Uploads
	Logger  *utils.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(uploads *store.Uploads, logger *utils.Logger) *UploadController {
	return &UploadController{Uploads: uploads, Logger: logger.WithComponent("uploads")}
}

// UploadImage stores the single file posted as "image"
func (uc *UploadController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !uc.parseForm(w, r, store.MaxUploadSize+multipartOverhead) {
		return
	}

	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	up, err := uc.Uploads.Save("image", headers[0])
	if err != nil {
		uc.writeUploadError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"imageUrl": up.ImageURL,
		"filename": up.Filename,
	})
}

// UploadMultipleImages stores up to ten files posted as "images"
func (uc *UploadController) UploadMultipleImages(w http.ResponseWriter, r *http.Request) {
	if !uc.parseForm(w, r, store.MaxUploadFiles*(store.MaxUploadSize+multipartOverhead)) {
		return
	}

	ups, err := uc.Uploads.SaveAll("images", r.MultipartForm.File["images"])
	if errors.Is(err, store.ErrNoFile) {
		utils.WriteError(w, http.StatusBadRequest, "No files uploaded")
		return
	}
	if err != nil {
		uc.writeUploadError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"images":  ups,
	})
}

func (uc *UploadController) parseForm(w http.ResponseWriter, r *http.Request, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	err := r.ParseMultipartForm(32 << 20)
	if err == nil {
		return true
	}

	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
		utils.WriteError(w, http.StatusBadRequest, store.ErrTooLarge.Error())
		return false
	}
	utils.WriteError(w, http.StatusBadRequest, "No file uploaded")
	return false
}

func (uc *UploadController) writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrTooLarge):
		utils.WriteError(w, http.StatusBadRequest, store.ErrTooLarge.Error())
	case errors.Is(err, store.ErrNotImage):
		utils.WriteError(w, http.StatusBadRequest, store.ErrNotImage.Error())
	case errors.Is(err, store.ErrTooManyFiles):
		utils.WriteError(w, http.StatusBadRequest, store.ErrTooManyFiles.Error())
	default:
		uc.Logger.Errorw("Error saving upload", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to upload image")
	}
}
