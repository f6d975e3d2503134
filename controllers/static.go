package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"go-storefront/store"
	"go-storefront/utils"
)

// StaticController serves the public site: pages, assets and uploads
type StaticController struct {
	Pages        *store.Pages
	files        http.Handler
	uploadPrefix string
	uploads      http.Handler
}

// NewStaticController creates a new StaticController over the pages' root.
// Uploaded images are served from their own directory, which need not sit
// inside the public root.
func NewStaticController(pages *store.Pages, uploads *store.Uploads) *StaticController {
	prefix := strings.TrimSuffix(uploads.URLPrefix(), "/") + "/"
	return &StaticController{
		Pages:        pages,
		files:        http.FileServer(http.Dir(pages.Root())),
		uploadPrefix: prefix,
		uploads:      http.StripPrefix(prefix, http.FileServer(http.Dir(uploads.Dir()))),
	}
}

// UploadPrefix is the path prefix Uploads answers under
func (sc *StaticController) UploadPrefix() string {
	return sc.uploadPrefix
}

// Index serves the storefront home page
func (sc *StaticController) Index(w http.ResponseWriter, r *http.Request) {
	sc.servePage(w, r, "index.html")
}

// Page serves /{page}.html when that page exists in the public root
func (sc *StaticController) Page(w http.ResponseWriter, r *http.Request) {
	sc.servePage(w, r, mux.Vars(r)["page"]+".html")
}

// Assets serves any other public file. Directory listings are not exposed.
func (sc *StaticController) Assets(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/") {
		http.NotFound(w, r)
		return
	}
	sc.files.ServeHTTP(w, r)
}

// Uploads serves stored images. Directory listings are not exposed.
func (sc *StaticController) Uploads(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/") {
		http.NotFound(w, r)
		return
	}
	sc.uploads.ServeHTTP(w, r)
}

// Health reports liveness
func (sc *StaticController) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (sc *StaticController) servePage(w http.ResponseWriter, r *http.Request, name string) {
	if !sc.Pages.Servable(name) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(sc.Pages.Root(), name))
}
