package routes

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/session"
	"go-storefront/store"
	"go-storefront/utils"
)

// Dependencies are the pieces the HTTP surface is assembled from
type Dependencies struct {
	PasswordHash   string
	Sessions       session.Store
	Catalog        *store.Catalog
	Pages          *store.Pages
	Uploads        *store.Uploads
	Logger         *utils.Logger
	Metrics        *middleware.Metrics // nil disables /metrics
	AllowedOrigins []string
}

// New builds the storefront handler with middleware and CORS applied
func New(deps Dependencies) http.Handler {
	authController := controllers.NewAuthController(deps.PasswordHash, deps.Sessions, deps.Logger, deps.Metrics)
	productController := controllers.NewProductController(deps.Catalog)
	pageController := controllers.NewPageController(deps.Pages, deps.Logger)
	uploadController := controllers.NewUploadController(deps.Uploads, deps.Logger)
	staticController := controllers.NewStaticController(deps.Pages, deps.Uploads)

	router := mux.NewRouter()
	router.Use(middleware.Logging(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
		router.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	}

	requireAuth := middleware.RequireAuth(deps.Sessions, deps.Logger)
	RegisterRoutes(router, authController, productController, pageController, uploadController, staticController, requireAuth)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})(router)
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, authController *controllers.AuthController, productController *controllers.ProductController, pageController *controllers.PageController, uploadController *controllers.UploadController, staticController *controllers.StaticController, requireAuth mux.MiddlewareFunc) {
	// Public routes
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")
	router.HandleFunc("/healthz", staticController.Health).Methods("GET")

	// Console routes
	console := router.NewRoute().Subrouter()
	console.Use(requireAuth)
	console.HandleFunc("/products", productController.GetProducts).Methods("GET")
	console.HandleFunc("/products", productController.UpdateProducts).Methods("POST")
	console.HandleFunc("/html-files", pageController.ListPages).Methods("GET")
	console.HandleFunc("/html-content/{name}", pageController.GetPage).Methods("GET")
	console.HandleFunc("/html-content/{name}", pageController.UpdatePage).Methods("POST")
	console.HandleFunc("/upload-image", uploadController.UploadImage).Methods("POST")
	console.HandleFunc("/upload-multiple-images", uploadController.UploadMultipleImages).Methods("POST")

	// Storefront
	router.HandleFunc("/", staticController.Index).Methods("GET", "HEAD")
	router.HandleFunc("/{page}.html", staticController.Page).Methods("GET", "HEAD")
	router.PathPrefix(staticController.UploadPrefix()).HandlerFunc(staticController.Uploads).Methods("GET", "HEAD")
	router.PathPrefix("/").HandlerFunc(staticController.Assets).Methods("GET", "HEAD")
}
