package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"medizo/controllers"
	"medizo/middleware"
	"medizo/utils"
)

// RegisterRoutes sets up all the routes for the application under /api.
func RegisterRoutes(
	router *mux.Router,
	auth *controllers.AuthController,
	adminAuth *controllers.AdminAuthController,
	products *controllers.ProductController,
	orders *controllers.OrderController,
	reviews *controllers.ReviewController,
	contact *controllers.ContactController,
	pingMessage string,
) {
	api := router.PathPrefix("/api").Subrouter()

	// Health
	api.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"message": pingMessage})
	}).Methods("GET")

	// User auth
	api.HandleFunc("/auth/signup", auth.Signup).Methods("POST")
	api.HandleFunc("/auth/login", auth.Login).Methods("POST")
	userAuth := api.PathPrefix("/auth").Subrouter()
	userAuth.Use(middleware.RequireUser)
	userAuth.HandleFunc("/me", auth.Me).Methods("GET")

	// Public catalog
	api.HandleFunc("/products", products.List).Methods("GET")
	api.HandleFunc("/products/{id}", products.Get).Methods("GET")

	// Admin product CRUD
	adminProducts := api.PathPrefix("/admin/products").Subrouter()
	adminProducts.Use(middleware.RequireAdmin)
	adminProducts.HandleFunc("", products.Create).Methods("POST")
	adminProducts.HandleFunc("/{id}", products.Update).Methods("PUT")
	adminProducts.HandleFunc("/{id}", products.Delete).Methods("DELETE")

	// Admin auth & back-office
	api.HandleFunc("/admin/login", adminAuth.Login).Methods("POST")
	api.HandleFunc("/admin/verify", adminAuth.Verify).Methods("POST")
	adminArea := api.PathPrefix("/admin").Subrouter()
	adminArea.Use(middleware.RequireAdmin)
	adminArea.HandleFunc("/me", adminAuth.Me).Methods("GET")
	adminArea.HandleFunc("/users", adminAuth.Users).Methods("GET")

	// Orders
	api.HandleFunc("/orders/quote", orders.Quote).Methods("POST")
	adminOrders := api.PathPrefix("/orders/admin").Subrouter()
	adminOrders.Use(middleware.RequireAdmin)
	adminOrders.HandleFunc("/list", orders.AdminList).Methods("GET")
	adminOrders.HandleFunc("/{id}/status", orders.UpdateStatus).Methods("PATCH")
	userOrders := api.PathPrefix("/orders").Subrouter()
	userOrders.Use(middleware.RequireUser)
	userOrders.HandleFunc("", orders.Create).Methods("POST")
	userOrders.HandleFunc("", orders.ListMine).Methods("GET")

	// Reviews
	api.HandleFunc("/reviews", reviews.ListAll).Methods("GET")
	api.HandleFunc("/reviews/product/{productId}", reviews.ListByProduct).Methods("GET")
	userReviews := api.PathPrefix("/reviews").Subrouter()
	userReviews.Use(middleware.RequireUser)
	userReviews.HandleFunc("", reviews.Create).Methods("POST")
	userReviews.HandleFunc("/{reviewId}/reply", reviews.Reply).Methods("POST")
	adminReviews := api.PathPrefix("/reviews").Subrouter()
	adminReviews.Use(middleware.RequireAdmin)
	adminReviews.HandleFunc("/{reviewId}", reviews.Delete).Methods("DELETE")

	// Contact form relay
	api.HandleFunc("/contact", contact.Send).Methods("POST")
}
