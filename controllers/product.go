package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"medizo/models"
	"medizo/store"
	"medizo/utils"
)

// ProductController handles catalog listing and admin product CRUD.
type ProductController struct {
	products store.ProductStore
	logger   zerolog.Logger
}

func NewProductController(products store.ProductStore, logger zerolog.Logger) *ProductController {
	return &ProductController{products: products, logger: logger}
}

type productListResponse struct {
	Items      []models.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Pages      int              `json:"pages"`
	Categories []string         `json:"categories"`
}

// List serves the catalog with search, category and featured filters, sorting
// and offset pagination.
func (pc *ProductController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := store.ProductQuery{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
		Limit:    parseIntParam(query.Get("limit"), store.DefaultPageLimit),
		Page:     parseIntParam(query.Get("page"), 1),
	}
	if f := query.Get("featured"); f == "true" || f == "1" {
		featured := true
		q.Featured = &featured
	}

	page, err := pc.products.Find(r.Context(), q)
	if err != nil {
		pc.logger.Error().Err(err).Msg("find products")
		utils.WriteError(w, http.StatusInternalServerError, "Server error fetching products")
		return
	}

	categories, err := pc.products.Categories(r.Context())
	if err != nil {
		pc.logger.Error().Err(err).Msg("list categories")
		utils.WriteError(w, http.StatusInternalServerError, "Server error fetching products")
		return
	}
	if categories == nil {
		categories = []string{}
	}

	utils.WriteJSON(w, http.StatusOK, productListResponse{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		Pages:      page.Pages,
		Categories: categories,
	})
}

// Get serves a single product.
func (pc *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := pc.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		pc.logger.Error().Err(err).Msg("find product")
		utils.WriteError(w, http.StatusInternalServerError, "Server error fetching product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

// Create adds a product (admin only).
func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if product.Name == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing product name")
		return
	}
	if product.Price < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Price cannot be negative")
		return
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := pc.products.Create(r.Context(), &product); err != nil {
		pc.logger.Error().Err(err).Msg("create product")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, product)
}

// Update merges the request body over an existing product (admin only).
// Fields absent from the body keep their stored values.
func (pc *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := pc.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		pc.logger.Error().Err(err).Msg("find product")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	product.ID = id
	if product.Price < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Price cannot be negative")
		return
	}

	updated, err := pc.products.Update(r.Context(), product)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		pc.logger.Error().Err(err).Msg("update product")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, updated)
}

// Delete removes a product (admin only).
func (pc *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := pc.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		pc.logger.Error().Err(err).Msg("delete product")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// parseIntParam coerces a query parameter, falling back to the default on
// anything that is not a positive integer.
func parseIntParam(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
