package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"medizo/middleware"
	"medizo/models"
	"medizo/store"
	"medizo/utils"
)

// ReviewController handles product reviews and their reply threads.
type ReviewController struct {
	reviews store.ReviewStore
	logger  zerolog.Logger
}

func NewReviewController(reviews store.ReviewStore, logger zerolog.Logger) *ReviewController {
	return &ReviewController{reviews: reviews, logger: logger}
}

func (rc *ReviewController) writeList(w http.ResponseWriter, reviews []models.Review) {
	if reviews == nil {
		reviews = []models.Review{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// ListAll returns every review, newest first.
func (rc *ReviewController) ListAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := rc.reviews.ListAll(r.Context())
	if err != nil {
		rc.logger.Error().Err(err).Msg("list reviews")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	rc.writeList(w, reviews)
}

// ListByProduct returns the reviews for one product, newest first.
func (rc *ReviewController) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productId"]

	reviews, err := rc.reviews.ListByProduct(r.Context(), productID)
	if err != nil {
		rc.logger.Error().Err(err).Msg("list product reviews")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	rc.writeList(w, reviews)
}

// Create posts a review as the authenticated user.
func (rc *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Title     string `json:"title"`
		Text      string `json:"text"`
		UserName  string `json:"userName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if body.ProductID == "" || body.Rating == 0 || body.Title == "" || body.Text == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		utils.WriteError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if body.UserName == "" {
		body.UserName = "Anonymous"
	}

	review := models.Review{
		ProductID: body.ProductID,
		UserID:    claims.Subject,
		UserName:  body.UserName,
		Rating:    body.Rating,
		Title:     body.Title,
		Text:      body.Text,
		Replies:   []models.ReviewReply{},
	}

	if err := rc.reviews.Create(r.Context(), &review); err != nil {
		rc.logger.Error().Err(err).Msg("create review")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, review)
}

// Reply appends a reply to a review's thread.
func (rc *ReviewController) Reply(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reviewID := mux.Vars(r)["reviewId"]

	var body struct {
		Text     string `json:"text"`
		UserName string `json:"userName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if body.Text == "" {
		utils.WriteError(w, http.StatusBadRequest, "Reply text is required")
		return
	}
	if body.UserName == "" {
		body.UserName = "Anonymous"
	}

	reply := models.ReviewReply{
		UserID:    claims.Subject,
		UserName:  body.UserName,
		Text:      body.Text,
		CreatedAt: time.Now().UTC(),
	}

	review, err := rc.reviews.AddReply(r.Context(), reviewID, reply)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Review not found")
			return
		}
		rc.logger.Error().Err(err).Msg("add reply")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, review)
}

// Delete removes a review (admin only).
func (rc *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["reviewId"]

	if err := rc.reviews.Delete(r.Context(), reviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Review not found")
			return
		}
		rc.logger.Error().Err(err).Msg("delete review")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
