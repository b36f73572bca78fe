package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookreview/internal/entity"
	"bookreview/internal/httpx"
	"bookreview/internal/usecase"

	"github.com/rs/zerolog"
)

type ReviewHandler struct {
	reviews usecase.ReviewRepository
	books   usecase.BookRepository
	log     zerolog.Logger
}

func NewReviewHandler(reviews usecase.ReviewRepository, books usecase.BookRepository, log zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, books: books, log: log}
}

type addReviewReq struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"required"`
}

// Add records a new review for the book in the path. A user may review
// the same book more than once; each submission is a new record.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Message(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		ValidationFailed(w, details)
		return
	}

	review := &entity.Review{
		Rating: req.Rating,
		Review: req.Review,
		UserID: httpx.UserIDFrom(r),
		BookID: r.PathValue("id"),
	}
	if err := h.reviews.Create(r.Context(), review); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			Message(w, http.StatusNotFound, "Book not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	Message(w, http.StatusCreated, "Review added successfully.")
}

func (h *ReviewHandler) MyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByUser(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if len(reviews) == 0 {
		Message(w, http.StatusAccepted, "No reviews on the list.")
		return
	}

	JSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviews.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			Message(w, http.StatusNotFound, "Review not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"review": review})
}

// ListForBook returns every review of a book plus the book's title as a
// convenience field.
func (h *ReviewHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			Message(w, http.StatusNotFound, "Book not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), book.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"reviews":   reviews,
		"bookTitle": book.Title,
	})
}

func (h *ReviewHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var patch entity.ReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		Message(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validateReviewPatch(patch); err != nil {
		Message(w, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.reviews.Update(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r), patch)
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			Message(w, http.StatusForbidden, "You are not allowed to edit this review.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Review updated successfully.",
		"review":  review,
	})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.reviews.Delete(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r))
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			Message(w, http.StatusForbidden, "You are not allowed to delete this review.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	Message(w, http.StatusOK, "Review deleted successfully.")
}

func validateReviewPatch(patch entity.ReviewPatch) error {
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return errors.New("rating must be between 1 and 5")
	}
	if patch.Review != nil && strings.TrimSpace(*patch.Review) == "" {
		return errors.New("review must not be empty")
	}
	return nil
}

func (h *ReviewHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("review handler failure")
	Message(w, http.StatusInternalServerError, "An internal error occurred.")
}
