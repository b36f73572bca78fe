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

type BookHandler struct {
	books  usecase.BookRepository
	lister *usecase.BookLister
	log    zerolog.Logger
}

func NewBookHandler(books usecase.BookRepository, lister *usecase.BookLister, log zerolog.Logger) *BookHandler {
	return &BookHandler{books: books, lister: lister, log: log}
}

// List returns every book with its average rating and, when the caller
// sent a valid token, whether they already reviewed it.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	viewerID := httpx.UserIDFrom(r)

	books, err := h.lister.ListWithStats(r.Context(), viewerID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"books": books})
}

func (h *BookHandler) MyBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListByOwner(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if len(books) == 0 {
		Message(w, http.StatusAccepted, "No books on the list.")
		return
	}

	JSON(w, http.StatusOK, map[string]any{"books": books})
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			Message(w, http.StatusNotFound, "Book not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"book": book})
}

type addBookReq struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   int    `json:"year" validate:"required"`
	Genre  string `json:"genre" validate:"required"`
}

func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Message(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		ValidationFailed(w, details)
		return
	}

	book := &entity.Book{
		Title:   req.Title,
		Author:  req.Author,
		Year:    req.Year,
		Genre:   req.Genre,
		AddedBy: httpx.UserIDFrom(r),
	}
	if err := h.books.Create(r.Context(), book); err != nil {
		h.serverError(w, r, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message": "Book added successfully.",
		"book":    book,
	})
}

func (h *BookHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var patch entity.BookPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		Message(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validateBookPatch(patch); err != nil {
		Message(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.books.Update(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r), patch)
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			Message(w, http.StatusForbidden, "You are not allowed to edit this book.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Book updated successfully.",
		"book":    book,
	})
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.books.Delete(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r))
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			Message(w, http.StatusForbidden, "You are not allowed to delete this book.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	Message(w, http.StatusOK, "Book deleted successfully.")
}

// A set field must be set to something: the content invariant is that
// all four fields are non-empty, so an explicit empty value is rejected
// rather than applied.
func validateBookPatch(patch entity.BookPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return errors.New("title must not be empty")
	}
	if patch.Author != nil && strings.TrimSpace(*patch.Author) == "" {
		return errors.New("author must not be empty")
	}
	if patch.Year != nil && *patch.Year == 0 {
		return errors.New("year must not be zero")
	}
	if patch.Genre != nil && strings.TrimSpace(*patch.Genre) == "" {
		return errors.New("genre must not be empty")
	}
	return nil
}

func (h *BookHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("book handler failure")
	Message(w, http.StatusInternalServerError, "An internal error occurred.")
}
