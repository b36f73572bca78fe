package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreview/internal/entity"
	"bookreview/internal/httpx"
	"bookreview/internal/store/mocks"
	"bookreview/internal/testutil"
	"bookreview/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookHandlerForTest(t *testing.T) (*BookHandler, *mocks.MockBookRepository, *mocks.MockReviewRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	books := mocks.NewMockBookRepository(ctrl)
	reviews := mocks.NewMockReviewRepository(ctrl)
	lister := usecase.NewBookLister(books, reviews)
	return NewBookHandler(books, lister, zerolog.Nop()), books, reviews
}

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID))
}

func TestBookHandler_List_WithStats(t *testing.T) {
	handler, books, reviews := newBookHandlerForTest(t)

	books.EXPECT().List(gomock.Any()).Return([]entity.Book{testutil.TestBook}, nil)
	reviews.EXPECT().RatingStats(gomock.Any(), testutil.TestBook.ID).Return(4.0, 2, nil)
	reviews.EXPECT().HasUserReviewed(gomock.Any(), testutil.TestBook.ID, testutil.TestUser.ID).Return(true, nil)

	w := httptest.NewRecorder()
	r := asUser(testutil.NewRequest(http.MethodGet, "/books", nil), testutil.TestUser.ID)
	handler.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeBody(w)
	listed, ok := body["books"].([]interface{})
	require.True(t, ok)
	require.Len(t, listed, 1)
	book := listed[0].(map[string]interface{})
	assert.Equal(t, 4.0, book["averageRating"])
	assert.Equal(t, true, book["userHasReviewed"])
}

func TestBookHandler_List_Anonymous(t *testing.T) {
	handler, books, reviews := newBookHandlerForTest(t)

	books.EXPECT().List(gomock.Any()).Return([]entity.Book{testutil.TestBook}, nil)
	reviews.EXPECT().RatingStats(gomock.Any(), testutil.TestBook.ID).Return(0.0, 0, nil)

	w := httptest.NewRecorder()
	handler.List(w, testutil.NewRequest(http.MethodGet, "/books", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeBody(w)
	book := body["books"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 0.0, book["averageRating"])
	assert.Equal(t, false, book["userHasReviewed"])
}

func TestBookHandler_MyBooks(t *testing.T) {
	t.Run("has books", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		books.EXPECT().ListByOwner(gomock.Any(), testutil.TestUser.ID).Return([]entity.Book{testutil.TestBook}, nil)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodGet, "/books/my-books", nil), testutil.TestUser.ID)
		handler.MyBooks(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty signals 202", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		books.EXPECT().ListByOwner(gomock.Any(), testutil.TestUser.ID).Return(nil, nil)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodGet, "/books/my-books", nil), testutil.TestUser.ID)
		handler.MyBooks(w, r)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "No books on the list.", testutil.DecodeBody(w)["message"])
	})
}

func TestBookHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/"+testutil.TestBook.ID, nil)
		r.SetPathValue("id", testutil.TestBook.ID)
		handler.Get(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeBody(w)
		book := body["book"].(map[string]interface{})
		assert.Equal(t, testutil.TestBook.Title, book["title"])
		assert.Equal(t, testutil.TestUser.ID, book["addedBy"])
	})

	t.Run("not found", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		books.EXPECT().GetByID(gomock.Any(), "missing").Return(entity.Book{}, usecase.ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/missing", nil)
		r.SetPathValue("id", "missing")
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		wantCreate     bool
		expectedStatus int
	}{
		{
			name:           "success",
			body:           map[string]any{"title": "T", "author": "A", "year": 2020, "genre": "G"},
			wantCreate:     true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			body:           map[string]any{"author": "A", "year": 2020, "genre": "G"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero year",
			body:           map[string]any{"title": "T", "author": "A", "year": 0, "genre": "G"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty genre",
			body:           map[string]any{"title": "T", "author": "A", "year": 2020, "genre": ""},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, books, _ := newBookHandlerForTest(t)
			if tt.wantCreate {
				books.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *entity.Book) error {
						assert.Equal(t, testutil.TestUser.ID, b.AddedBy)
						b.ID = "new-book-id"
						return nil
					})
			}

			w := httptest.NewRecorder()
			r := asUser(testutil.NewRequest(http.MethodPost, "/books/add", tt.body), testutil.TestUser.ID)
			handler.Add(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBookHandler_Edit(t *testing.T) {
	t.Run("not owner gets 403", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		books.EXPECT().
			Update(gomock.Any(), testutil.TestBook.ID, "other-user", gomock.Any()).
			Return(entity.Book{}, usecase.ErrForbidden)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodPut, "/books/edit/"+testutil.TestBook.ID, map[string]any{"title": "New"}), "other-user")
		r.SetPathValue("id", testutil.TestBook.ID)
		handler.Edit(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("partial update applies set fields", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		updated := testutil.TestBook
		updated.Title = "New"
		books.EXPECT().
			Update(gomock.Any(), testutil.TestBook.ID, testutil.TestUser.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, patch entity.BookPatch) (entity.Book, error) {
				require.NotNil(t, patch.Title)
				assert.Equal(t, "New", *patch.Title)
				assert.Nil(t, patch.Author)
				assert.Nil(t, patch.Year)
				assert.Nil(t, patch.Genre)
				return updated, nil
			})

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodPut, "/books/edit/"+testutil.TestBook.ID, map[string]any{"title": "New"}), testutil.TestUser.ID)
		r.SetPathValue("id", testutil.TestBook.ID)
		handler.Edit(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("explicit empty field rejected", func(t *testing.T) {
		handler, _, _ := newBookHandlerForTest(t)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodPut, "/books/edit/"+testutil.TestBook.ID, map[string]any{"title": ""}), testutil.TestUser.ID)
		r.SetPathValue("id", testutil.TestBook.ID)
		handler.Edit(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookHandler_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		books.EXPECT().Delete(gomock.Any(), testutil.TestBook.ID, testutil.TestUser.ID).Return(nil)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodDelete, "/books/delete/"+testutil.TestBook.ID, nil), testutil.TestUser.ID)
		r.SetPathValue("id", testutil.TestBook.ID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		handler, books, _ := newBookHandlerForTest(t)
		books.EXPECT().Delete(gomock.Any(), testutil.TestBook.ID, "other-user").Return(usecase.ErrForbidden)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodDelete, "/books/delete/"+testutil.TestBook.ID, nil), "other-user")
		r.SetPathValue("id", testutil.TestBook.ID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
