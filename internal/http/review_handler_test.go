package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreview/internal/entity"
	"bookreview/internal/store/mocks"
	"bookreview/internal/testutil"
	"bookreview/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewHandlerForTest(t *testing.T) (*ReviewHandler, *mocks.MockReviewRepository, *mocks.MockBookRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	reviews := mocks.NewMockReviewRepository(ctrl)
	books := mocks.NewMockBookRepository(ctrl)
	return NewReviewHandler(reviews, books, zerolog.Nop()), reviews, books
}

func TestReviewHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		setupMock      func(reviews *mocks.MockReviewRepository)
		expectedStatus int
	}{
		{
			name: "success",
			body: map[string]any{"rating": 4, "review": "Great."},
			setupMock: func(reviews *mocks.MockReviewRepository) {
				reviews.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rev *entity.Review) error {
						assert.Equal(t, testutil.TestUser.ID, rev.UserID)
						assert.Equal(t, testutil.TestBook.ID, rev.BookID)
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rating zero rejected",
			body:           map[string]any{"rating": 0, "review": "Great."},
			setupMock:      func(*mocks.MockReviewRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rating six rejected",
			body:           map[string]any{"rating": 6, "review": "Great."},
			setupMock:      func(*mocks.MockReviewRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing text rejected",
			body:           map[string]any{"rating": 3},
			setupMock:      func(*mocks.MockReviewRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown book",
			body: map[string]any{"rating": 3, "review": "Fine."},
			setupMock: func(reviews *mocks.MockReviewRepository) {
				reviews.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, reviews, _ := newReviewHandlerForTest(t)
			tt.setupMock(reviews)

			w := httptest.NewRecorder()
			r := asUser(testutil.NewRequest(http.MethodPost, "/books/add-review/"+testutil.TestBook.ID, tt.body), testutil.TestUser.ID)
			r.SetPathValue("id", testutil.TestBook.ID)
			handler.Add(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestReviewHandler_MyReviews(t *testing.T) {
	t.Run("has reviews with book titles", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		reviews.EXPECT().
			ListByUser(gomock.Any(), testutil.TestUser.ID).
			Return([]entity.UserReview{{Review: testutil.TestReview, BookTitle: testutil.TestBook.Title}}, nil)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodGet, "/books/my-reviews", nil), testutil.TestUser.ID)
		handler.MyReviews(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeBody(w)
		listed := body["reviews"].([]interface{})
		require.Len(t, listed, 1)
		assert.Equal(t, testutil.TestBook.Title, listed[0].(map[string]interface{})["bookTitle"])
	})

	t.Run("empty signals 202", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		reviews.EXPECT().ListByUser(gomock.Any(), testutil.TestUser.ID).Return(nil, nil)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodGet, "/books/my-reviews", nil), testutil.TestUser.ID)
		handler.MyReviews(w, r)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}

func TestReviewHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		reviews.EXPECT().GetByID(gomock.Any(), testutil.TestReview.ID).Return(testutil.TestReview, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/review/"+testutil.TestReview.ID, nil)
		r.SetPathValue("id", testutil.TestReview.ID)
		handler.Get(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		reviews.EXPECT().GetByID(gomock.Any(), "missing").Return(entity.Review{}, usecase.ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/review/missing", nil)
		r.SetPathValue("id", "missing")
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReviewHandler_ListForBook(t *testing.T) {
	t.Run("returns reviews and title", func(t *testing.T) {
		handler, reviews, books := newReviewHandlerForTest(t)
		books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)
		reviews.EXPECT().ListByBook(gomock.Any(), testutil.TestBook.ID).Return([]entity.Review{testutil.TestReview}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/reviews/"+testutil.TestBook.ID, nil)
		r.SetPathValue("id", testutil.TestBook.ID)
		handler.ListForBook(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeBody(w)
		assert.Equal(t, testutil.TestBook.Title, body["bookTitle"])
	})

	t.Run("unknown book", func(t *testing.T) {
		handler, _, books := newReviewHandlerForTest(t)
		books.EXPECT().GetByID(gomock.Any(), "missing").Return(entity.Book{}, usecase.ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/reviews/missing", nil)
		r.SetPathValue("id", "missing")
		handler.ListForBook(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReviewHandler_Edit(t *testing.T) {
	t.Run("not owner gets 403", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		reviews.EXPECT().
			Update(gomock.Any(), testutil.TestReview.ID, "other-user", gomock.Any()).
			Return(entity.Review{}, usecase.ErrForbidden)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodPut, "/books/edit-review/"+testutil.TestReview.ID, map[string]any{"rating": 2}), "other-user")
		r.SetPathValue("id", testutil.TestReview.ID)
		handler.Edit(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("out of range rating rejected", func(t *testing.T) {
		handler, _, _ := newReviewHandlerForTest(t)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodPut, "/books/edit-review/"+testutil.TestReview.ID, map[string]any{"rating": 9}), testutil.TestUser.ID)
		r.SetPathValue("id", testutil.TestReview.ID)
		handler.Edit(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("partial update applies set fields", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		updated := testutil.TestReview
		updated.Rating = 2
		reviews.EXPECT().
			Update(gomock.Any(), testutil.TestReview.ID, testutil.TestUser.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, patch entity.ReviewPatch) (entity.Review, error) {
				require.NotNil(t, patch.Rating)
				assert.Equal(t, 2, *patch.Rating)
				assert.Nil(t, patch.Review)
				return updated, nil
			})

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodPut, "/books/edit-review/"+testutil.TestReview.ID, map[string]any{"rating": 2}), testutil.TestUser.ID)
		r.SetPathValue("id", testutil.TestReview.ID)
		handler.Edit(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestReviewHandler_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		reviews.EXPECT().Delete(gomock.Any(), testutil.TestReview.ID, testutil.TestUser.ID).Return(nil)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodDelete, "/books/delete-review/"+testutil.TestReview.ID, nil), testutil.TestUser.ID)
		r.SetPathValue("id", testutil.TestReview.ID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		handler, reviews, _ := newReviewHandlerForTest(t)
		reviews.EXPECT().Delete(gomock.Any(), testutil.TestReview.ID, "other-user").Return(usecase.ErrForbidden)

		w := httptest.NewRecorder()
		r := asUser(testutil.NewRequest(http.MethodDelete, "/books/delete-review/"+testutil.TestReview.ID, nil), "other-user")
		r.SetPathValue("id", testutil.TestReview.ID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
