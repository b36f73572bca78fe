package http

import (
	"net/http"

	"bookreview/internal/httpx"
)

// NewRouter registers every route with its auth requirement declared at
// the route, not inside the handler. Listing and single-record reads are
// public; the book listing resolves the viewer when a token is present.
func NewRouter(authHandler *AuthHandler, bookHandler *BookHandler, reviewHandler *ReviewHandler, secret string) *http.ServeMux {
	requireAuth := httpx.AuthMiddleware(secret)
	optionalAuth := httpx.OptionalAuthMiddleware(secret)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	mux.Handle("GET /books", optionalAuth(http.HandlerFunc(bookHandler.List)))
	mux.Handle("GET /books/my-books", requireAuth(http.HandlerFunc(bookHandler.MyBooks)))
	mux.Handle("GET /books/my-reviews", requireAuth(http.HandlerFunc(reviewHandler.MyReviews)))
	mux.Handle("POST /books/add", requireAuth(http.HandlerFunc(bookHandler.Add)))
	mux.Handle("PUT /books/edit/{id}", requireAuth(http.HandlerFunc(bookHandler.Edit)))
	mux.Handle("DELETE /books/delete/{id}", requireAuth(http.HandlerFunc(bookHandler.Delete)))

	mux.Handle("POST /books/add-review/{id}", requireAuth(http.HandlerFunc(reviewHandler.Add)))
	mux.Handle("PUT /books/edit-review/{id}", requireAuth(http.HandlerFunc(reviewHandler.Edit)))
	mux.Handle("DELETE /books/delete-review/{id}", requireAuth(http.HandlerFunc(reviewHandler.Delete)))

	mux.HandleFunc("GET /books/review/{id}", reviewHandler.Get)
	mux.HandleFunc("GET /books/reviews/{id}", reviewHandler.ListForBook)
	mux.HandleFunc("GET /books/{id}", bookHandler.Get)

	return mux
}
