package entity

import "time"

type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserReview is a review enriched with the title of the book it belongs to,
// as returned by the my-reviews listing.
type UserReview struct {
	Review
	BookTitle string `json:"bookTitle"`
}

// ReviewPatch distinguishes "field omitted" (nil) from "field set".
type ReviewPatch struct {
	Rating *int    `json:"rating"`
	Review *string `json:"review"`
}
