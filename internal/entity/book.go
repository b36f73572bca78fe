package entity

import "time"

type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      int       `json:"year"`
	Genre     string    `json:"genre"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookWithStats is the read-time view of a book returned by the catalog
// listing: the stored fields plus the aggregate computed from its reviews.
type BookWithStats struct {
	Book
	AverageRating   float64 `json:"averageRating"`
	UserHasReviewed bool    `json:"userHasReviewed"`
}

// BookPatch distinguishes "field omitted" (nil) from "field set".
type BookPatch struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre"`
}
