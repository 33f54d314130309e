package models

import "time"

// ReviewReply is a threaded reply under a review.
type ReviewReply struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Review is a product review with an optional reply thread.
type Review struct {
	ID        string        `json:"_id,omitempty"`
	ProductID string        `json:"productId"`
	UserID    string        `json:"userId"`
	UserName  string        `json:"userName"`
	Rating    int           `json:"rating"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	Replies   []ReviewReply `json:"replies"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
