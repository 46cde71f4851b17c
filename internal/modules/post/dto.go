package post

import "github.com/portfolio-site/core/internal/models"

// CreatePostDTO carries the fields an author supplies. Required-field
// validation is the caller's job; the service only enforces slug uniqueness.
type CreatePostDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

// UpdatePostDTO patches a post; nil fields are left untouched.
type UpdatePostDTO struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Content     *string  `json:"content"`
	Date        *string  `json:"date"`
	Image       *string  `json:"image"`
	Tags        []string `json:"tags"`
	Pinned      *bool    `json:"pinned"`
}

// LikeResult reports the outcome of a like attempt. A duplicate like is a
// soft failure: Success is false, Post carries the unmodified record and
// nothing was written.
type LikeResult struct {
	Success bool             `json:"success"`
	Post    *models.BlogPost `json:"post"`
	Message string           `json:"message,omitempty"`
}
