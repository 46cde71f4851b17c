package models

import "time"

// DefaultPostImage is used when a post is created without an image URL.
const DefaultPostImage = "/placeholder.svg?height=300&width=500"

// PostDateFormat is the human-readable creation date stamped on new posts,
// e.g. "June 5, 2025". It is display text, not the sort key.
const PostDateFormat = "January 2, 2006"

// BlogPost is a blog entry as persisted in the blogPosts collection.
type BlogPost struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Content     string   `json:"content"`
	Likes       int      `json:"likes"`
	Pinned      bool     `json:"pinned"`
	CreatedAt   int64    `json:"createdAt,omitempty"`
	LikedBy     []string `json:"likedBy"`
}

// SortTime returns the authoritative ordering timestamp in epoch
// milliseconds. Records written before CreatedAt existed fall back to
// parsing the display date; unparseable dates sort as zero.
func (p BlogPost) SortTime() int64 {
	if p.CreatedAt != 0 {
		return p.CreatedAt
	}
	t, err := time.Parse(PostDateFormat, p.Date)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// LikedByVisitor reports whether the given visitor id already liked the post.
func (p BlogPost) LikedByVisitor(visitorID string) bool {
	for _, id := range p.LikedBy {
		if id == visitorID {
			return true
		}
	}
	return false
}
