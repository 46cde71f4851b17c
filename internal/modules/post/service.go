// Package post implements the blog post repository over the storage
// accessor: CRUD, pin toggling, visitor-deduplicated likes and search.
package post

import (
	"errors"
	"strings"
	"time"

	"github.com/portfolio-site/core/internal/models"
	"github.com/portfolio-site/core/internal/modules/storage"
	"go.uber.org/zap"
)

// ErrDuplicateSlug is returned when a new title normalizes to a slug that
// is already taken. Nothing is written in that case.
var ErrDuplicateSlug = errors.New("a blog post with this slug already exists")

const (
	msgAlreadyLiked = "You've already liked this post"
	msgPostNotFound = "Post not found"
	msgLikeFailed   = "An error occurred"
)

// Service handles blog post business logic.
type Service struct {
	acc    *storage.Accessor
	logger *zap.Logger
}

func NewService(acc *storage.Accessor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{acc: acc, logger: logger}
}

// ListAll returns every post in collection order. Read failures degrade to
// an empty list.
func (s *Service) ListAll() []models.BlogPost {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to read blog posts", zap.Error(err))
		return []models.BlogPost{}
	}
	return posts
}

// ListPinned returns pinned posts in collection order.
func (s *Service) ListPinned() []models.BlogPost {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to read pinned blog posts", zap.Error(err))
		return []models.BlogPost{}
	}
	pinned := []models.BlogPost{}
	for _, p := range posts {
		if p.Pinned {
			pinned = append(pinned, p)
		}
	}
	return pinned
}

// GetBySlug returns the post or nil when absent (or unreadable).
func (s *Service) GetBySlug(slug string) *models.BlogPost {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to read blog post", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	for i := range posts {
		if posts[i].Slug == slug {
			p := posts[i]
			return &p
		}
	}
	return nil
}

// Create derives the slug from the title, stamps creation metadata and
// appends the post. The whole collection is written back as one Set, so no
// partial state is observable through the same store.
func (s *Service) Create(dto CreatePostDTO) (*models.BlogPost, error) {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to create blog post", zap.Error(err))
		return nil, err
	}

	slug := Slugify(dto.Title)
	for _, p := range posts {
		if p.Slug == slug {
			return nil, ErrDuplicateSlug
		}
	}

	now := time.Now()
	image := dto.Image
	if image == "" {
		image = models.DefaultPostImage
	}
	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}
	newPost := models.BlogPost{
		Slug:        slug,
		Title:       dto.Title,
		Description: dto.Description,
		Content:     dto.Content,
		Date:        now.Format(models.PostDateFormat),
		Image:       image,
		Tags:        tags,
		Likes:       0,
		Pinned:      false,
		CreatedAt:   now.UnixMilli(),
		LikedBy:     []string{},
	}

	if err := s.acc.SavePosts(append(posts, newPost)); err != nil {
		s.logger.Error("failed to create blog post", zap.Error(err))
		return nil, err
	}
	return &newPost, nil
}

// Update patches a post by slug. Returns (nil, nil) when the slug is
// unknown; storage failures are returned so the caller can show feedback.
func (s *Service) Update(slug string, dto UpdatePostDTO) (*models.BlogPost, error) {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to update blog post", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	idx := indexOf(posts, slug)
	if idx < 0 {
		return nil, nil
	}

	p := &posts[idx]
	if dto.Title != nil {
		p.Title = *dto.Title
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.Content != nil {
		p.Content = *dto.Content
	}
	if dto.Date != nil {
		p.Date = *dto.Date
	}
	if dto.Image != nil {
		p.Image = *dto.Image
	}
	if dto.Tags != nil {
		p.Tags = dto.Tags
	}
	if dto.Pinned != nil {
		p.Pinned = *dto.Pinned
	}

	if err := s.acc.SavePosts(posts); err != nil {
		s.logger.Error("failed to update blog post", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	updated := posts[idx]
	return &updated, nil
}

// TogglePinned flips the pin flag. Safe to call repeatedly; nil when the
// slug is unknown.
func (s *Service) TogglePinned(slug string) (*models.BlogPost, error) {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to toggle pinned", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	idx := indexOf(posts, slug)
	if idx < 0 {
		return nil, nil
	}
	posts[idx].Pinned = !posts[idx].Pinned

	if err := s.acc.SavePosts(posts); err != nil {
		s.logger.Error("failed to toggle pinned", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	updated := posts[idx]
	return &updated, nil
}

// Like increments the like counter once per visitor. The counter and the
// likedBy set are updated in the same collection write or not at all.
func (s *Service) Like(slug string) LikeResult {
	s.acc.EnsureCollections()
	visitorID := s.acc.VisitorID()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to like blog post", zap.String("slug", slug), zap.Error(err))
		return LikeResult{Success: false, Message: msgLikeFailed}
	}

	idx := indexOf(posts, slug)
	if idx < 0 {
		return LikeResult{Success: false, Message: msgPostNotFound}
	}

	if posts[idx].LikedByVisitor(visitorID) {
		unchanged := posts[idx]
		return LikeResult{Success: false, Post: &unchanged, Message: msgAlreadyLiked}
	}

	posts[idx].Likes++
	posts[idx].LikedBy = append(posts[idx].LikedBy, visitorID)

	if err := s.acc.SavePosts(posts); err != nil {
		s.logger.Error("failed to like blog post", zap.String("slug", slug), zap.Error(err))
		return LikeResult{Success: false, Message: msgLikeFailed}
	}
	updated := posts[idx]
	return LikeResult{Success: true, Post: &updated}
}

// HasLiked reports whether the current visitor already liked the post.
func (s *Service) HasLiked(slug string) bool {
	visitorID := s.acc.VisitorID()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to check like state", zap.String("slug", slug), zap.Error(err))
		return false
	}
	idx := indexOf(posts, slug)
	if idx < 0 {
		return false
	}
	return posts[idx].LikedByVisitor(visitorID)
}

// Delete removes the post and returns true once the write lands, whether or
// not anything matched.
func (s *Service) Delete(slug string) bool {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to delete blog post", zap.String("slug", slug), zap.Error(err))
		return false
	}

	remaining := posts[:0:0]
	for _, p := range posts {
		if p.Slug != slug {
			remaining = append(remaining, p)
		}
	}
	if err := s.acc.SavePosts(remaining); err != nil {
		s.logger.Error("failed to delete blog post", zap.String("slug", slug), zap.Error(err))
		return false
	}
	return true
}

// Search matches the query case-insensitively against title, description
// and tags. An empty query returns everything.
func (s *Service) Search(query string) []models.BlogPost {
	s.acc.EnsureCollections()
	posts, err := s.acc.Posts()
	if err != nil {
		s.logger.Error("failed to search blog posts", zap.Error(err))
		return []models.BlogPost{}
	}
	if query == "" {
		return posts
	}

	q := strings.ToLower(query)
	matched := []models.BlogPost{}
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			anyTagContains(p.Tags, q) {
			matched = append(matched, p)
		}
	}
	return matched
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func indexOf(posts []models.BlogPost, slug string) int {
	for i := range posts {
		if posts[i].Slug == slug {
			return i
		}
	}
	return -1
}
