// Package project implements the project showcase repository.
package project

import (
	"strconv"
	"time"

	"github.com/portfolio-site/core/internal/models"
	"github.com/portfolio-site/core/internal/modules/storage"
	"go.uber.org/zap"
)

// CreateProjectDTO carries the fields supplied for a new project.
type CreateProjectDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	GithubURL   string   `json:"githubUrl"`
	LiveURL     string   `json:"liveUrl"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

// UpdateProjectDTO patches a project; nil fields are left untouched.
type UpdateProjectDTO struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	GithubURL   *string  `json:"githubUrl"`
	LiveURL     *string  `json:"liveUrl"`
	Tags        []string `json:"tags"`
	Featured    *bool    `json:"featured"`
}

// Service handles project business logic.
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

// ListAll returns every project in collection order. Read failures degrade
// to an empty list.
func (s *Service) ListAll() []models.Project {
	s.acc.EnsureCollections()
	projects, err := s.acc.Projects()
	if err != nil {
		s.logger.Error("failed to read projects", zap.Error(err))
		return []models.Project{}
	}
	return projects
}

// ListFeatured returns featured projects in collection order.
func (s *Service) ListFeatured() []models.Project {
	s.acc.EnsureCollections()
	projects, err := s.acc.Projects()
	if err != nil {
		s.logger.Error("failed to read featured projects", zap.Error(err))
		return []models.Project{}
	}
	featured := []models.Project{}
	for _, p := range projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// Create appends a project. The id is the creation time in epoch
// milliseconds as a decimal string; two creations within the same
// millisecond would collide, matching upstream behavior.
func (s *Service) Create(dto CreateProjectDTO) (*models.Project, error) {
	s.acc.EnsureCollections()
	projects, err := s.acc.Projects()
	if err != nil {
		s.logger.Error("failed to create project", zap.Error(err))
		return nil, err
	}

	image := dto.Image
	if image == "" {
		image = models.DefaultProjectImage
	}
	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}
	p := models.Project{
		ID:          strconv.FormatInt(time.Now().UnixMilli(), 10),
		Title:       dto.Title,
		Description: dto.Description,
		Image:       image,
		GithubURL:   dto.GithubURL,
		LiveURL:     dto.LiveURL,
		Tags:        tags,
		Featured:    dto.Featured,
	}

	if err := s.acc.SaveProjects(append(projects, p)); err != nil {
		s.logger.Error("failed to create project", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// Update patches a project by id. Returns (nil, nil) when the id is unknown.
func (s *Service) Update(id string, dto UpdateProjectDTO) (*models.Project, error) {
	s.acc.EnsureCollections()
	projects, err := s.acc.Projects()
	if err != nil {
		s.logger.Error("failed to update project", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	idx := indexOf(projects, id)
	if idx < 0 {
		return nil, nil
	}

	p := &projects[idx]
	if dto.Title != nil {
		p.Title = *dto.Title
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.Image != nil {
		p.Image = *dto.Image
	}
	if dto.GithubURL != nil {
		p.GithubURL = *dto.GithubURL
	}
	if dto.LiveURL != nil {
		p.LiveURL = *dto.LiveURL
	}
	if dto.Tags != nil {
		p.Tags = dto.Tags
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
	}

	if err := s.acc.SaveProjects(projects); err != nil {
		s.logger.Error("failed to update project", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	updated := projects[idx]
	return &updated, nil
}

// ToggleFeatured flips the featured flag. Nil when the id is unknown.
func (s *Service) ToggleFeatured(id string) (*models.Project, error) {
	s.acc.EnsureCollections()
	projects, err := s.acc.Projects()
	if err != nil {
		s.logger.Error("failed to toggle featured", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	idx := indexOf(projects, id)
	if idx < 0 {
		return nil, nil
	}
	projects[idx].Featured = !projects[idx].Featured

	if err := s.acc.SaveProjects(projects); err != nil {
		s.logger.Error("failed to toggle featured", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	updated := projects[idx]
	return &updated, nil
}

// Delete removes the project and returns true once the write lands, matched
// or not.
func (s *Service) Delete(id string) bool {
	s.acc.EnsureCollections()
	projects, err := s.acc.Projects()
	if err != nil {
		s.logger.Error("failed to delete project", zap.String("id", id), zap.Error(err))
		return false
	}

	remaining := projects[:0:0]
	for _, p := range projects {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	if err := s.acc.SaveProjects(remaining); err != nil {
		s.logger.Error("failed to delete project", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}

func indexOf(projects []models.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}
