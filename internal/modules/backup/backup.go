// Package backup implements bulk transfer of the repository: export to one
// pretty-printed JSON document, overwrite-import from such a document, and
// a full wipe.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/portfolio-site/core/internal/modules/storage"
	"go.uber.org/zap"
)

const (
	msgInvalidFormat = "Invalid data format. The file must contain blogPosts and projects arrays."
	msgParseFailed   = "Failed to import data. The file may be corrupted or in the wrong format."
)

// Envelope is the transfer file shape.
type Envelope struct {
	BlogPosts  json.RawMessage `json:"blogPosts"`
	Projects   json.RawMessage `json:"projects"`
	ExportDate string          `json:"exportDate"`
}

// ImportResult is the caller-facing outcome of an import attempt.
type ImportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service performs bulk transfer against the storage accessor.
type Service struct {
	acc    *storage.Accessor
	site   string
	logger *zap.Logger
}

// NewService builds the transfer service. site names the export files.
func NewService(acc *storage.Accessor, site string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if site == "" {
		site = "portfolio"
	}
	return &Service{acc: acc, site: site, logger: logger}
}

// Export serializes both collections and the export timestamp as
// pretty-printed JSON. Pure read; nothing is mutated.
func (s *Service) Export() (string, error) {
	s.acc.EnsureCollections()

	posts, err := s.rawCollection(storage.KeyBlogPosts)
	if err != nil {
		s.logger.Error("failed to export data", zap.Error(err))
		return "", err
	}
	projects, err := s.rawCollection(storage.KeyProjects)
	if err != nil {
		s.logger.Error("failed to export data", zap.Error(err))
		return "", err
	}

	out, err := json.MarshalIndent(Envelope{
		BlogPosts:  posts,
		Projects:   projects,
		ExportDate: time.Now().UTC().Format(time.RFC3339Nano),
	}, "", "  ")
	if err != nil {
		s.logger.Error("failed to export data", zap.Error(err))
		return "", err
	}
	return string(out), nil
}

// rawCollection reads a collection as raw JSON, validating that it parses.
func (s *Service) rawCollection(key string) (json.RawMessage, error) {
	raw, ok, err := s.acc.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return json.RawMessage("[]"), nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(raw)); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return json.RawMessage(compact.Bytes()), nil
}

// Filename suggests the export file name: <site>-export-<YYYY-MM-DD>.json.
func (s *Service) Filename() string {
	return fmt.Sprintf("%s-export-%s.json", s.site, time.Now().Format("2006-01-02"))
}

// Import parses the document and, when both collection keys are present,
// overwrites both collections wholesale. No per-record validation is done.
// On any failure nothing is written.
func (s *Service) Import(jsonText string) ImportResult {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		s.logger.Error("failed to import data", zap.Error(err))
		return ImportResult{Success: false, Message: msgParseFailed}
	}

	posts, okPosts := doc[storage.KeyBlogPosts]
	projects, okProjects := doc[storage.KeyProjects]
	if !okPosts || !okProjects || isNull(posts) || isNull(projects) {
		return ImportResult{Success: false, Message: msgInvalidFormat}
	}

	if err := s.acc.Set(storage.KeyBlogPosts, string(posts)); err != nil {
		s.logger.Error("failed to import data", zap.Error(err))
		return ImportResult{Success: false, Message: msgParseFailed}
	}
	if err := s.acc.Set(storage.KeyProjects, string(projects)); err != nil {
		s.logger.Error("failed to import data", zap.Error(err))
		return ImportResult{Success: false, Message: msgParseFailed}
	}

	return ImportResult{
		Success: true,
		Message: fmt.Sprintf("Successfully imported %d blog posts and %d projects.",
			arrayLen(posts), arrayLen(projects)),
	}
}

// Clear overwrites both collections with empty arrays. Irreversible.
func (s *Service) Clear() bool {
	if err := s.acc.Set(storage.KeyBlogPosts, "[]"); err != nil {
		s.logger.Error("failed to clear data", zap.Error(err))
		return false
	}
	if err := s.acc.Set(storage.KeyProjects, "[]"); err != nil {
		s.logger.Error("failed to clear data", zap.Error(err))
		return false
	}
	return true
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func arrayLen(raw json.RawMessage) int {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}
