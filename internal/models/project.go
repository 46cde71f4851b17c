package models

// DefaultProjectImage is used when a project is created without an image URL.
const DefaultProjectImage = "/placeholder.svg?height=300&width=500"

// Project is a showcase entry as persisted in the projects collection.
// ID is the creation timestamp in epoch milliseconds, as a decimal string.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}
