package github

import "time"

// Repo is the slice of a search result this system consumes.
type Repo struct {
	Name        string     `json:"name"`
	HTMLURL     string     `json:"html_url"`
	Description *string    `json:"description"`
	Stars       int        `json:"stargazers_count"`
	Forks       int        `json:"forks_count"`
	OpenIssues  int        `json:"open_issues_count"`
	Topics      []string   `json:"topics"`
	Archived    bool       `json:"archived"`
	Owner       RepoOwner  `json:"owner"`
	PushedAt    *time.Time `json:"pushed_at"`
	CreatedAt   *time.Time `json:"created_at"`
}

// RepoOwner carries the owning account's handle.
type RepoOwner struct {
	Login string `json:"login"`
}

type searchResponse struct {
	TotalCount int    `json:"total_count"`
	Items      []Repo `json:"items"`
}
