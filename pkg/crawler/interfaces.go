// Package crawler pkg/crawler/interfaces.go
package crawler

import (
	"context"

	"github.com/mcphub/mcphub/pkg/github"
)

//go:generate mockgen -destination=mock_crawler.go -package=crawler github.com/mcphub/mcphub/pkg/crawler Searcher

// Searcher pages through one provider search query. *github.Client is the
// production implementation.
type Searcher interface {
	SearchRepositories(ctx context.Context, query string, maxResults, tokenAttempt int) ([]github.Repo, error)
}
