package crawler

import (
	"strings"

	"github.com/mcphub/mcphub/pkg/models"
)

// categoryRule maps a keyword set to a category. Rules are tested in order;
// the first keyword hit wins.
type categoryRule struct {
	category models.Category
	keywords []string
}

// classifier is the per-kind classification strategy: either an ordered
// keyword table with a fallback, or a single fixed category.
type classifier struct {
	rules    []categoryRule
	fixed    models.Category
	fallback models.Category
}

// serverRules is the heuristic table for the server kind, in priority order.
var serverRules = []categoryRule{
	{models.CategoryDatabase, []string{"database", "db", "postgres", "sqlite", "mysql", "supabase"}},
	{models.CategoryBrowser, []string{"browser", "playwright", "puppeteer", "selenium", "web"}},
	{models.CategoryFilesystem, []string{"filesystem", "file", "disk", "storage", "s3"}},
	{models.CategoryCode, []string{"github", "gitlab", "git", "code", "repo"}},
	{models.CategoryProductivity, []string{"slack", "discord", "email", "gmail", "notion", "calendar"}},
	{models.CategoryAPI, []string{"api", "rest", "http", "openapi"}},
	{models.CategorySearch, []string{"search", "bing", "google", "brave"}},
}

// classifiers holds the strategy per tool kind. The keyword heuristic skews
// heavily toward a handful of categories on skill repositories, so the skill
// kind pins a fixed category instead of reusing it.
var classifiers = map[models.ToolKind]classifier{
	models.KindServer: {rules: serverRules, fallback: models.CategoryOther},
	models.KindSkill:  {fixed: models.CategoryProductivity},
}

// classifyRepo assigns exactly one category from the kind's strategy by
// matching keywords against the lower-cased topics, name and description.
func classifyRepo(kind models.ToolKind, topics []string, name, description string) models.Category {
	c, ok := classifiers[kind]
	if !ok {
		return models.CategoryOther
	}

	if c.fixed != "" {
		return c.fixed
	}

	parts := make([]string, 0, len(topics)+2)
	parts = append(parts, topics...)
	parts = append(parts, name, description)
	text := strings.ToLower(strings.Join(parts, " "))

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}

	return c.fallback
}
