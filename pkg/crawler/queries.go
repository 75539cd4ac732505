package crawler

import "github.com/mcphub/mcphub/pkg/models"

// Fixed query batteries per tool kind. The queries deliberately overlap
// (topic tags plus free-text name/description matches); the discoverer
// deduplicates across them by canonical URL.
var queryBatteries = map[models.ToolKind][]string{
	models.KindServer: {
		"topic:mcp-server",
		"topic:model-context-protocol",
		"mcp server in:name,description",
		"model context protocol server in:name,description",
		"mcp-server in:name",
	},
	models.KindSkill: {
		"topic:claude-skill",
		"topic:claude-skills",
		"claude skill in:name,description",
		"SKILL.md in:readme",
	},
}
