// cmd/crawl/main.go runs the batch operations once and exits. Intended for
// cron or manual invocation:
//
//	crawl -config hub.json              # crawl both kinds, then health check
//	crawl -config hub.json -max 200     # cap results per kind
//	crawl -config hub.json -health      # health checks only
//	crawl -config hub.json -score       # scoring pass only
package main

import (
	"context"
	"flag"
	"log"

	"github.com/mcphub/mcphub/pkg/config"
	"github.com/mcphub/mcphub/pkg/db"
	"github.com/mcphub/mcphub/pkg/hub"
	"github.com/mcphub/mcphub/pkg/models"
)

func main() {
	configPath := flag.String("config", "/etc/mcphub/hub.json", "Path to config file")
	maxResults := flag.Int("max", 0, "Maximum repositories to collect per kind (0 = config default)")
	healthOnly := flag.Bool("health", false, "Run health checks only")
	scoreOnly := flag.Bool("score", false, "Run the scoring pass only")
	flag.Parse()

	var cfg config.HubConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	server := hub.NewServer(&cfg, store)
	ctx := context.Background()

	switch {
	case *healthOnly:
		summary := server.RunHealthChecks(ctx, nil)
		log.Printf("Health checks: %+v", summary)
	case *scoreOnly:
		summary := server.RecomputeAllScores(ctx)
		log.Printf("Scoring: %+v", summary)
	default:
		for _, kind := range []models.ToolKind{models.KindServer, models.KindSkill} {
			summary := server.DiscoverAndSync(ctx, kind, *maxResults)
			log.Printf("Crawl %s: %+v", kind, summary)
		}

		summary := server.RunHealthChecks(ctx, nil)
		log.Printf("Health checks: %+v", summary)
	}
}
