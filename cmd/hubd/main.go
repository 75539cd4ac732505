// cmd/hubd/main.go is the long-running MCPHub daemon: it crawls the search
// provider, probes tool liveness, and rescores the directory on their
// configured intervals.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/mcphub/mcphub/pkg/config"
	"github.com/mcphub/mcphub/pkg/db"
	"github.com/mcphub/mcphub/pkg/hub"
	"github.com/mcphub/mcphub/pkg/lifecycle"
)

func main() {
	configPath := flag.String("config", "/etc/mcphub/hub.json", "Path to config file")
	flag.Parse()

	var cfg config.HubConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	server := hub.NewServer(&cfg, store)

	if err := lifecycle.Run(context.Background(), "hubd", server); err != nil {
		log.Fatalf("Service failed: %v", err)
	}
}
