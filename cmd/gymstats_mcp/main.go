// Package main runs the gymstats MCP server over stdio (for local agent use).
// The same MCP server is also mounted on the dashboard at /mcp over HTTP,
// so you can use either: stdio (this cmd) or the dashboard URL.
package main

import (
	"context"
	"flag"
	"net"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/daybyday/internal/config"
	gymstatsmcp "github.com/2beens/daybyday/internal/gymstats/mcp"
	"github.com/2beens/daybyday/internal/gymstats/snapshot"
	"github.com/2beens/daybyday/internal/gymstats/stats"
	"github.com/2beens/daybyday/internal/gymstats/syncs"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
	"github.com/2beens/daybyday/internal/hevy"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout belongs to the MCP transport
	log.SetOutput(os.Stderr)
	_ = godotenv.Load()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	aliases, err := cfg.Aliases()
	if err != nil {
		log.Fatal(err)
	}
	categories, err := stats.NewCategories(cfg.Categories)
	if err != nil {
		log.Fatalf("categories: %v", err)
	}
	resolver := workouts.NewResolver(aliases)

	client, err := hevy.NewClient(hevy.Params{
		BaseURL:  cfg.HevyBaseURL,
		APIKey:   hevy.APIKeyFromEnv(),
		Resolver: resolver,
	})
	if err != nil {
		log.Fatalf("hevy client: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("DAYBYDAY_REDIS_PASS"),
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis: %s", err)
		}
	}()

	ctx := context.Background()
	store := snapshot.NewStore(snapshot.Params{
		Fetcher:    client,
		Redis:      rdb,
		Resolver:   resolver,
		PersistTTL: cfg.SnapshotPersistTTL(),
	})
	restored, err := store.Restore(ctx)
	if err != nil {
		log.Warnf("restore snapshot: %s", err)
	}
	if !restored {
		if _, err := store.Refresh(ctx, syncs.TriggerStartup); err != nil {
			log.Fatalf("load snapshot: %v", err)
		}
	}

	analyzer := stats.NewAnalyzer(store, stats.AnalyzerParams{
		Categories:       categories,
		AddedLoadMarkers: cfg.AddedLoadMarkers,
	})
	server := gymstatsmcp.NewServer(analyzer, nil)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
