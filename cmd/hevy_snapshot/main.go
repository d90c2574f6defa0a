// Package main fetches the full workout history from Hevy once and writes the
// raw snapshot as indented JSON, to inspect what the API actually returns.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/daybyday/internal/hevy"
	"github.com/2beens/daybyday/internal/logging"
)

func main() {
	out := flag.String("out", "hevy_snapshot.json", "output file, - for stdout")
	baseURL := flag.String("base-url", hevy.DefaultBaseURL, "hevy API base url")
	timeout := flag.Duration("timeout", 5*time.Minute, "timeout for the whole fetch")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	_ = godotenv.Load()
	log.SetLevel(logging.GetLevel(*logLevel))

	client, err := hevy.NewClient(hevy.Params{
		BaseURL: *baseURL,
		APIKey:  hevy.APIKeyFromEnv(),
	})
	if err != nil {
		log.Fatalf("new hevy client: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	raw, err := client.FetchSnapshot(ctx)
	if err != nil {
		log.Fatalf("fetch snapshot: %s", err)
	}
	log.Infof("fetched %d workouts (auth: %s)", len(raw.Workouts), raw.AuthMode)

	dest := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %s", *out, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Errorf("close %s: %s", *out, err)
			}
		}()
		dest = f
	}

	enc := json.NewEncoder(dest)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		log.Errorf("write snapshot: %s", err)
		return
	}
	if *out != "-" {
		log.Infof("snapshot written to %s", *out)
	}
}
