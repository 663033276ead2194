// Command server runs the pictogram analysis API: it tokenizes phrases,
// resolves each token to a pictogram via the database, the static corpus,
// or model-assisted disambiguation, and serves the result over HTTP.
//
// Configuration comes from a YAML file (CONFIG_PATH, default ./config.yaml)
// and environment variables.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/openaac/pictoapi/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
