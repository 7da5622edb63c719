// Command crawler runs the fbref pipeline from the command line.
//
// Usage:
//
//	fbref-crawler crawl premier-league la-liga
//	fbref-crawler crawl --all
//	fbref-crawler extract players --url https://fbref.com/en/squads/... --selector stats_standard_9
//	fbref-crawler import-snapshots --dir data/snapshots/england/premier-league --workers 8
//	fbref-crawler refid "Bukayo Saka" Arsenal
//	fbref-crawler catalog
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
