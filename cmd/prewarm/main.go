package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"crowdshield/config"
	"crowdshield/pkg/gps"
	"crowdshield/pkg/graph"
	"crowdshield/pkg/kv"
	"crowdshield/pkg/observability"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

const prewarmRadiusM = 1500

// prewarm fetches and caches the walking network around every supported
// state center so the first live request after a deploy avoids the network
// round trip.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, "text")

	cache, err := kv.Open(cfg.CacheDir, logger)
	if err != nil {
		logger.Error("failed to open graph cache", "dir", cfg.CacheDir, "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	provider := graph.NewProvider(cfg.OverpassURL, cfg.GraphFetchTimeout, logger)

	states := make([]string, 0, len(gps.StateWaypoints))
	for state := range gps.StateWaypoints {
		states = append(states, state)
	}
	sort.Strings(states)

	fmt.Println("wait until graph prewarm complete...")
	bar := progressbar.NewOptions(len(states),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/1][reset] Caching state walking networks..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	ctx := context.Background()
	for _, state := range states {
		center := gps.StateWaypoints[state]
		g := provider.Obtain(ctx, true, center, prewarmRadiusM)
		cache.Put(center, prewarmRadiusM, g)
		logger.Info("state graph cached", "state", state,
			"source", string(g.Source()), "nodes", g.NodeCount(), "edges", g.EdgeCount())
		bar.Add(1)
	}
	fmt.Println("")
	logger.Info("prewarm complete", "states", len(states), "dir", cfg.CacheDir)
}
