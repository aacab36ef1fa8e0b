package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/webdex"
	"github.com/poiesic/webdex/config"
	"github.com/poiesic/webdex/ingestion"
)

// Sample pages for exercising the search path locally without running
// a crawl. Each source gets the same shape of content with different
// wording, so overlap and dedup behavior are easy to observe.
var samplePages = map[string][]ingestion.Entry{
	"lytics": {
		{URL: "https://docs.lytics.example/segments", RawText: "Audience segments group users by shared behavior. Create a segment from the Segments tab, choose the behavioral criteria, and activate it to downstream destinations. Segments refresh continuously as new events arrive."},
		{URL: "https://docs.lytics.example/campaigns", RawText: "Campaigns deliver personalized experiences to audience segments. Pick a segment, choose a channel, and schedule delivery windows. Campaign membership is evaluated at send time."},
	},
	"segment": {
		{URL: "https://docs.segment.example/sources", RawText: "A source is a website, server library, or mobile SDK that sends data into the pipeline. Add a source from the workspace overview, install the snippet, and verify events in the debugger before connecting destinations."},
		{URL: "https://docs.segment.example/destinations", RawText: "Destinations receive the events your sources collect. Enable a destination, map the event fields, and replay historical data if the destination supports it. Destination filters drop events before delivery."},
	},
}

func main() {
	configPath := flag.String("config", "webdex.yaml", "path to YAML configuration file")
	flag.Parse()

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("error loading config", "err", err)
		os.Exit(1)
	}

	svc, err := webdex.New(cfg)
	if err != nil {
		slog.Error("error creating service", "err", err)
		os.Exit(1)
	}
	defer svc.Close()

	ctx := context.Background()
	for source, entries := range samplePages {
		outcomes, err := svc.IngestBatch(ctx, source, entries)
		if err != nil {
			slog.Warn("skipping source not in config", "source", source, "err", err)
			continue
		}
		for _, outcome := range outcomes {
			fmt.Printf("%s: %s (%s)\n", source, outcome.URL, outcome.Status)
		}
	}
}
