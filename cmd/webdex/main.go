// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/webdex"
	"github.com/poiesic/webdex/config"
	"github.com/poiesic/webdex/fetch"
	"github.com/poiesic/webdex/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "webdex",
		Usage: "Question answering over scraped web content from multiple sources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "webdex.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Answer a question from all configured sources",
				ArgsUsage: "<query>",
				Action:    searchCommand,
			},
			{
				Name:   "ingest",
				Usage:  "Fetch and ingest pages from a URL list into one source",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Source name (must match a configured source)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "urls",
						Aliases: []string{"u"},
						Usage:   "Path to newline-separated URL list (defaults to the source's url_file)",
					},
				},
			},
			{
				Name:   "sources",
				Usage:  "List configured sources and their document counts",
				Action: sourcesCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", c.String("log-level"))
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func openService(c *cli.Context) (*webdex.Service, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	return webdex.New(cfg)
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: webdex search <query>")
	}
	query := strings.Join(c.Args().Slice(), " ")

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Search(c.Context, query)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println("No matching results found across all sources.")
		return nil
	}

	fmt.Println("Summary:")
	fmt.Println(result.Text)
	fmt.Println()
	fmt.Println("Sources:")
	for i, source := range result.Sources {
		snippet := source.Text
		if len(snippet) > 200 {
			snippet = snippet[:200] + "..."
		}
		fmt.Printf("%d. [%s] %s\n   %s\n", i+1, source.Partition, source.URL, snippet)
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	sourceName := c.String("source")
	urlFile := c.String("urls")
	if urlFile == "" {
		for _, source := range cfg.Sources {
			if source.Name == sourceName {
				urlFile = source.URLFile
			}
		}
	}
	if urlFile == "" {
		return fmt.Errorf("no URL list for source %q: pass --urls or set url_file in the config", sourceName)
	}

	urls, err := readURLList(urlFile)
	if err != nil {
		return err
	}

	svc, err := webdex.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	fetcher := fetch.NewFetcher()
	entries := make([]ingestion.Entry, 0, len(urls))
	for _, url := range urls {
		rawText, err := fetcher.Fetch(c.Context, url)
		if err != nil {
			slog.Warn("skipping URL after fetch error", "url", url, "err", err)
			continue
		}
		entries = append(entries, ingestion.Entry{URL: url, RawText: rawText})
	}

	outcomes, err := svc.IngestBatch(c.Context, sourceName, entries)
	if err != nil {
		return err
	}

	var stored, skipped, failed int
	for _, outcome := range outcomes {
		switch outcome.Status {
		case ingestion.StatusStored:
			stored++
		case ingestion.StatusSkipped:
			skipped++
		case ingestion.StatusFailed:
			failed++
			slog.Warn("ingestion failed", "url", outcome.URL, "err", outcome.Err)
		}
	}

	fmt.Printf("Fetched %d of %d URLs: %d stored, %d skipped, %d failed\n",
		len(entries), len(urls), stored, skipped, failed)
	return nil
}

func sourcesCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	for _, partition := range svc.Partitions() {
		count, err := partition.Count(c.Context)
		if err != nil {
			fmt.Printf("%s: unavailable (%v)\n", partition.Name(), err)
			continue
		}
		fmt.Printf("%s: %d documents\n", partition.Name(), count)
	}
	return nil
}

func readURLList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
