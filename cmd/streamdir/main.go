// Command streamdir validates, classifies, and normalizes IPTV live-stream
// channel lists, sourced from a sitemap crawl, a numbered URL template, or
// a TXT/M3U file, and writes out a classified TXT+M3U pair.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/commis/streamdir/internal/category"
	"github.com/commis/streamdir/internal/channel"
	"github.com/commis/streamdir/internal/config"
	"github.com/commis/streamdir/internal/converter"
	"github.com/commis/streamdir/internal/format"
	"github.com/commis/streamdir/internal/httpclient"
	"github.com/commis/streamdir/internal/log"
	"github.com/commis/streamdir/internal/merger"
	"github.com/commis/streamdir/internal/orchestrator"
	"github.com/commis/streamdir/internal/task"
)

func main() {
	mode := flag.String("mode", "update-live", "update-live | batch-check | convert | merge")
	sitemapURL := flag.String("sitemap", "", "sitemap URL to crawl (update-live source)")
	urlTemplate := flag.String("template", "", "numbered URL template containing {i} (batch-check source)")
	batchStart := flag.Int("start", 0, "batch-check starting index")
	batchSize := flag.Int("size", 0, "batch-check number of URLs")
	batchCategory := flag.String("category", category.Uncategorized, "category hint for batch-check results")
	threads := flag.Int("threads", 0, "worker count (0 = auto)")
	checkManifest := flag.Bool("check-manifest", true, "run the full HLS manifest/segment/speed pipeline")
	inputPath := flag.String("in", "", "input file for convert mode")
	outputPath := flag.String("out", "", "output path override (defaults to STREAMDIR_OUTPUT_PATH)")
	mergeTopHosts := flag.Int("merge-top-hosts", 3, "number of hosts to keep in merge mode")
	flag.Parse()

	cfg := config.Load()
	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")

	if *outputPath == "" {
		*outputPath = cfg.OutputPath
	}

	cats := category.New()
	reg := channel.New(cats)
	reg.SetPlayback(cfg.EPGXMLTVURL)
	reg.SetCatchupSource(cfg.EPGSource)
	tasks := task.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info().Msg("shutdown signal received")
		cancel()
	}()

	orch := orchestrator.New(orchestrator.Config{
		IOIntensityFactor:  cfg.IOIntensityFactor,
		TSSegmentTestCount: cfg.TSSegmentTestCount,
		ConnectTimeout:     cfg.ConnectTimeout,
		ProbeTimeout:       cfg.ProbeTimeout,
	}, tasks, cats, reg)

	switch *mode {
	case "update-live":
		runUpdateLive(ctx, cats, reg, orch, *sitemapURL, *threads, *checkManifest, *outputPath)
	case "batch-check":
		runBatchCheck(ctx, orch, *urlTemplate, *batchCategory, *batchStart, *batchSize, *threads, *checkManifest, reg, *outputPath)
	case "convert":
		runConvert(cats, *inputPath, *outputPath)
	case "merge":
		runMerge(cats, reg, *mergeTopHosts, *outputPath)
	default:
		fmt.Fprintf(os.Stderr, "unknown -mode %q\n", *mode)
		os.Exit(2)
	}
}

func runUpdateLive(ctx context.Context, cats *category.Manager, reg *channel.Registry, orch *orchestrator.Orchestrator, sitemapURL string, threads int, checkManifest bool, outputPath string) {
	if sitemapURL != "" {
		client := httpclient.Default()
		entries, err := format.FetchSitemap(ctx, client, sitemapURL, cats.IsIgnored)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch sitemap: %v\n", err)
			os.Exit(1)
		}
		for _, e := range entries {
			reg.Add(e.CategoryHint, e.ChannelName, e.URL, "", "")
		}
	}
	taskID := orch.UpdateLive(ctx, threads, checkManifest, outputPath)
	fmt.Println(taskID)
}

func runBatchCheck(ctx context.Context, orch *orchestrator.Orchestrator, urlTemplate, categoryHint string, start, size, threads int, checkManifest bool, reg *channel.Registry, outputPath string) {
	if urlTemplate == "" || size <= 0 {
		fmt.Fprintln(os.Stderr, "batch-check requires -template and -size")
		os.Exit(2)
	}
	taskID := orch.CheckBatch(ctx, urlTemplate, categoryHint, start, size, threads, checkManifest)
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(reg.SerializeTXT()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		}
	}
	fmt.Println(taskID)
}

func runConvert(cats *category.Manager, inputPath, outputPath string) {
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "convert requires -in")
		os.Exit(2)
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	var out string
	if strings.HasPrefix(strings.TrimSpace(string(data)), "#EXTM3U") {
		out = converter.M3UToTXT(string(data), cats)
	} else {
		out = converter.TXTToM3U(string(data), cats)
	}

	if outputPath == "" {
		fmt.Println(out)
		return
	}
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}

func runMerge(cats *category.Manager, reg *channel.Registry, topN int, outputPath string) {
	var entries []merger.Entry
	reg.Each(func(group string, ch *channel.Channel) {
		for _, ep := range ch.URLs() {
			entries = append(entries, merger.Entry{Category: group, Name: ch.Name(), URL: ep.URL()})
		}
	})
	out := merger.New(cats, entries).FormatOutput(topN)
	if outputPath == "" {
		fmt.Println(out)
		return
	}
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}
