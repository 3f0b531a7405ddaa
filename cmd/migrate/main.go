// Command migrate transforms an ACF Pro export CSV into a GeoDirectory
// import CSV. The transformed rows go to -out (or stdout), and summary
// progress goes to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gotostcroix/geodir-migrate/internal/adapter/addresscache"
	"github.com/gotostcroix/geodir-migrate/internal/adapter/csvfile"
	"github.com/gotostcroix/geodir-migrate/internal/adapter/httpadapter"
	kafkaadapter "github.com/gotostcroix/geodir-migrate/internal/adapter/kafka"
	"github.com/gotostcroix/geodir-migrate/internal/config"
	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/observability"
	"github.com/gotostcroix/geodir-migrate/internal/pipeline"
)

// testModeRows caps output in -test mode.
const testModeRows = 5

func main() {
	var (
		acfPath = flag.String("acf", "acf_export.csv", "input ACF export CSV file")
		outPath = flag.String("out", "", "output GeoDirectory import CSV file (default: stdout)")

		testMode = flag.Bool("test", false, "test mode: only process the first 5 rows")

		mapping        = flag.Bool("mapping", false, "display field mappings and exit")
		listCategories = flag.Bool("list-categories", false, "list all unique categories from the input and exit")
		listTags       = flag.Bool("list-tags", false, "list all unique tags from the input and exit")
		listLayouts    = flag.Bool("list-layouts", false, "list all unique layouts from the input and exit")

		categoryFilter = flag.String("category", "", "only transform rows matching these categories (comma-separated)")
		tagsFilter     = flag.String("tags", "", "only transform rows matching these tags (comma-separated)")
		layoutsFilter  = flag.String("layouts", "", "only transform rows matching these layouts (comma-separated)")

		skipGeocoding = flag.Bool("skip-geocoding", false, "pin every record to the St. Croix center coordinates")
		fixedLat      = flag.String("lat", "", "fixed latitude for all records (overrides -skip-geocoding)")
		fixedLng      = flag.String("lng", "", "fixed longitude for all records (overrides -skip-geocoding)")

		useAddressCache = flag.Bool("use-address-cache", false, "load street addresses from the curated cache file")
		filterBB        = flag.Bool("filter-bb", false, "strip Beaver Builder tags from post content")
		defaultAddress  = flag.Bool("enable-default-address", false, `use "123 King Street" when the street address is empty`)
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	taxonomy, err := domain.LoadTaxonomyMap(cfg.MappingFile)
	if err != nil {
		logger.Error("failed to load taxonomy mapping", "file", cfg.MappingFile, "error", err)
		os.Exit(1)
	}

	// Info modes print and exit without transforming anything.
	switch {
	case *mapping:
		displayFieldMappings(taxonomy)
		return
	case *listCategories:
		exitOnError(listUniqueValues(*acfPath, "Categories"))
		return
	case *listTags:
		exitOnError(listUniqueValues(*acfPath, "Tags"))
		return
	case *listLayouts:
		exitOnError(listUniqueValues(*acfPath, "acf_template_layout"))
		return
	}

	metrics := observability.NewMetrics()

	var addresses map[string]string
	if *useAddressCache {
		cache, found, err := addresscache.Load(cfg.AddressCacheFile)
		if err != nil {
			logger.Error("failed to load address cache", "file", cfg.AddressCacheFile, "error", err)
			os.Exit(1)
		}
		if !found || len(cache) == 0 {
			logger.Warn("address cache not found or empty", "file", cfg.AddressCacheFile)
		} else {
			logger.Info("loaded address cache", "file", cfg.AddressCacheFile, "addresses", len(cache))
		}
		addresses = cache
	}

	// -lat/-lng pin all records to the given point; -skip-geocoding pins
	// them to the island center. Otherwise each record resolves through
	// the gazetteer.
	opts := pipeline.Options{
		FilterBuilderTags: *filterBB,
		UseAddressCache:   *useAddressCache,
		UseDefaultAddress: *defaultAddress,
	}
	if *fixedLat != "" || *fixedLng != "" || *skipGeocoding {
		opts.UseFixedCoords = true
		opts.FixedLat = *fixedLat
		opts.FixedLng = *fixedLng
		if opts.FixedLat == "" && *skipGeocoding {
			opts.FixedLat = domain.DefaultCoordinates.Lat
		}
		if opts.FixedLng == "" && *skipGeocoding {
			opts.FixedLng = domain.DefaultCoordinates.Lng
		}
	}

	reader, err := csvfile.NewReader(*acfPath)
	if err != nil {
		logger.Error("failed to open input", "file", *acfPath, "error", err)
		os.Exit(1)
	}
	defer reader.Close()

	writer, err := csvfile.NewWriter(*outPath)
	if err != nil {
		logger.Error("failed to open output", "file", *outPath, "error", err)
		os.Exit(1)
	}

	loaders := []pipeline.Loader{writer}

	var sink *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		sink = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, sink)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	}

	transformer := pipeline.NewListingTransformer(taxonomy, addresses, cfg.FallbackTermID, opts, metrics)
	filter := pipeline.NewRowFilter(*categoryFilter, *tagsFilter, *layoutsFilter)

	limit := 0
	if *testMode {
		limit = testModeRows
	}

	p := pipeline.New(reader, transformer, loaders, filter, limit, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.MetricsAddr != "" {
		srv = httpadapter.NewServer(cfg.MetricsAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	report, runErr := p.Run(ctx)

	if err := writer.Close(); err != nil {
		logger.Error("output close error", "error", err)
		os.Exit(1)
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Error("kafka sink close error", "error", err)
		}
	}
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	logger.Info("migration complete",
		"rows_read", report.RowsRead,
		"rows_written", report.RowsWritten,
		"rows_skipped", report.RowsSkipped,
		"row_errors", report.RowErrors,
	)

	if unmapped := transformer.UnmappedCategories(); len(unmapped) > 0 {
		logger.Warn("unmapped categories fell back to the default term", "names", unmapped)
	}
	if unmapped := transformer.UnmappedTags(); len(unmapped) > 0 {
		logger.Warn("unmapped tags fell back to the default term", "names", unmapped)
	}

	if runErr != nil {
		logger.Error("migration failed", "error", runErr)
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
