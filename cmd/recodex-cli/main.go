// Interactive hybrid recommender over a Zomato catalog export.
//
// Usage:
//
//	recodex-cli -catalog data/zomato.csv -alpha 0.5 -seed 42
//	recodex-cli -catalog data/zomato.csv -convert data/zomato.parquet
//
// The rating history is synthetic (users 101-105) and reproducible with -seed.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/recodex/internal/logger"
	datasetrepo "github.com/kailas-cloud/recodex/internal/repository/dataset"
	datasetuc "github.com/kailas-cloud/recodex/internal/usecase/dataset"
	recommenduc "github.com/kailas-cloud/recodex/internal/usecase/recommend"
)

// Prompt fallbacks for unparseable input.
const (
	fallbackUserID = 101
	fallbackTopN   = 5
)

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		cancel()
		log.Fatal(err)
	}
}

type config struct {
	catalog  string
	format   string
	encoding string
	alpha    float64
	seed     int64
	ratings  int
	convert  string
	logLevel string
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.catalog, "catalog", "data/zomato.csv", "catalog file")
	flag.StringVar(&cfg.format, "format", "csv", "catalog format: csv or parquet")
	flag.StringVar(&cfg.encoding, "encoding", "latin1", "CSV encoding: latin1 or utf8")
	flag.Float64Var(&cfg.alpha, "alpha", 0.5, "hybrid weight of the content recommender, in [0, 1]")
	flag.Int64Var(&cfg.seed, "seed", 42, "seed for synthetic ratings and cold-start sampling (0=random)")
	flag.IntVar(&cfg.ratings, "ratings", datasetuc.DefaultSyntheticCount, "number of synthetic ratings")
	flag.StringVar(&cfg.convert, "convert", "", "write the cleaned catalog to this parquet file and exit")
	flag.StringVar(&cfg.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config, in io.Reader, out io.Writer) error {
	logger, err := logpkg.NewLogger("local", cfg.logLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	reader := datasetrepo.NewFile(cfg.catalog, datasetrepo.Format(cfg.format), datasetrepo.Encoding(cfg.encoding))

	if cfg.convert != "" {
		items, err := reader.ReadCatalog(ctx)
		if err != nil {
			return err
		}
		if err := datasetrepo.WriteParquet(cfg.convert, items); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote %d restaurants to %s\n", len(items), cfg.convert)
		return nil
	}

	source := datasetuc.New(reader, nil, datasetuc.SyntheticConfig{Count: cfg.ratings, Seed: cfg.seed})
	engine := recommenduc.New(source, recommenduc.Config{Seed: cfg.seed}, logger, nil)
	if err := engine.Rebuild(ctx); err != nil {
		return err
	}

	return interact(ctx, engine, cfg.alpha, in, out)
}

// interact runs one prompt round: list users, read a user id and a count,
// print hybrid recommendations.
func interact(ctx context.Context, engine *recommenduc.Service, alpha float64, in io.Reader, out io.Writer) error {
	users, err := engine.Users(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Known users: %s\n", joinInts(users))

	sc := bufio.NewScanner(in)
	userID := promptInt(sc, out, "Enter user ID: ", fallbackUserID)
	topN := promptInt(sc, out, "How many recommendations? ", fallbackTopN)
	if topN <= 0 {
		topN = fallbackTopN
	}

	recs, err := engine.Hybrid(ctx, userID, topN, alpha)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\nTop %d recommendations for user %d:\n", topN, userID)
	for i, rec := range recs {
		_, _ = fmt.Fprintf(out, "%2d. %s (id %d, score %.4f)\n", i+1, rec.Name, rec.RestaurantID, rec.Score)
	}
	logpkg.FromContext(ctx).Debug("Recommendations printed",
		zap.Int("user_id", userID),
		zap.Int("count", len(recs)),
	)
	return nil
}

// promptInt reads one line; anything that is not an integer yields fallback.
func promptInt(sc *bufio.Scanner, out io.Writer, prompt string, fallback int) int {
	_, _ = fmt.Fprint(out, prompt)
	if !sc.Scan() {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		_, _ = fmt.Fprintf(out, "Invalid input, using %d\n", fallback)
		return fallback
	}
	return v
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
