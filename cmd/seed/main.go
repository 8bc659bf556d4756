package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"moviedb/mongodb"
	"moviedb/pkg/config"
	"moviedb/pkg/logger"
)

const defaultDatasetURL = "https://datasets.imdbws.com"

type options struct {
	dir      string
	url      string
	download bool
	limit    int
	batch    int
	only     []string
}

func main() {
	var (
		opts options
		only string
	)
	flag.StringVar(&opts.dir, "dir", "", "Directory holding the *.tsv.gz (or *.tsv) dumps")
	flag.StringVar(&opts.url, "url", defaultDatasetURL, "Base URL of the IMDb dumps")
	flag.BoolVar(&opts.download, "download", false, "Download the dumps into a temporary directory")
	flag.IntVar(&opts.limit, "limit", 0, "Limit number of rows per dataset (0 = all)")
	flag.IntVar(&opts.batch, "batch", 1000, "Rows per insert batch")
	flag.StringVar(&only, "only", "", "Comma separated datasets to import (default all)")
	flag.Parse()
	if only != "" {
		opts.only = strings.Split(only, ",")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.New(logger.Options{}).Errorw("cannot load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := mongodb.NewConnection(ctx, mongodb.Options{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		log.Errorw("cannot open mongodb connection", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := mongodb.EnsureSchema(ctx, store); err != nil {
		log.Errorw("cannot apply schema", "error", err)
		os.Exit(1)
	}

	if opts.download {
		dir, cleanup, err := downloadAll(ctx, opts.url, selected(opts.only), log)
		if err != nil {
			log.Errorw("failed to download datasets", "error", err)
			os.Exit(1)
		}
		defer cleanup()
		opts.dir = dir
	}
	if opts.dir == "" {
		log.Errorw("nothing to import: pass -dir or -download")
		os.Exit(1)
	}

	loader := mongodb.NewLoader(store)
	for _, ds := range selected(opts.only) {
		start := time.Now()
		st, err := importDataset(ctx, loader, ds, opts)
		if err != nil {
			log.Errorw("import failed", "dataset", ds.name, "error", err)
			os.Exit(1)
		}
		log.Infow("import completed",
			"dataset", ds.name,
			"rows", st.Rows,
			"inserted", st.Inserted,
			"skipped", st.Skipped,
			"invalid", st.Invalid,
			"took", time.Since(start).String(),
		)
	}
}

// selected keeps the datasets named in only, in import order.
func selected(only []string) []dataset {
	if len(only) == 0 {
		return datasets
	}
	var out []dataset
	for _, ds := range datasets {
		for _, name := range only {
			if strings.TrimSpace(name) == ds.name {
				out = append(out, ds)
			}
		}
	}
	return out
}

func importDataset(ctx context.Context, l *mongodb.Loader, ds dataset, opts options) (stats, error) {
	path, gzipped, err := locate(opts.dir, ds.name)
	if err != nil {
		return stats{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return stats{}, err
	}
	defer f.Close()

	r, err := newTSVReader(f, gzipped)
	if err != nil {
		return stats{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := r.require(ds.columns...); err != nil {
		return stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds.load(ctx, l, r, opts.batch, opts.limit)
}

// locate prefers the gzipped dump and falls back to a plain tsv.
func locate(dir, name string) (string, bool, error) {
	gz := filepath.Join(dir, name+".tsv.gz")
	if _, err := os.Stat(gz); err == nil {
		return gz, true, nil
	}
	plain := filepath.Join(dir, name+".tsv")
	if _, err := os.Stat(plain); err == nil {
		return plain, false, nil
	}
	return "", false, fmt.Errorf("dataset %s not found in %s", name, dir)
}

func downloadAll(ctx context.Context, baseURL string, ds []dataset, log *zap.SugaredLogger) (string, func(), error) {
	if baseURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "imdb-")
	if err != nil {
		return "", func() {}, err
	}
	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	for _, d := range ds {
		file := d.name + ".tsv.gz"
		url := strings.TrimRight(baseURL, "/") + "/" + file
		log.Infow("downloading", "url", url)
		if err := downloadFile(ctx, url, filepath.Join(tmpDir, file)); err != nil {
			cleanup()
			return "", func() {}, fmt.Errorf("%s: %w", url, err)
		}
	}
	return tmpDir, cleanup, nil
}

func downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	// The dumps are large; only the context bounds the transfer.
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
