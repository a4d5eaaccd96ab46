// Package main provides the knowledge bundle publishing tool.
// It validates a JSON knowledge file, compresses it and uploads it to R2 so
// servers can load it through KNOWLEDGE_SOURCE=r2://<key>.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/garyellow/sookmyung-chatbot-go/internal/config"
	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
	"github.com/garyellow/sookmyung-chatbot-go/internal/logger"
	"github.com/garyellow/sookmyung-chatbot-go/internal/r2client"
)

// CLI flags
var (
	inFlag     = flag.String("in", "", "Knowledge JSON file to publish (required)")
	keyFlag    = flag.String("key", "knowledge/faq.json.zst", "Object key; a .zst suffix enables compression")
	dryRunFlag = flag.Bool("dry-run", false, "Validate and encode without uploading")
	forceFlag  = flag.Bool("force", false, "Overwrite even if the object changed since it was checked")
)

// objectStore is the subset of *r2client.Client used for publishing.
type objectStore interface {
	Put(ctx context.Context, key string, body io.Reader, opts r2client.PutOptions) (string, error)
	Stat(ctx context.Context, key string) (string, error)
}

func main() {
	flag.Parse()

	if *inFlag == "" {
		_, _ = fmt.Fprintln(os.Stderr, "Usage: publish -in faq.json [-key knowledge/faq.json.zst] [-dry-run]")
		os.Exit(2)
	}

	cfg, err := config.LoadForMode(config.ToolMode)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	raw, err := os.ReadFile(*inFlag)
	if err != nil {
		log.WithError(err).Error("Failed to read knowledge file")
		os.Exit(1)
	}

	payload, entries, err := encodeBundle(raw, *keyFlag)
	if err != nil {
		log.WithError(err).Error("Invalid knowledge file")
		os.Exit(1)
	}
	log.WithField("entries", entries).
		WithField("bytes", len(payload)).
		WithField("key", *keyFlag).
		Info("Knowledge bundle encoded")

	if *dryRunFlag {
		fmt.Printf("✅ Dry run: %d entries, %d bytes for %s\n", entries, len(payload), *keyFlag)
		return
	}

	if !cfg.HasR2() {
		log.Error("R2 credentials are required to publish")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := r2client.New(ctx, cfg.R2())
	if err != nil {
		log.WithError(err).Error("Failed to create R2 client")
		os.Exit(1)
	}

	etag, err := publish(ctx, client, *keyFlag, payload, *forceFlag)
	if err != nil {
		log.WithError(err).Error("Publish failed")
		os.Exit(1)
	}

	log.WithField("etag", etag).Info("Knowledge bundle published")
	fmt.Printf("\n✅ Published %d entries to r2://%s (etag %s)\n", entries, *keyFlag, etag)
}

// encodeBundle validates raw as a knowledge table and returns its canonical
// encoding, zstd-compressed when key ends in ".zst".
func encodeBundle(raw []byte, key string) ([]byte, int, error) {
	table, err := knowledge.Parse(raw)
	if err != nil {
		return nil, 0, err
	}

	data, err := table.Marshal()
	if err != nil {
		return nil, 0, fmt.Errorf("encode: %w", err)
	}
	if !strings.HasSuffix(key, ".zst") {
		return data, table.Len(), nil
	}

	var buf bytes.Buffer
	if err := r2client.Compress(&buf, bytes.NewReader(data)); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), table.Len(), nil
}

// publish uploads payload and confirms the stored object carries the ETag
// returned by the upload. Unless force is set, the write only succeeds if the
// object is unchanged since it was checked, so concurrent publishers cannot
// silently overwrite each other.
func publish(ctx context.Context, store objectStore, key string, payload []byte, force bool) (string, error) {
	opts := r2client.PutOptions{ContentType: "application/json"}
	if strings.HasSuffix(key, ".zst") {
		opts.ContentType = "application/zstd"
	}

	if !force {
		current, err := store.Stat(ctx, key)
		switch {
		case errors.Is(err, r2client.ErrNotFound):
			opts.IfAbsent = true
		case err != nil:
			return "", fmt.Errorf("check existing object: %w", err)
		default:
			opts.IfMatch = current
		}
	}

	etag, err := store.Put(ctx, key, bytes.NewReader(payload), opts)
	if err != nil {
		return "", err
	}

	stored, err := store.Stat(ctx, key)
	if err != nil {
		return "", fmt.Errorf("verify upload: %w", err)
	}
	if etag != "" && stored != etag {
		return "", errors.New("verify upload: etag mismatch")
	}
	return stored, nil
}
