package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"neighborhelp-backend/config"
	"neighborhelp-backend/storage"
)

// sync-assets copies a local directory of static assets into the configured
// asset storage, typically the S3 bucket the server reads /static from.
func main() {
	src := flag.String("src", "./static", "directory to upload")
	remove := flag.String("remove", "", "comma separated asset keys to delete after uploading")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dest, err := storage.NewStorageFromConfig(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	ctx := context.Background()
	count := 0

	err = filepath.WalkDir(*src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(*src, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := dest.Upload(ctx, key, f); err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		log.Printf("✓ %s", key)
		count++
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to sync assets: %v", err)
	}

	removed := 0
	for _, key := range strings.Split(*remove, ",") {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		if err := dest.Delete(ctx, key); err != nil {
			log.Fatalf("Failed to delete %s: %v", key, err)
		}
		log.Printf("✗ %s", key)
		removed++
	}

	fmt.Printf("Uploaded %d and removed %d assets in %s storage\n", count, removed, cfg.Storage.Type)
}
