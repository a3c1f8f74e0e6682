package client

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeRun = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// responseFileName derives the saved response name from the effective URL
// and the response content type.
func responseFileName(rawURL, contentType string) string {
	if rawURL == "" {
		rawURL = "no-url"
	}

	return unsafeRun.ReplaceAllString(rawURL, "_") + "." + extension(contentType)
}

func extension(contentType string) string {
	switch {
	case strings.Contains(contentType, "json"):
		return "json"
	case strings.Contains(contentType, "javascript"):
		return "js"
	default:
		return "html"
	}
}

// writeAtomic writes data to a temp file in the same directory as
// destPath and renames it over destPath. On any error the temp file is
// removed.
func writeAtomic(destPath string, data []byte, logger *slog.Logger) error {
	file, err := os.CreateTemp(filepath.Dir(destPath), ".xfer-response-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	var successful bool
	defer func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("defer closing temp file", "error", err)
		}
		if !successful {
			if err := os.Remove(file.Name()); err != nil {
				logger.Error("failed to remove temp file", "error", err)
			}
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(file.Name(), destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	successful = true

	return nil
}
