package thumbs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Category is the renderer family responsible for a source file.
type Category int

const (
	CategoryUnsupported Category = iota
	CategoryImage
	CategoryVideo
	CategoryPDF
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".avif": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".webm": true, ".mkv": true,
}

// Categorize maps a source file to its renderer family by extension.
func Categorize(sourcePath string) Category {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	switch {
	case imageExtensions[ext]:
		return CategoryImage
	case videoExtensions[ext]:
		return CategoryVideo
	case ext == ".pdf":
		return CategoryPDF
	default:
		return CategoryUnsupported
	}
}

// Service derives and caches one preview image per asset id. The cache is
// fully reconstructible from (assetID, sourcePath), and "no thumbnail" is a
// valid state: renderer failures never propagate to the write that triggered
// generation.
type Service struct {
	cacheDir     string
	ffmpegPath   string
	pdftoppmPath string
	timeout      time.Duration
	logger       *slog.Logger
}

// NewService creates the cache directory if needed and returns the service.
func NewService(cacheDir, ffmpegPath, pdftoppmPath string, timeout time.Duration) (*Service, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Service{
		cacheDir:     cacheDir,
		ffmpegPath:   ffmpegPath,
		pdftoppmPath: pdftoppmPath,
		timeout:      timeout,
		logger:       slog.Default(),
	}, nil
}

// CachePath returns the deterministic cache location for an asset id.
func (s *Service) CachePath(assetID string) string {
	return filepath.Join(s.cacheDir, assetID+".jpg")
}

// Generate renders a preview for the asset into the cache and returns its
// path. Unsupported types, renderer failures, timeouts and missing binaries
// all yield "" with any partial output removed. Re-invocation is idempotent:
// the same deterministic path is overwritten.
func (s *Service) Generate(ctx context.Context, assetID, sourcePath string) string {
	out := s.CachePath(assetID)

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var cmd *exec.Cmd
	switch Categorize(sourcePath) {
	case CategoryImage:
		cmd = exec.CommandContext(cctx, s.ffmpegPath,
			"-y", "-i", sourcePath,
			"-vf", "scale='min(480,iw)':-2",
			"-frames:v", "1", out)
	case CategoryVideo:
		cmd = exec.CommandContext(cctx, s.ffmpegPath,
			"-y", "-ss", "00:00:01", "-i", sourcePath,
			"-vf", "scale='min(480,iw)':-2",
			"-frames:v", "1", out)
	case CategoryPDF:
		// pdftoppm appends .jpg to the prefix itself
		prefix := strings.TrimSuffix(out, ".jpg")
		cmd = exec.CommandContext(cctx, s.pdftoppmPath,
			"-jpeg", "-f", "1", "-singlefile", "-scale-to", "480",
			sourcePath, prefix)
	default:
		return ""
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		s.logger.Warn("thumbnail renderer failed",
			"asset_id", assetID,
			"source", sourcePath,
			"error", err,
			"output", truncateOutput(output))
		_ = os.Remove(out)
		return ""
	}

	// A renderer can exit 0 without producing output (e.g. empty video stream)
	if _, err := os.Stat(out); err != nil {
		s.logger.Warn("thumbnail renderer produced no output", "asset_id", assetID, "source", sourcePath)
		return ""
	}
	return out
}

// GetExisting returns the cached preview path if one exists. It never
// triggers generation.
func (s *Service) GetExisting(assetID string) string {
	out := s.CachePath(assetID)
	if _, err := os.Stat(out); err != nil {
		return ""
	}
	return out
}

// Invalidate deletes the cached preview. Absence is success.
func (s *Service) Invalidate(assetID string) {
	if err := os.Remove(s.CachePath(assetID)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to invalidate thumbnail", "asset_id", assetID, "error", err)
	}
}

func truncateOutput(output []byte) string {
	const limit = 300
	text := strings.TrimSpace(string(output))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
