package thumbs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeStub creates an executable shell script standing in for a renderer
// binary. Every stub sees the output path as its last argument.
func writeStub(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	script := "#!/bin/sh\nfor last; do :; done\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write stub %s: %v", name, err)
	}
	return path
}

func newTestService(t *testing.T, ffmpeg, pdftoppm string, timeout time.Duration) *Service {
	t.Helper()
	svc, err := NewService(t.TempDir(), ffmpeg, pdftoppm, timeout)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"ad.jpg", CategoryImage},
		{"ad.JPEG", CategoryImage},
		{"banner.png", CategoryImage},
		{"banner.webp", CategoryImage},
		{"spot.mp4", CategoryVideo},
		{"spot.MOV", CategoryVideo},
		{"spot.mkv", CategoryVideo},
		{"brochure.pdf", CategoryPDF},
		{"notes.txt", CategoryUnsupported},
		{"archive.zip", CategoryUnsupported},
		{"noext", CategoryUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Categorize(tt.path); got != tt.want {
				t.Errorf("Categorize(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGenerateUnsupported(t *testing.T) {
	svc := newTestService(t, "ffmpeg", "pdftoppm", time.Second)

	if got := svc.Generate(context.Background(), "a1", "notes.txt"); got != "" {
		t.Errorf("expected empty path for unsupported type, got %q", got)
	}
	if _, err := os.Stat(svc.CachePath("a1")); !os.IsNotExist(err) {
		t.Errorf("expected no cache file, stat err = %v", err)
	}
}

func TestGenerateSuccess(t *testing.T) {
	ffmpeg := writeStub(t, "ffmpeg", `echo thumb > "$last"`)
	pdftoppm := writeStub(t, "pdftoppm", `echo thumb > "$last.jpg"`)
	svc := newTestService(t, ffmpeg, pdftoppm, 5*time.Second)

	tests := []struct {
		name    string
		assetID string
		source  string
	}{
		{"image", "img-1", "ad.jpg"},
		{"video", "vid-1", "spot.mp4"},
		{"pdf", "pdf-1", "brochure.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Generate(context.Background(), tt.assetID, tt.source)
			want := svc.CachePath(tt.assetID)
			if got != want {
				t.Fatalf("Generate() = %q, want %q", got, want)
			}
			if _, err := os.Stat(want); err != nil {
				t.Errorf("cache file missing: %v", err)
			}
		})
	}
}

// A renderer failure yields "" and leaves no partial output behind.
func TestGenerateRendererFailure(t *testing.T) {
	ffmpeg := writeStub(t, "ffmpeg", `echo partial > "$last"`+"\nexit 1")
	svc := newTestService(t, ffmpeg, "pdftoppm", 5*time.Second)

	if got := svc.Generate(context.Background(), "a1", "ad.jpg"); got != "" {
		t.Errorf("expected empty path on renderer failure, got %q", got)
	}
	if _, err := os.Stat(svc.CachePath("a1")); !os.IsNotExist(err) {
		t.Errorf("expected partial output removed, stat err = %v", err)
	}
}

func TestGenerateMissingBinary(t *testing.T) {
	svc := newTestService(t, "/nonexistent/ffmpeg", "/nonexistent/pdftoppm", time.Second)

	if got := svc.Generate(context.Background(), "a1", "ad.jpg"); got != "" {
		t.Errorf("expected empty path for missing binary, got %q", got)
	}
}

func TestGenerateTimeout(t *testing.T) {
	ffmpeg := writeStub(t, "ffmpeg", "sleep 5")
	svc := newTestService(t, ffmpeg, "pdftoppm", 100*time.Millisecond)

	start := time.Now()
	if got := svc.Generate(context.Background(), "a1", "ad.jpg"); got != "" {
		t.Errorf("expected empty path on timeout, got %q", got)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timeout did not take effect, elapsed %v", elapsed)
	}
}

// A renderer exiting 0 without output still counts as no thumbnail.
func TestGenerateNoOutput(t *testing.T) {
	ffmpeg := writeStub(t, "ffmpeg", "true")
	svc := newTestService(t, ffmpeg, "pdftoppm", time.Second)

	if got := svc.Generate(context.Background(), "a1", "ad.jpg"); got != "" {
		t.Errorf("expected empty path when renderer produced nothing, got %q", got)
	}
}

func TestGetExistingAndInvalidate(t *testing.T) {
	svc := newTestService(t, "ffmpeg", "pdftoppm", time.Second)

	if got := svc.GetExisting("a1"); got != "" {
		t.Errorf("expected no cached thumbnail, got %q", got)
	}

	path := svc.CachePath("a1")
	if err := os.WriteFile(path, []byte("thumb"), 0644); err != nil {
		t.Fatalf("failed to seed cache file: %v", err)
	}
	if got := svc.GetExisting("a1"); got != path {
		t.Errorf("GetExisting() = %q, want %q", got, path)
	}

	svc.Invalidate("a1")
	if got := svc.GetExisting("a1"); got != "" {
		t.Errorf("expected cache invalidated, got %q", got)
	}
	// Invalidating an absent entry is a no-op
	svc.Invalidate("a1")
}
