package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
)

const maxFileNameLen = 255

// allowedExtensions lists the importable media types. Thumbnail support is a
// separate, narrower set; an importable type without a renderer simply has no
// preview.
var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".avif": true,
	".mp4": true, ".mov": true, ".avi": true, ".webm": true, ".mkv": true,
	".pdf": true,
	".txt": true, ".zip": true,
}

// dangerousExtensions are rejected outright, allowlist or not.
var dangerousExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".com": true, ".scr": true,
	".vbs": true, ".js": true, ".jar": true, ".sh": true, ".ps1": true,
	".php": true, ".py": true, ".rb": true, ".pl": true, ".dll": true,
	".so": true, ".dylib": true, ".app": true, ".msi": true, ".dmg": true,
}

// Manager owns the vault directory: the renamed, collision-free copies of
// every imported source file. All paths handed out are vault-relative.
type Manager struct {
	root    string
	maxSize int64
}

// ImportedFile describes the vault copy produced by Import.
type ImportedFile struct {
	RelPath          string
	OriginalFileName string
	MimeType         string
	SizeBytes        int64
}

// NewManager creates the vault directory if needed and returns a manager
// rooted there. maxSize of 0 disables the size cap.
func NewManager(root string, maxSize int64) (*Manager, error) {
	if root == "" {
		return nil, errors.New("vault root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vault root: %w", err)
	}
	return &Manager{root: abs, maxSize: maxSize}, nil
}

// Root returns the absolute vault directory.
func (m *Manager) Root() string {
	return m.root
}

// Import validates sourcePath and copies it into the vault as <assetID><ext>.
// Naming by asset id makes the copy collision-free by construction; the
// original file name is only carried in the returned metadata.
func (m *Manager) Import(sourcePath, assetID string) (*ImportedFile, error) {
	if assetID == "" {
		return nil, errors.New("asset id is required")
	}
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("source file not readable: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source path is a directory: %s", sourcePath)
	}

	name := filepath.Base(sourcePath)
	if err := validateFileName(name); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return nil, errors.New("source file must have an extension")
	}
	if dangerousExtensions[ext] {
		return nil, fmt.Errorf("dangerous file type not allowed: %s", ext)
	}
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if m.maxSize > 0 && info.Size() > m.maxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), m.maxSize)
	}

	mime := "application/octet-stream"
	if detected, err := mimetype.DetectFile(sourcePath); err == nil {
		mime = detected.String()
	}

	relPath := assetID + ext
	if err := m.copyIn(sourcePath, relPath); err != nil {
		return nil, err
	}

	return &ImportedFile{
		RelPath:          relPath,
		OriginalFileName: name,
		MimeType:         mime,
		SizeBytes:        info.Size(),
	}, nil
}

// AbsPath resolves a vault-relative path, rejecting anything that would
// escape the vault root.
func (m *Manager) AbsPath(relPath string) (string, error) {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return "", errors.New("empty path")
	}
	cleaned := path.Clean("/" + filepath.ToSlash(trimmed))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid vault path: %s", relPath)
	}

	abs := filepath.Join(m.root, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(abs, m.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes vault root: %s", relPath)
	}
	return abs, nil
}

// Remove deletes the vault copy. A missing file is success, since the goal
// state is already reached.
func (m *Manager) Remove(relPath string) error {
	abs, err := m.AbsPath(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove vault file: %w", err)
	}
	return nil
}

// copyIn writes the vault copy with O_EXCL so an unexpected collision fails
// loudly instead of silently overwriting.
func (m *Manager) copyIn(sourcePath, relPath string) error {
	dst, err := m.AbsPath(relPath)
	if err != nil {
		return err
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create vault file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("failed to copy into vault: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to finalize vault file: %w", err)
	}
	return nil
}

// validateFileName rejects names that cannot be stored or displayed safely.
func validateFileName(name string) error {
	if name == "" || name == "." {
		return errors.New("empty file name")
	}
	if len(name) > maxFileNameLen {
		return fmt.Errorf("file name too long (max %d characters)", maxFileNameLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.New("file name contains control characters")
		}
	}
	return nil
}
