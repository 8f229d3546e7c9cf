package media

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "golang.org/x/image/webp"
)

// URLPrefix is where stored files are served from.
const URLPrefix = "/uploads/"

var ErrTooLarge = errors.New("upload too large")
var ErrInvalidImage = errors.New("invalid image")
var ErrUnsupportedType = errors.New("unsupported file type")
var ErrInvalidName = errors.New("invalid file name")

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var namePattern = regexp.MustCompile(`^[0-9a-f]{64}\.[a-z]+$`)

// Manager handles filesystem operations for uploaded images.
type Manager struct {
	root string
}

func NewManager(root string) *Manager {
	return &Manager{root: root}
}

func (m *Manager) Root() string {
	return m.root
}

// SaveResult describes a stored upload.
type SaveResult struct {
	Name   string `json:"filename"`
	URL    string `json:"url"`
	SHA256 string `json:"sha256"`
	Bytes  int64  `json:"size"`
	Mime   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Save streams the upload to disk while hashing it, validates the image, and
// moves it to its content-addressed path. Identical uploads share a file.
func (m *Manager) Save(ctx context.Context, r io.Reader, filename string, maxBytes int64, maxPixels int) (*SaveResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if !allowedExts[ext] {
		return nil, ErrUnsupportedType
	}
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return nil, err
	}

	lim := &io.LimitedReader{R: r, N: maxBytes + 1}
	br := bufio.NewReader(lim)
	peek, _ := br.Peek(512)
	mimeType := http.DetectContentType(peek)

	tmp, err := os.CreateTemp(m.root, "upload-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	hash := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, hash), br)
	if err != nil {
		return nil, err
	}
	if lim.N <= 0 || written > maxBytes {
		return nil, ErrTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(tmp)
	if err != nil {
		return nil, ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, ErrInvalidImage
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	shaHex := hex.EncodeToString(hash.Sum(nil))
	name := shaHex + ext
	dst := m.pathFor(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(dst); errors.Is(err, os.ErrNotExist) {
		if err := os.Rename(tmp.Name(), dst); err != nil {
			return nil, err
		}
	}

	return &SaveResult{
		Name:   name,
		URL:    URLPrefix + name,
		SHA256: shaHex,
		Bytes:  written,
		Mime:   mimeType,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Open returns the stored file for a public name produced by Save.
func (m *Manager) Open(name string) (*os.File, error) {
	if !ValidName(name) {
		return nil, ErrInvalidName
	}
	return os.Open(m.pathFor(name))
}

// ValidName reports whether name has the <sha256 hex><ext> form.
func ValidName(name string) bool {
	if !namePattern.MatchString(name) {
		return false
	}
	return allowedExts[filepath.Ext(name)]
}

func (m *Manager) pathFor(name string) string {
	return filepath.Join(m.root, name[0:2], name[2:4], name)
}

func (m *Manager) IsWritable() error {
	testPath := filepath.Join(m.root, ".writetest")
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(testPath, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(testPath)
}
