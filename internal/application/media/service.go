package media

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var unsafeFolderChars = regexp.MustCompile(`[^a-z0-9_-]`)

// Config holds the upload rules
type Config struct {
	MaxFileSize       int64
	MaxFiles          int
	RootFolder        string
	DefaultFolder     string
	AllowedExtensions []string
}

// DefaultConfig returns the rules used when none are configured
func DefaultConfig() Config {
	return Config{
		MaxFileSize:       5 << 20,
		MaxFiles:          10,
		RootFolder:        "projet-personnel",
		DefaultFolder:     "products",
		AllowedExtensions: []string{"jpg", "jpeg", "png"},
	}
}

// Service validates images, names their objects and talks to the Store
type Service struct {
	store  Store
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a media service
func NewService(store Store, cfg Config, logger *zap.Logger) *Service {
	def := DefaultConfig()
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = def.MaxFileSize
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = def.MaxFiles
	}
	if cfg.RootFolder == "" {
		cfg.RootFolder = def.RootFolder
	}
	if cfg.DefaultFolder == "" {
		cfg.DefaultFolder = def.DefaultFolder
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = def.AllowedExtensions
	}
	cfg.AllowedExtensions = lo.Map(cfg.AllowedExtensions, func(ext string, _ int) string {
		return strings.TrimPrefix(strings.ToLower(ext), ".")
	})
	return &Service{store: store, cfg: cfg, logger: logger, now: time.Now}
}

// MaxFileSize returns the per-file size limit in bytes
func (s *Service) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}

// MaxFiles returns the limit of files per multi-upload
func (s *Service) MaxFiles() int {
	return s.cfg.MaxFiles
}

// Upload validates and stores one image under folder
func (s *Service) Upload(ctx context.Context, folder string, file File) (*UploadedImage, error) {
	ext, err := s.validate(file)
	if err != nil {
		return nil, err
	}

	return s.put(ctx, s.objectKey(folder, file.Filename, ext), file)
}

// UploadMany validates every file first, then stores them in order.
// Objects stored before a failure are removed again.
func (s *Service) UploadMany(ctx context.Context, folder string, files []File) (*UploadedImages, error) {
	if len(files) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No image provided")
	}
	if len(files) > s.cfg.MaxFiles {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("At most %d images can be uploaded at once", s.cfg.MaxFiles))
	}
	keys := make([]string, len(files))
	used := make(map[string]bool, len(files))
	for i, f := range files {
		ext, err := s.validate(f)
		if err != nil {
			return nil, err
		}
		keys[i] = uniqueKey(s.objectKey(folder, f.Filename, ext), ext, used)
	}

	uploaded := make([]UploadedImage, 0, len(files))
	for i, f := range files {
		img, err := s.put(ctx, keys[i], f)
		if err != nil {
			s.removeKeys(ctx, lo.Map(uploaded, func(u UploadedImage, _ int) string { return u.Key }))
			return nil, err
		}
		uploaded = append(uploaded, *img)
	}
	return &UploadedImages{Images: uploaded}, nil
}

// Delete removes an object; keys outside the media root are rejected
func (s *Service) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if !s.ownsKey(key) {
		return shared.NewDomainError("INVALID_INPUT", "Key is outside the media folder")
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	s.logger.Info("Image deleted", zap.String("key", key))
	return nil
}

// RemoveImages deletes the hosted objects behind urls. URLs hosted elsewhere
// are skipped and failures are only logged.
func (s *Service) RemoveImages(ctx context.Context, urls ...string) {
	keys := lo.FilterMap(lo.Uniq(urls), func(url string, _ int) (string, bool) {
		key, ok := s.store.KeyFromURL(url)
		return key, ok && s.ownsKey(key)
	})
	s.removeKeys(ctx, keys)
}

func (s *Service) removeKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to delete hosted image", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *Service) validate(file File) (string, error) {
	if len(file.Data) == 0 {
		return "", shared.NewDomainError("INVALID_INPUT", "Image file is empty")
	}
	if int64(len(file.Data)) > s.cfg.MaxFileSize {
		return "", shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Image %s exceeds the %d MB limit", file.Filename, s.cfg.MaxFileSize>>20))
	}
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return "", shared.NewDomainError("INVALID_INPUT", "Only image files are accepted")
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(file.Filename)), ".")
	if !lo.Contains(s.cfg.AllowedExtensions, ext) {
		return "", shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Only %s images are accepted", strings.Join(s.cfg.AllowedExtensions, ", ")))
	}
	return ext, nil
}

// SanitizeFolder keeps [a-z0-9-_] and falls back to the default folder
func (s *Service) SanitizeFolder(folder string) string {
	clean := unsafeFolderChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(folder)), "")
	if clean == "" {
		return s.cfg.DefaultFolder
	}
	return clean
}

// objectKey builds <root>/<folder>/<unix-ms>-<basename>.<ext>
func (s *Service) objectKey(folder, filename, ext string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '-'
		}
		return -1
	}, base)
	if base == "" {
		base = "image"
	}
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	return path.Join(s.cfg.RootFolder, s.SanitizeFolder(folder), stamp+"-"+base+"."+ext)
}

// uniqueKey suffixes key with -2, -3, ... until no earlier file of the batch holds it
func uniqueKey(key, ext string, used map[string]bool) string {
	stem := strings.TrimSuffix(key, "."+ext)
	candidate := key
	for n := 2; used[candidate]; n++ {
		candidate = stem + "-" + strconv.Itoa(n) + "." + ext
	}
	used[candidate] = true
	return candidate
}

func (s *Service) put(ctx context.Context, key string, file File) (*UploadedImage, error) {
	url, err := s.store.Put(ctx, key, file.Data, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image %s: %w", file.Filename, err)
	}

	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.Int("size", len(file.Data)),
	)
	return &UploadedImage{ImageURL: url, Key: key}, nil
}

func (s *Service) ownsKey(key string) bool {
	if key == "" || strings.Contains(key, "..") {
		return false
	}
	return strings.HasPrefix(key, s.cfg.RootFolder+"/")
}
