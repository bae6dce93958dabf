package statistic

import (
	"mcstatus/internal/models"
	"path/filepath"
)

const faviconFileName = "cached_favicon"

type FaviconCacheInterface interface {
	Load(serverDir string) (models.CachedFavicon, bool, error)
	Store(serverDir string, favicon *string) error
}

// FaviconCache keeps the last favicon seen for each server.
type FaviconCache struct {
	files *FileManager
}

func NewFaviconCache(files *FileManager) FaviconCacheInterface {
	return &FaviconCache{files: files}
}

// Load reports false when no record exists or the record is corrupt.
func (fc *FaviconCache) Load(serverDir string) (models.CachedFavicon, bool, error) {
	return LoadOrDefault[models.CachedFavicon](fc.files, filepath.Join(serverDir, faviconFileName))
}

// Store replaces the record with what the live probe just returned, so a
// server that stopped sending a favicon ends up cached without one.
func (fc *FaviconCache) Store(serverDir string, favicon *string) error {
	return fc.files.Save(filepath.Join(serverDir, faviconFileName), models.NewCachedFavicon(favicon))
}
