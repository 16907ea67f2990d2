package media

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store defines the interface for saving, retrieving, and deleting
// uploaded assets
type Store interface {
	// Save stores data under the asset type's directory; an empty
	// filenameHint generates a UUID name. Returns the relative path used.
	Save(assetType AssetType, filenameHint string, data io.Reader) (string, error)
	// Get retrieves a reader for an asset
	Get(relativePath string) (io.ReadCloser, os.FileInfo, error)
	// Delete removes an asset
	Delete(relativePath string) error
	// GetFullPath returns the absolute filesystem path for a relative asset path
	GetFullPath(relativePath string) (string, error)
	// List returns the relative paths of all assets of one type
	List(assetType AssetType) ([]string, error)
}

// LocalStorage implements the Store interface using the local filesystem
type LocalStorage struct {
	basePath  string               // absolute path to the MEDIA_STORAGE_PATH
	subDirMap map[AssetType]string // maps AssetType to subdirectory name (e.g., "thumbnails")
}

// NewLocalStorage creates a new local filesystem store
func NewLocalStorage(basePath string, subDirs map[AssetType]string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBasePath, err)
	}

	for assetType, subDir := range subDirs {
		fullPath := filepath.Join(absBasePath, subDir)
		if !strings.HasPrefix(filepath.Clean(fullPath), absBasePath) {
			return nil, fmt.Errorf("invalid subdirectory configuration: '%s' resolves outside base path '%s'", subDir, absBasePath)
		}
		if err := os.MkdirAll(fullPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory '%s': %w", fullPath, err)
		}
		_ = assetType
	}

	log.Printf("media.store: Initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{
		basePath:  absBasePath,
		subDirMap: subDirs,
	}, nil
}

// assetTypeDir resolves the directory for a given asset type, falling
// back to the type name itself when unconfigured
func (ls *LocalStorage) assetTypeDir(assetType AssetType) (string, error) {
	subDir, ok := ls.subDirMap[assetType]
	if !ok {
		subDir = string(assetType)
	}
	dirPath := filepath.Join(ls.basePath, subDir)
	if !strings.HasPrefix(filepath.Clean(dirPath), ls.basePath) {
		return "", fmt.Errorf("asset type '%s' resolves outside base path", assetType)
	}
	return dirPath, nil
}

// Save data to the store. filenameHint can be empty to generate a UUID name
func (ls *LocalStorage) Save(assetType AssetType, filenameHint string, data io.Reader) (string, error) {
	dirPath, err := ls.assetTypeDir(assetType)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure directory '%s': %w", dirPath, err)
	}

	filename := filepath.Base(filenameHint)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = uuid.NewString()
	}

	targetPath := filepath.Join(dirPath, filename)
	if !strings.HasPrefix(filepath.Clean(targetPath), ls.basePath) {
		return "", fmt.Errorf("target filename '%s' resolves outside base path", filenameHint)
	}

	file, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file '%s': %w", targetPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(targetPath)
		return "", fmt.Errorf("failed to write asset file '%s': %w", targetPath, err)
	}

	relPath, err := filepath.Rel(ls.basePath, targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path for '%s': %w", targetPath, err)
	}
	return filepath.ToSlash(relPath), nil
}

// Get retrieves a reader for an asset
func (ls *LocalStorage) Get(relativePath string) (io.ReadCloser, os.FileInfo, error) {
	fullPath, err := ls.GetFullPath(relativePath)
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("asset path '%s' is a directory", relativePath)
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, nil, err
	}
	return file, info, nil
}

// Delete removes an asset
func (ls *LocalStorage) Delete(relativePath string) error {
	fullPath, err := ls.GetFullPath(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset '%s': %w", relativePath, err)
	}
	return nil
}

// GetFullPath returns the absolute filesystem path for a relative asset
// path, refusing anything that escapes the storage root
func (ls *LocalStorage) GetFullPath(relativePath string) (string, error) {
	fullPath := filepath.Join(ls.basePath, filepath.FromSlash(relativePath))
	if !strings.HasPrefix(filepath.Clean(fullPath), ls.basePath) {
		return "", fmt.Errorf("relative path '%s' resolves outside base path", relativePath)
	}
	return fullPath, nil
}

// List returns the relative paths of all regular files of one asset type
func (ls *LocalStorage) List(assetType AssetType) ([]string, error) {
	dirPath, err := ls.assetTypeDir(assetType)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dirPath)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory '%s': %w", dirPath, err)
	}
	paths := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rel, err := filepath.Rel(ls.basePath, filepath.Join(dirPath, entry.Name()))
		if err != nil {
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths, nil
}
