package changewallpaperlib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Relative to OriginalsDirectory
type RelativePath = string
type AbsolutePath = string

func isImageFile(c *Config, path string) bool {
	pathLower := strings.ToLower(path)
	for _, t := range c.ImageFileExtensions {
		if strings.HasSuffix(pathLower, t) {
			return true
		}
	}
	return false
}

// GetAllOriginals lists every image under OriginalsDirectory
func GetAllOriginals() ([]RelativePath, error) {
	c, err := GetConfig()
	if err != nil {
		return nil, err
	}
	if err = c.RequireOriginals(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(c.OriginalsDirectory)
	if err != nil {
		return nil, err
	}

	originals := []RelativePath{}

	err = filepath.Walk(root, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if f.IsDir() && path != root && strings.HasPrefix(f.Name(), ".") {
			return filepath.SkipDir
		}

		if !f.Mode().IsRegular() || !isImageFile(c, path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("Unexpected path [%s]: %w", path, err)
		}

		originals = append(originals, rel)
		return nil
	})

	return originals, err
}

func GetFullInputPath(relPath RelativePath) (AbsolutePath, error) {
	c, err := GetConfig()
	if err != nil {
		return "", err
	}
	return filepath.Abs(filepath.Join(c.OriginalsDirectory, relPath))
}

// IsImageFile checks the path against the configured ImageFileExtensions
func IsImageFile(path string) bool {
	c, err := GetConfig()
	if err != nil {
		return false
	}
	return isImageFile(c, path)
}
