package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Asset is one discovered source video.
type Asset struct {
	Path     string // absolute path to the source file
	BaseName string // file name without extension, namespace root for variant dirs
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".mkv":  {},
	".webm": {},
	".flv":  {},
	".wmv":  {},
}

// Scan lists source videos directly inside root, matched by extension
// (case-insensitive). Subdirectories are not descended into, so variant
// output directories are never picked up as assets.
func Scan(root string) ([]Asset, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("unable to read media dir: %w", err)
	}

	var assets []Asset
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if _, ok := videoExtensions[strings.ToLower(ext)]; !ok {
			continue
		}

		path, err := filepath.Abs(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}

		assets = append(assets, Asset{
			Path:     path,
			BaseName: strings.TrimSuffix(name, ext),
		})
	}

	return assets, nil
}
