package extraction

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileMB caps accepted uploads at 50 MB.
const DefaultMaxFileMB = 50

var supportedExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
}

// SupportedExt reports whether the file name carries a supported extension.
func SupportedExt(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// Validate checks existence, the size cap, and the extension whitelist.
func Validate(path string, maxMB int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}
	if maxMB <= 0 {
		maxMB = DefaultMaxFileMB
	}
	if info.Size() > maxMB*1024*1024 {
		return fmt.Errorf("file size (%.1fMB) exceeds limit (%dMB)",
			float64(info.Size())/(1024*1024), maxMB)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExts[ext] {
		return fmt.Errorf("unsupported file type: %s", ext)
	}
	return nil
}
