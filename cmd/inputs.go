package cmd

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/horacio12345/image-compressor/internal/logger"
	"github.com/horacio12345/image-compressor/pkg/imgutil"
)

// collectInputs expands directory arguments into the images they contain.
// File arguments are kept as given, even when missing, so the batch reports
// them as failures instead of silently dropping them.
func collectInputs(args []string, outputDir string) ([]string, error) {
	outputAbs, err := filepath.Abs(outputDir)
	if err != nil {
		outputAbs = ""
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found, err := walkImages(arg, outputAbs)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func walkImages(root, outputAbs string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var found []string
	err = fs.WalkDir(os.DirFS(absRoot), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		fullPath := filepath.Join(absRoot, path)
		if d.IsDir() {
			if outputAbs != "" && path != "." && isWithin(fullPath, outputAbs) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		kind, err := imgutil.SniffFile(fullPath)
		if err != nil || kind == imgutil.KindUnknown {
			logger.WithField("file", fullPath).Debug("Skipping non-image file")
			return nil
		}
		found = append(found, fullPath)
		return nil
	})
	return found, err
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
