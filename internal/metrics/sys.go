package metrics

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// StorageUsage describes how much disk the planner's data takes.
type StorageUsage struct {
	RecipeFiles int
	RecipeBytes int64
	DataBytes   int64
}

// GetStorageUsage walks the recipe and database directories. A missing
// directory counts as empty.
func GetStorageUsage(recipeDir, dataDir string) StorageUsage {
	var u StorageUsage
	u.RecipeFiles, u.RecipeBytes = dirSize(recipeDir, ".json")
	_, u.DataBytes = dirSize(dataDir, "")
	return u
}

func dirSize(root, ext string) (int, int64) {
	var (
		files int
		size  int64
	)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (ext != "" && filepath.Ext(path) != ext) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files++
		size += info.Size()
		return nil
	})
	return files, size
}

// HumanBytes formats a byte count with a binary unit suffix.
func HumanBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
