// Package sweep removes extractor temp files left behind by crashed or killed processes.
package sweep

import (
	"io/fs"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/where"
)

// TTL returns the configured age after which temp files are considered stale.
func TTL() time.Duration {
	return time.Duration(viper.GetInt(key.SweepTTLHours)) * time.Hour
}

// Dirs lists the directories swept on startup.
func Dirs() []string {
	return []string{where.ExtractorVideo(), where.ExtractorAudio()}
}

// Sweep removes regular files older than ttl under dirs and returns how many were removed.
// Missing directories are skipped.
func Sweep(now time.Time, ttl time.Duration, dirs ...string) int {
	removed := 0
	for _, dir := range dirs {
		_ = afero.Walk(filesystem.API(), dir, func(path string, info fs.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if now.Sub(info.ModTime()) <= ttl {
				return nil
			}
			if err := filesystem.API().Remove(path); err != nil {
				log.Warnf("sweep: failed to remove %s: %v", path, err)
				return nil
			}
			removed++
			return nil
		})
	}
	return removed
}

// CollectGarbage sweeps the extractor temp dirs with the configured TTL.
// A non-positive TTL disables it.
func CollectGarbage() {
	ttl := TTL()
	if ttl <= 0 {
		return
	}

	if n := Sweep(time.Now(), ttl, Dirs()...); n > 0 {
		log.Infof("sweep: removed %d stale temp files", n)
	}
}
