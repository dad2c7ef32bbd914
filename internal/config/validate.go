package config

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Data.validate(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if c.Loader.Timeout <= 0 {
		return fmt.Errorf("loader.timeout must be > 0 (got %v)", c.Loader.Timeout)
	}
	if c.Loader.Concurrency < 1 {
		return fmt.Errorf("loader.concurrency must be >= 1 (got %d)", c.Loader.Concurrency)
	}
	if c.Loader.RegionalMinSpeakers < 0 {
		return fmt.Errorf("loader.regional_min_speakers must be >= 0 (got %d)", c.Loader.RegionalMinSpeakers)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	return nil
}

func (d *DataConfig) validate() error {
	if strings.TrimSpace(d.Dir) == "" {
		return fmt.Errorf("dir is required")
	}
	for key, name := range d.Files() {
		if name == "" {
			continue
		}
		if !fs.ValidPath(name) {
			return fmt.Errorf("%s: %q is not a relative slash-separated path", key, name)
		}
	}
	if d.CensusGlob != "" {
		if _, err := path.Match(d.CensusGlob, ""); err != nil {
			return fmt.Errorf("census_glob: %w", err)
		}
	}
	return nil
}
