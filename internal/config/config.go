package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Loader  LoaderConfig  `yaml:"loader"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DataConfig locates the source files. File names are slash-separated and
// relative to Dir.
type DataConfig struct {
	Dir            string `yaml:"dir"             env:"DATA_DIR"             env-default:"data"`
	Languages      string `yaml:"languages"       env:"DATA_LANGUAGES"       env-default:"languages.tsv"`
	ISOLanguages   string `yaml:"iso_languages"   env:"DATA_ISO_LANGUAGES"   env-default:"iso/iso-639-3.tab"`
	Macrolanguages string `yaml:"macrolanguages"  env:"DATA_MACROLANGUAGES"  env-default:"iso/macrolanguages.tab"`
	Families       string `yaml:"families"        env:"DATA_FAMILIES"        env-default:"iso/iso-639-5.tsv"`
	Retirements    string `yaml:"retirements"     env:"DATA_RETIREMENTS"     env-default:"iso/retirements.tab"`
	Glottolog      string `yaml:"glottolog"       env:"DATA_GLOTTOLOG"       env-default:"glottolog.tsv"`
	IANARegistry   string `yaml:"iana_registry"   env:"DATA_IANA_REGISTRY"   env-default:"iana/language-subtag-registry.txt"`
	CLDRAliases    string `yaml:"cldr_aliases"    env:"DATA_CLDR_ALIASES"    env-default:"cldr/languageAlias.json"`
	CLDRCoverage   string `yaml:"cldr_coverage"   env:"DATA_CLDR_COVERAGE"   env-default:"cldr/coverage.tsv"`
	Territories    string `yaml:"territories"     env:"DATA_TERRITORIES"     env-default:"territories.tsv"`
	TerritoryStats string `yaml:"territory_stats" env:"DATA_TERRITORY_STATS" env-default:"territory_stats.tsv"`
	Locales        string `yaml:"locales"         env:"DATA_LOCALES"         env-default:"locales.tsv"`
	WritingSystems string `yaml:"writing_systems" env:"DATA_WRITING_SYSTEMS" env-default:"writing_systems.tsv"`
	Keyboards      string `yaml:"keyboards"       env:"DATA_KEYBOARDS"       env-default:"keyboards.tsv"`
	CensusGlob     string `yaml:"census_glob"     env:"DATA_CENSUS_GLOB"     env-default:"census/*.tsv"`
}

// Files returns every configured file name keyed by its YAML name.
func (d DataConfig) Files() map[string]string {
	return map[string]string{
		"languages":       d.Languages,
		"iso_languages":   d.ISOLanguages,
		"macrolanguages":  d.Macrolanguages,
		"families":        d.Families,
		"retirements":     d.Retirements,
		"glottolog":       d.Glottolog,
		"iana_registry":   d.IANARegistry,
		"cldr_aliases":    d.CLDRAliases,
		"cldr_coverage":   d.CLDRCoverage,
		"territories":     d.Territories,
		"territory_stats": d.TerritoryStats,
		"locales":         d.Locales,
		"writing_systems": d.WritingSystems,
		"keyboards":       d.Keyboards,
	}
}

// LoaderConfig tunes the load pipeline.
type LoaderConfig struct {
	Timeout             time.Duration `yaml:"timeout"               env:"LOADER_TIMEOUT"               env-default:"2m"`
	RegionalMinSpeakers int64         `yaml:"regional_min_speakers" env:"LOADER_REGIONAL_MIN_SPEAKERS" env-default:"10"`
	SkipSupplemental    bool          `yaml:"skip_supplemental"     env:"LOADER_SKIP_SUPPLEMENTAL"     env-default:"false"`
	// Concurrency bounds the number of files read at once.
	Concurrency int `yaml:"concurrency" env:"LOADER_CONCURRENCY" env-default:"8"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MetricsConfig controls the Prometheus text-file dump written after a load.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" env:"METRICS_TEXTFILE_PATH"`
}
