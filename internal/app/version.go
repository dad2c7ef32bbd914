package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/langnav/internal/app.Version=1.0.0".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Build returns the linked build identity. Commit and build time fall back
// to the VCS stamp the Go toolchain embeds.
func Build() BuildInfo {
	b := BuildInfo{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if info, ok := debug.ReadBuildInfo(); ok {
		b = b.withSettings(info.Settings)
	}
	return b
}

func (b BuildInfo) withSettings(settings []debug.BuildSetting) BuildInfo {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
				if len(b.Commit) > 12 {
					b.Commit = b.Commit[:12]
				}
			}
		case "vcs.time":
			if b.BuildTime == "" {
				b.BuildTime = s.Value
			}
		}
	}
	return b
}

func (b BuildInfo) String() string {
	commit, built := b.Commit, b.BuildTime
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, commit, built)
}

// LogValue implements slog.LogValuer.
func (b BuildInfo) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("version", b.Version)}
	if b.Commit != "" {
		attrs = append(attrs, slog.String("commit", b.Commit))
	}
	if b.BuildTime != "" {
		attrs = append(attrs, slog.String("built", b.BuildTime))
	}
	return slog.GroupValue(attrs...)
}
