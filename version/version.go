package version

import (
	"runtime/debug"
	"strings"
	"sync"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/kbukum/esplora"

// Version is set at build time using -ldflags.
var Version = ""

var (
	once     sync.Once
	resolved string
)

// Get returns the module version, e.g. "v1.2.0" or "dev".
func Get() string {
	once.Do(func() {
		resolved = resolve(Version, debug.ReadBuildInfo)
	})
	return resolved
}

// UserAgent returns the default User-Agent header value.
func UserAgent() string {
	return "esplora-go/" + strings.TrimPrefix(Get(), "v")
}

func resolve(pinned string, read func() (*debug.BuildInfo, bool)) string {
	if pinned != "" {
		return pinned
	}
	info, ok := read()
	if !ok {
		return "dev"
	}
	if info.Main.Path == ModulePath {
		return usable(info.Main.Version)
	}
	for _, dep := range info.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil {
			return usable(dep.Replace.Version)
		}
		return usable(dep.Version)
	}
	return "dev"
}

func usable(v string) string {
	if v == "" || v == "(devel)" {
		return "dev"
	}
	return v
}
