package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		pinned string
		info   *debug.BuildInfo
		want   string
	}{
		{"pinned wins", "v9.9.9", &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "v1.0.0"}}, "v9.9.9"},
		{"no build info", "", nil, "dev"},
		{"main module", "", &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "v1.0.0"}}, "v1.0.0"},
		{"main module devel", "", &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "(devel)"}}, "dev"},
		{"dependency", "", &debug.BuildInfo{
			Main: debug.Module{Path: "example.com/wallet"},
			Deps: []*debug.Module{
				{Path: "github.com/btcsuite/btcd", Version: "v0.24.2"},
				{Path: ModulePath, Version: "v0.3.1"},
			},
		}, "v0.3.1"},
		{"replaced dependency", "", &debug.BuildInfo{
			Main: debug.Module{Path: "example.com/wallet"},
			Deps: []*debug.Module{{Path: ModulePath, Version: "v0.3.1", Replace: &debug.Module{Path: "../esplora"}}},
		}, "dev"},
		{"not a dependency", "", &debug.BuildInfo{Main: debug.Module{Path: "example.com/wallet"}}, "dev"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			read := func() (*debug.BuildInfo, bool) { return tc.info, tc.info != nil }
			if got := resolve(tc.pinned, read); got != tc.want {
				t.Errorf("resolve() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "esplora-go/") {
		t.Errorf("UserAgent() = %q", ua)
	}
	if strings.Contains(ua, "/v") {
		t.Errorf("UserAgent() keeps the v prefix: %q", ua)
	}
}
