// Package version reports the version of the esplora module.
//
// Version may be pinned at link time:
//
//	go build -ldflags "-X github.com/kbukum/esplora/version.Version=v1.2.0"
//
// Otherwise it is read from the build info of the binary that imports the
// module, falling back to "dev".
package version
