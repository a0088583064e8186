// Package version exposes build information, set at link time:
//
//	go build -ldflags "-X github.com/farcloser/murmur/version.version=v1.0.0 -X github.com/farcloser/murmur/version.commit=abcdef"
package version

//nolint:gochecknoglobals // set by the linker
var (
	name    = "murmur"
	version = "dev"
	commit  = "unknown"
)

func Name() string {
	return name
}

func Version() string {
	return version
}

func Commit() string {
	return commit
}
