// Package version reports build information set with -ldflags or read from
// the module's embedded VCS settings.
//
//	go build -ldflags "-X github.com/kbukum/restkit/version.Version=1.2.0"
package version
