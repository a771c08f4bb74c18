// Package system enumerates completion metadata that comes from the
// operating system: signal names, accounts, groups, network interfaces and
// executables on the search path. Every enumeration is a narrow OS read
// behind its own short-TTL cache.
package system

import (
	"os"

	"github.com/robottwo/tabby/internal/cache"
	"go.uber.org/zap"
)

// Overridable for testing.
var osReadDir = os.ReadDir

// Enumerator owns the cached OS reads.
type Enumerator struct {
	logger *zap.Logger

	passwdPath string
	groupPath  string

	users      *cache.TTL[[]Account]
	groups     *cache.TTL[[]Group]
	interfaces *cache.TTL[[]Interface]
	pathDirs   *cache.TTL[[]string]
}

// NewEnumerator creates an enumerator reading the standard system files.
func NewEnumerator(logger *zap.Logger) *Enumerator {
	return &Enumerator{
		logger:     logger,
		passwdPath: "/etc/passwd",
		groupPath:  "/etc/group",
		users:      cache.NewTTL[[]Account](cache.AccountTTL),
		groups:     cache.NewTTL[[]Group](cache.AccountTTL),
		interfaces: cache.NewTTL[[]Interface](cache.InterfaceTTL),
		pathDirs:   cache.NewTTL[[]string](cache.CommandTTL),
	}
}
