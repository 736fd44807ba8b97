package cache

import (
	"github.com/quantmind-br/codecollector/internal/domain"
)

// Ensure BadgerCache implements domain.Cache
var _ domain.Cache = (*BadgerCache)(nil)

// DefaultDirectory is used when Options.Directory is empty, relative to $HOME
const DefaultDirectory = ".codecollector/cache"

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	Logger    bool
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{}
}
