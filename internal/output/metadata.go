package output

import (
	"time"

	"github.com/quantmind-br/codecollector/internal/domain"
)

// Metadata is written next to the combined document when JSON metadata is enabled
type Metadata struct {
	Source      domain.Source `json:"source"`
	Filter      string        `json:"filter"`
	Members     []string      `json:"members"`
	Stats       domain.Stats  `json:"stats"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// NewMetadata builds the sidecar document for a successful run
func NewMetadata(src domain.Source, filter string, result *domain.Result) *Metadata {
	m := &Metadata{
		Source:      src,
		Filter:      filter,
		GeneratedAt: time.Now().UTC(),
	}
	if result != nil {
		m.Members = result.Members
		m.Stats = result.Stats
	}
	return m
}
