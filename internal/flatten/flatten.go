package flatten

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/quantmind-br/codecollector/internal/archive"
	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/filter"
	"github.com/quantmind-br/codecollector/internal/utils"
)

// Separator frames the label line of every entry block
var Separator = strings.Repeat("=", 40)

const (
	headerSourcePrefix = "Content collected from: "
	headerFilterPrefix = "Filtering by extensions: "
	blockLabelPrefix   = "File: "
	defaultWorkers     = 8
)

// Flattener decodes and joins archive entries
type Flattener struct {
	workers int
	logger  *utils.Logger
	onEntry func(name string)
}

// Options configures a Flattener
type Options struct {
	Workers int
	Logger  *utils.Logger
	// OnEntry is called once per successfully decoded entry, from worker goroutines
	OnEntry func(name string)
}

// New creates a Flattener
func New(opts Options) *Flattener {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Flattener{
		workers: workers,
		logger:  opts.Logger,
		onEntry: opts.OnEntry,
	}
}

// Select returns the entries the spec accepts, skipping directories, in
// their original order.
func Select(entries []archive.Entry, spec filter.Spec) []archive.Entry {
	var selected []archive.Entry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filter.Matches(e.Name(), spec) {
			selected = append(selected, e)
		}
	}
	return selected
}

// Header renders the leading lines of the combined document
func Header(label string, spec filter.Spec) string {
	var b strings.Builder
	b.WriteString(headerSourcePrefix)
	b.WriteString(label)
	b.WriteString("\n")
	if !spec.IsMatchAll() {
		b.WriteString(headerFilterPrefix)
		b.WriteString(strings.Join(spec.Suffixes, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func writeBlock(b *strings.Builder, name, text string) {
	b.WriteString(Separator)
	b.WriteString("\n")
	b.WriteString(blockLabelPrefix)
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(Separator)
	b.WriteString("\n\n")
	b.WriteString(text)
	b.WriteString("\n\n")
}

// Flatten decodes every selected entry and assembles the combined document.
// It fails with *domain.NoMatchError when nothing is selected and with
// *domain.DecodeError when any decode fails.
func (f *Flattener) Flatten(ctx context.Context, entries []archive.Entry, spec filter.Spec, label string) (*domain.Result, error) {
	stats := domain.Stats{Entries: len(entries)}
	for _, e := range entries {
		if e.IsDir() {
			stats.Directories++
		}
	}

	selected := Select(entries, spec)
	stats.Matched = len(selected)
	if len(selected) == 0 {
		noMatch := &domain.NoMatchError{}
		if !spec.IsMatchAll() {
			noMatch.Suffixes = append([]string(nil), spec.Suffixes...)
		}
		return nil, noMatch
	}

	texts, err := f.decodeAll(ctx, selected)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(selected))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return selected[order[a]].Name() < selected[order[b]].Name()
	})

	var b strings.Builder
	b.WriteString(Header(label, spec))
	members := make([]string, 0, len(selected))
	for _, idx := range order {
		name := selected[idx].Name()
		members = append(members, name)
		stats.Bytes += len(texts[idx])
		writeBlock(&b, name, texts[idx])
	}

	if f.logger != nil {
		f.logger.Debug().
			Int("entries", stats.Entries).
			Int("matched", stats.Matched).
			Int("bytes", stats.Bytes).
			Msg("Archive flattened")
	}

	return &domain.Result{
		Members: members,
		Text:    b.String(),
		Stats:   stats,
	}, nil
}

// decodeAll runs every decode and waits for all of them. Each worker writes
// only its own slot of texts. The first failure cancels the remaining work.
// A decode failure wins over the caller's cancellation.
func (f *Flattener) decodeAll(parent context.Context, selected []archive.Entry) ([]string, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	texts := make([]string, len(selected))
	indices := make([]int, len(selected))
	for i := range indices {
		indices[i] = i
	}

	errs := utils.CollectErrors(utils.ParallelForEach(ctx, indices, f.workers, func(ctx context.Context, i int) error {
		text, err := selected[i].Text(ctx)
		if err != nil {
			cancel()
			return err
		}
		texts[i] = text
		if f.onEntry != nil {
			f.onEntry(selected[i].Name())
		}
		return nil
	}))

	if failure := decodeFailure(errs); failure != nil {
		var decodeErr *domain.DecodeError
		if !errors.As(failure, &decodeErr) {
			decodeErr = domain.NewDecodeError("", failure)
		}
		if f.logger != nil {
			f.logger.Warn().Err(failure).Str("entry", decodeErr.Entry).Msg("Entry decode failed")
		}
		return nil, decodeErr
	}

	// the pool stops scheduling once the caller's context ends
	if err := parent.Err(); err != nil {
		return nil, err
	}
	if err := utils.FirstError(errs); err != nil {
		return nil, err
	}

	return texts, nil
}

// decodeFailure picks the first error that is not a cancellation echo
func decodeFailure(errs []error) error {
	for _, err := range errs {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}
	return nil
}
