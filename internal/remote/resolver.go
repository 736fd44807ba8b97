package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/utils"
)

// ErrNotPublic is the aggregated cause when every branch probe failed
var ErrNotPublic = errors.New("could not fetch the repository; make sure it is public and has a main or master branch")

// Resolver downloads repository archives by probing default branches
type Resolver struct {
	fetcher  domain.Fetcher
	proxyURL string
	branches []string
	logger   *utils.Logger
}

// ResolverOptions contains options for creating a Resolver
type ResolverOptions struct {
	Fetcher  domain.Fetcher
	ProxyURL string   // empty fetches the archive directly
	Branches []string // defaults to DefaultBranches
	Logger   *utils.Logger
}

// NewResolver creates a new Resolver
func NewResolver(opts ResolverOptions) *Resolver {
	branches := opts.Branches
	if len(branches) == 0 {
		branches = DefaultBranches
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Resolver{
		fetcher:  opts.Fetcher,
		proxyURL: opts.ProxyURL,
		branches: branches,
		logger:   logger.WithComponent("resolver"),
	}
}

// Resolve parses repoURL and downloads the first branch archive that succeeds.
// Probes are strictly sequential; a later branch is only tried after the
// earlier one failed.
func (r *Resolver) Resolve(ctx context.Context, repoURL string) (*Archive, error) {
	ref, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	var attempts []error
	for _, branch := range r.branches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target := r.locate(ref.ArchiveURL(branch))
		r.logger.Debug().
			Str("repo", ref.Name()).
			Str("branch", branch).
			Str("url", target).
			Msg("Probing branch archive")

		data, err := r.probe(ctx, target)
		if err == nil {
			ref.Branch = branch
			r.logger.Info().
				Str("repo", ref.Name()).
				Str("branch", branch).
				Int("bytes", len(data)).
				Msg("Archive downloaded")
			return &Archive{Ref: ref, Data: data, URL: target}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		r.logger.Debug().Err(err).Str("branch", branch).Msg("Branch probe failed")
		attempts = append(attempts, fmt.Errorf("%s: %w", branch, err))
	}

	return nil, &domain.FetchError{
		URL:      ref.Name(),
		Attempts: attempts,
		Err:      ErrNotPublic,
	}
}

func (r *Resolver) probe(ctx context.Context, target string) ([]byte, error) {
	resp, err := r.fetcher.Get(ctx, target)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, domain.NewFetchError(target, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	// An HTML body from the proxy or origin is an error page, not an archive.
	if strings.Contains(strings.ToLower(resp.ContentType), "text/html") {
		return nil, domain.NewFetchError(target, resp.StatusCode, fmt.Errorf("unexpected content type %q", resp.ContentType))
	}
	return resp.Body, nil
}

func (r *Resolver) locate(archiveURL string) string {
	if r.proxyURL == "" {
		return archiveURL
	}
	return r.proxyURL + url.QueryEscape(archiveURL)
}
