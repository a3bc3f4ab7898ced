package github

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/clevacompass/pkg/cache"
	"github.com/matzehuels/clevacompass/pkg/errors"
	"github.com/matzehuels/clevacompass/pkg/observability"
)

// DefaultConcurrency bounds parallel downloads.
const DefaultConcurrency = 4

// FetchOptions configures [FetchMethods].
type FetchOptions struct {
	OutputDir   string // default "methods"
	Flatten     bool   // drop sub-directory structure
	Token       string // used when Client is nil
	Client      *ContentClient
	Concurrency int // default DefaultConcurrency

	// Cache and Keyer memoise directory listings for ListingTTL.
	Cache      cache.Cache
	Keyer      cache.Keyer
	ListingTTL time.Duration

	Logger *log.Logger
}

// FetchResult lists the local paths (relative to OutputDir) that were
// already present and those that were downloaded.
type FetchResult struct {
	Existing []string
	New      []string
}

type remoteFile struct {
	rel string
	url string
}

// FetchMethods mirrors the GitHub directory or file at url into
// opts.OutputDir.
func FetchMethods(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error) {
	ref, err := ParseTreeURL(url)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	logger := opts.Logger

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.OutputDir)
	}

	f := &fetcher{opts: opts, root: ref}
	files, err := f.walk(ctx, ref)
	if err != nil {
		return nil, err
	}
	logger.Debug("listed remote files", "ref", ref, "files", len(files))
	files = uniqueTargets(files, logger)

	res := &FetchResult{}
	var pending []remoteFile
	for _, rf := range files {
		if _, err := os.Stat(filepath.Join(opts.OutputDir, filepath.FromSlash(rf.rel))); err == nil {
			logger.Debug("already present, skipping", "file", rf.rel)
			res.Existing = append(res.Existing, rf.rel)
			continue
		}
		pending = append(pending, rf)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, rf := range pending {
		g.Go(func() error {
			dst := filepath.Join(opts.OutputDir, filepath.FromSlash(rf.rel))
			if err := opts.Client.Download(gctx, rf.url, dst); err != nil {
				return err
			}
			logger.Debug("downloaded", "file", rf.rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, ctx.Err(), "fetch interrupted")
		}
		return nil, err
	}
	for _, rf := range pending {
		res.New = append(res.New, rf.rel)
	}
	return res, nil
}

// uniqueTargets collapses files that map to the same local path, which
// happens when flattening sub-directories with equal file names. The file
// listed last wins, keeping the position of the first.
func uniqueTargets(files []remoteFile, logger *log.Logger) []remoteFile {
	seen := make(map[string]int, len(files))
	out := files[:0:0]
	for _, rf := range files {
		if i, ok := seen[rf.rel]; ok {
			logger.Warn("duplicate file name, keeping the later one", "file", rf.rel, "dropped", out[i].url)
			out[i] = rf
			continue
		}
		seen[rf.rel] = len(out)
		out = append(out, rf)
	}
	return out
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.OutputDir == "" {
		o.OutputDir = "methods"
	}
	if o.Client == nil {
		o.Client = NewContentClient(o.Token)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.ListingTTL == 0 {
		o.ListingTTL = 10 * time.Minute
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

type fetcher struct {
	opts FetchOptions
	root TreeRef
}

// walk lists ref recursively and returns every downloadable file.
func (f *fetcher) walk(ctx context.Context, ref TreeRef) ([]remoteFile, error) {
	items, err := f.list(ctx, ref)
	if err != nil {
		return nil, err
	}

	var files []remoteFile
	for _, item := range items {
		if item.IsDir() {
			sub, err := f.walk(ctx, ref.Child(item.Path))
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		if item.DownloadURL == "" {
			continue
		}
		rel := f.relPath(item)
		if err := errors.ValidatePath(rel); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "remote file %s", item.Path)
		}
		files = append(files, remoteFile{rel: rel, url: item.DownloadURL})
	}
	return files, nil
}

// relPath places item below OutputDir: by name when flattening or when the
// URL named the file itself, otherwise relative to the requested directory.
func (f *fetcher) relPath(item ContentItem) string {
	if f.opts.Flatten || item.Path == f.root.Path {
		return item.Name
	}
	if f.root.Path == "" {
		return item.Path
	}
	return strings.TrimPrefix(item.Path, f.root.Path+"/")
}

func (f *fetcher) list(ctx context.Context, ref TreeRef) ([]ContentItem, error) {
	key := f.opts.Keyer.ListingKey(ref.ContentsURL(f.opts.Client.baseURL))
	hooks := observability.Cache()

	if data, ok, err := f.opts.Cache.Get(ctx, key); err == nil && ok {
		var items []ContentItem
		if json.Unmarshal(data, &items) == nil {
			hooks.OnCacheHit(ctx, "listing")
			return items, nil
		}
	}
	hooks.OnCacheMiss(ctx, "listing")

	items, err := f.opts.Client.ListContents(ctx, ref)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		if err := f.opts.Cache.Set(ctx, key, data, f.opts.ListingTTL); err == nil {
			hooks.OnCacheSet(ctx, "listing", len(data))
		}
	}
	return items, nil
}
