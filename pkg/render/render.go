package render

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clevacompass/pkg/cache"
	"github.com/matzehuels/clevacompass/pkg/errors"
	"github.com/matzehuels/clevacompass/pkg/observability"
)

// DefaultPNGWidth is the pixel width of PNG output.
const DefaultPNGWidth = 2400

// Option configures a Renderer.
type Option func(*Renderer)

// WithCache memoises rendered artifacts in c.
func WithCache(c cache.Cache) Option { return func(r *Renderer) { r.cache = c } }

// WithCacheTTL sets how long rendered artifacts stay cached (default
// forever).
func WithCacheTTL(ttl time.Duration) Option { return func(r *Renderer) { r.ttl = ttl } }

// WithKeyer sets how cache keys are built.
func WithKeyer(k cache.Keyer) Option { return func(r *Renderer) { r.keyer = k } }

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// WithPNGWidth sets the PNG width in pixels.
func WithPNGWidth(w int) Option {
	return func(r *Renderer) {
		if w > 0 {
			r.pngWidth = w
		}
	}
}

// WithWorkDir sets where temporary build directories are created
// (default os.TempDir).
func WithWorkDir(dir string) Option { return func(r *Renderer) { r.workDir = dir } }

// Renderer compiles compass documents. It is safe for concurrent use; every
// render builds in its own temporary directory.
type Renderer struct {
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger
	pngWidth int
	workDir  string
	ttl      time.Duration
}

// New creates a Renderer. Without WithCache nothing is cached.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		logger:   log.Default(),
		pngWidth: DefaultPNGWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces f from the LaTeX document tex. FormatTeX returns tex as is.
func (r *Renderer) Render(ctx context.Context, tex string, f Format) ([]byte, error) {
	if f == FormatTeX {
		return []byte(tex), nil
	}
	if _, ok := contentTypes[f]; !ok {
		return nil, unsupported()
	}

	doc := Standalone(tex)
	key := r.keyer.ArtifactKey(cache.Hash([]byte(doc)), r.keyOpts(f))
	hooks := observability.Cache()
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, "artifact")
		r.logger.Debug("artifact cache hit", "format", f)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	if err := Available(f); err != nil {
		return nil, err
	}

	pipeline := observability.Pipeline()
	pipeline.OnRenderStart(ctx, string(f))
	start := time.Now()
	data, err := r.build(ctx, doc, f)
	pipeline.OnRenderComplete(ctx, string(f), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("rendered", "format", f, "bytes", len(data), "took", time.Since(start))

	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}

func (r *Renderer) keyOpts(f Format) cache.ArtifactKeyOpts {
	o := cache.ArtifactKeyOpts{Format: string(f)}
	if f == FormatPNG {
		o.Width = r.pngWidth
	}
	return o
}

func (r *Renderer) build(ctx context.Context, doc string, f Format) ([]byte, error) {
	dir, err := os.MkdirTemp(r.workDir, "clevacompass-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create build directory")
	}
	defer os.RemoveAll(dir)
	r.logger.Debug("compiling LaTeX", "dir", dir)

	pdf, err := compilePDF(ctx, dir, doc)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatSVG:
		return pdfToSVG(ctx, dir, pdf)
	case FormatPNG:
		return pdfToPNG(ctx, dir, pdf, r.pngWidth)
	default:
		return readOutput(pdf)
	}
}
