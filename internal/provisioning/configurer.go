package provisioning

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wizzomafizzo/provisioner/internal/constants"
)

// Resolver turns an addition target into a local filesystem path.
type Resolver interface {
	Resolve(ctx context.Context, target string) (string, error)
}

// literal is used when no resolver is configured; targets are paths already.
type literal struct{}

func (literal) Resolve(_ context.Context, target string) (string, error) {
	return target, nil
}

// Options configures a Configurer.
type Options struct {
	// Fs is where directive sources are read from. Defaults to the OS filesystem.
	Fs afero.Fs
	// Resolver resolves addition targets. Defaults to returning targets unchanged.
	Resolver Resolver
	// Mode controls how exclusion text is matched.
	Mode ExclusionMode
}

// Configurer loads directive sources and answers which locations a module
// loader should add and which discovered locations it should reject.
//
// Queries read an immutable snapshot; Load replaces it in one atomic store,
// so concurrent readers see either the old pair or the new one.
type Configurer struct {
	fs       afero.Fs
	resolver Resolver
	current  atomic.Pointer[Snapshot]
	mode     ExclusionMode
}

// New creates a Configurer that adds nothing and excludes nothing until loaded.
func New(opts Options) *Configurer {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Resolver == nil {
		opts.Resolver = literal{}
	}

	return &Configurer{
		fs:       opts.Fs,
		resolver: opts.Resolver,
		mode:     opts.Mode,
	}
}

// Snapshot returns the currently published result. Never nil.
func (c *Configurer) Snapshot() *Snapshot {
	if s := c.current.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

// AdditionalLocations returns the locations to add, in directive order.
func (c *Configurer) AdditionalLocations() []*url.URL {
	return c.Snapshot().Additions()
}

// ShouldAccept reports whether a location found by the loader may be used.
// Candidates that do not name a local file are always accepted.
func (c *Configurer) ShouldAccept(candidate string) bool {
	return c.Snapshot().Accepts(candidate)
}

// Result reports what one load produced. Err is set when the scan stopped
// early; the partial result was still published.
type Result struct {
	Err        error
	Source     string
	Additions  []*url.URL
	Exclusions []string
	// Dropped holds resolved paths that could not become locations.
	Dropped []string
}

// Truncated reports whether the source was not scanned to the end.
func (r Result) Truncated() bool {
	return r.Err != nil
}

type pendingAddition struct {
	target string
	path   string
	line   int
}

type scanState struct {
	additions  []pendingAddition
	exclusions []Directive
}

// Load reads the directive source at path, resolves it and publishes the
// result. It never fails: problems are logged and reported in Result.Err.
func (c *Configurer) Load(ctx context.Context, path string) Result {
	logger := zerolog.Ctx(ctx)

	f, err := c.fs.Open(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSourceRead, err)
		logger.Error().Err(err).Str(constants.FieldSource, path).Msg("can't read directive source")
		return c.publish(ctx, path, scanState{}, err)
	}
	defer func() { _ = f.Close() }()

	return c.LoadReader(ctx, path, f)
}

// LoadReader is Load for an already opened source; name is used for logging.
func (c *Configurer) LoadReader(ctx context.Context, name string, r io.Reader) Result {
	st, err := c.scan(ctx, r)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str(constants.FieldSource, name).Msg("directive scan stopped early")
	}
	return c.publish(ctx, name, st, err)
}

func (c *Configurer) scan(ctx context.Context, r io.Reader) (scanState, error) {
	logger := zerolog.Ctx(ctx)
	var st scanState

	s := newLineScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("line %d: %w", lineNo, err)
		}

		d := Classify(s.Text(), lineNo)
		switch d.Kind {
		case KindBlank, KindComment:
			continue

		case KindExclusion:
			logger.Debug().Int(constants.FieldLine, lineNo).Str(constants.FieldPattern, d.Text).Msg("exclusion")
			st.exclusions = append(st.exclusions, d)

		case KindAddition:
			path, err := c.resolver.Resolve(ctx, d.Target)
			if err != nil {
				return st, &ResolveError{Err: err, Target: d.Target, Line: lineNo}
			}
			logger.Debug().
				Int(constants.FieldLine, lineNo).
				Str(constants.FieldTarget, d.Target).
				Str(constants.FieldPath, path).
				Msg("addition")
			st.additions = append(st.additions, pendingAddition{target: d.Target, path: path, line: lineNo})
		}
	}

	if err := s.Err(); err != nil {
		return st, fmt.Errorf("%w: line %d: %w", ErrSourceRead, lineNo+1, err)
	}

	return st, nil
}

// publish materializes scan output into a snapshot and stores it.
func (c *Configurer) publish(ctx context.Context, source string, st scanState, scanErr error) Result {
	logger := zerolog.Ctx(ctx)
	res := Result{Source: source, Err: scanErr}

	additions := make([]*url.URL, 0, len(st.additions))
	for _, p := range st.additions {
		loc, err := ToLocation(p.path)
		if err != nil {
			logger.Warn().Err(err).
				Int(constants.FieldLine, p.line).
				Str(constants.FieldTarget, p.target).
				Str(constants.FieldPath, p.path).
				Msg("can't add location")
			res.Dropped = append(res.Dropped, p.path)
			continue
		}
		additions = append(additions, loc)
	}

	prefixes := make([]string, 0, len(st.exclusions))
	for _, d := range st.exclusions {
		prefix := d.Pattern(c.mode)
		if prefix == "" {
			logger.Warn().Int(constants.FieldLine, d.Line).Msg("ignoring exclusion without a pattern")
			continue
		}
		prefixes = append(prefixes, prefix)
	}

	snap := &Snapshot{
		source:    source,
		additions: additions,
		filter:    NewPrefixFilter(prefixes),
	}
	c.current.Store(snap)

	res.Additions = snap.Additions()
	res.Exclusions = snap.filter.Prefixes()

	logger.Info().
		Str(constants.FieldSource, source).
		Int("additions", len(res.Additions)).
		Int("exclusions", len(res.Exclusions)).
		Int("dropped", len(res.Dropped)).
		Bool("truncated", res.Truncated()).
		Msg("provisioning configuration loaded")

	return res
}
