package rdf

import "context"

const (
	// DefaultMaxStatementBytes bounds how large a single token's
	// accumulation buffer may grow before a parser aborts, guarding
	// against unbounded memory growth on a missing terminator.
	DefaultMaxStatementBytes = 4 << 20
	// DefaultBufferSize is the chunk size the ParseNQuads/ParseNTriples
	// drivers read from their io.Reader. ParseRDFXML reads through
	// encoding/xml and does not use it.
	DefaultBufferSize = 64 * 1024
)

// Options configures a streaming parser. Zero value is not meaningful on
// its own; construct via buildOptions (NewXParser/ParseX do this).
type Options struct {
	ErrorRecovery     bool
	MaxStatementBytes int
	BufferSize        int
	BaseIRI           string
	Context           context.Context
	GraphHandler      func(error)
}

// Option configures an Options value.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		MaxStatementBytes: DefaultMaxStatementBytes,
		BufferSize:        DefaultBufferSize,
	}
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithErrorRecovery enables N-Quads recovery instead of fail-fast abort on
// the first error: the current statement is discarded and input is skipped
// up to the next '.' character (a '.' inside a skipped IRI or literal also
// ends the skip). RDF/XML always fails fast and ignores this option.
func WithErrorRecovery(enabled bool) Option {
	return func(o *Options) { o.ErrorRecovery = enabled }
}

// WithGraphHandler registers a callback the N-Quads/N-Triples parser
// invokes with every parse error, regardless of recovery mode, mirroring
// N-Quads' processor-graph-handler. The RDF/XML parser does not call it.
func WithGraphHandler(fn func(error)) Option {
	return func(o *Options) { o.GraphHandler = fn }
}

// WithContext sets the context a parse driver checks for cancellation when
// the driver's own ctx argument is nil; a non-nil ctx argument is used
// instead.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Context = ctx }
}

// WithMaxStatementBytes bounds the size a single token's cross-buffer
// accumulation may reach before the parser aborts with ErrStructural.
// A value <= 0 disables the limit.
func WithMaxStatementBytes(n int) Option {
	return func(o *Options) { o.MaxStatementBytes = n }
}

// WithBufferSize sets the chunk size the ParseNQuads/ParseNTriples drivers
// read from their io.Reader. ParseRDFXML ignores it.
func WithBufferSize(n int) Option {
	return func(o *Options) { o.BufferSize = n }
}

// WithBaseIRI sets the initial base IRI (RDF/XML's xml:base, or the base
// against which N-Quads resolves nothing — N-Quads requires absolute IRIs
// and never resolves relative ones).
func WithBaseIRI(iri string) Option {
	return func(o *Options) { o.BaseIRI = iri }
}
