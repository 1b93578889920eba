package rdf

import (
	"context"
	"io"
)

// Parse dispatches to the streaming parser matching format, feeding
// statements to sink. N-Triples and RDF/XML only ever produce triples;
// Parse adapts sink with AsTripleSink so a single QuadSink-typed caller can
// drive any of the three formats uniformly.
func Parse(ctx context.Context, r io.Reader, format Format, sink QuadSink, opts ...Option) error {
	switch format {
	case FormatNQuads:
		return ParseNQuads(ctx, r, sink, opts...)
	case FormatNTriples:
		return ParseNTriples(ctx, r, AsTripleSink(sink), opts...)
	case FormatRDFXML:
		return ParseRDFXML(ctx, r, AsTripleSink(sink), opts...)
	default:
		return ErrUnsupportedFormat
	}
}

// ParseTriples is Parse for callers that only ever want triples (no graph
// term). N-Quads input is accepted with every statement's graph term
// silently dropped (AsQuadSink flattens all graphs into sink), not
// filtered to the default graph — callers that care about named graphs
// should use Parse with a QuadSink instead.
func ParseTriples(ctx context.Context, r io.Reader, format Format, sink TripleSink, opts ...Option) error {
	switch format {
	case FormatNTriples:
		return ParseNTriples(ctx, r, sink, opts...)
	case FormatRDFXML:
		return ParseRDFXML(ctx, r, sink, opts...)
	case FormatNQuads:
		return ParseNQuads(ctx, r, AsQuadSink(sink), opts...)
	default:
		return ErrUnsupportedFormat
	}
}
