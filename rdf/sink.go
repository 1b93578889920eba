package rdf

// QuadSink is the abstract receiver both streaming parsers feed.
//
// A parser owns a sink exclusively for the duration of one stream: it calls
// StartStream before the first statement and EndStream after the last; a
// parse that stops with an error returns without calling EndStream.
// Statements are delivered in document order, one at a time, in
// one of four shapes depending on the object term and whether it carries a
// language tag or datatype. Implementations must treat every call as
// synchronous: the parser will not emit another statement until the current
// call returns.
type QuadSink interface {
	// StartStream is called once before any statement is emitted.
	StartStream() error

	// EndStream is called once after the last statement of a stream that
	// completes without error.
	EndStream() error

	// AddNonLiteral emits a statement whose object is an IRI or blank node.
	// graph is "" for the default graph.
	AddNonLiteral(subj, pred, obj string, graph string) error

	// AddIriRef emits a statement whose object is known to be an absolute
	// IRI. Sinks that don't distinguish this from AddNonLiteral may treat
	// the two identically.
	AddIriRef(subj, pred, objIRI string, graph string) error

	// AddPlainLiteral emits a statement whose object is a plain literal.
	// lang is "" when the literal carries no language tag.
	AddPlainLiteral(subj, pred, lexical, lang string, graph string) error

	// AddTypedLiteral emits a statement whose object is a typed literal.
	AddTypedLiteral(subj, pred, lexical, datatypeIRI string, graph string) error
}

// TripleSink is a QuadSink restricted to the default graph. RdfXmlParser
// only ever produces triples; AsQuadSink adapts a TripleSink so the same
// sink abstraction N-Quads uses can target either kind of sink.
type TripleSink interface {
	StartStream() error
	EndStream() error
	AddNonLiteral(subj, pred, obj string) error
	AddIriRef(subj, pred, objIRI string) error
	AddPlainLiteral(subj, pred, lexical, lang string) error
	AddTypedLiteral(subj, pred, lexical, datatypeIRI string) error
}

// AsQuadSink adapts a TripleSink to QuadSink, dropping the graph term: a
// non-empty graph is discarded, which is how ParseTriples flattens N-Quads
// input into a TripleSink.
func AsQuadSink(t TripleSink) QuadSink {
	return &tripleSinkAdapter{t: t}
}

type tripleSinkAdapter struct {
	t TripleSink
}

func (a *tripleSinkAdapter) StartStream() error { return a.t.StartStream() }
func (a *tripleSinkAdapter) EndStream() error   { return a.t.EndStream() }

func (a *tripleSinkAdapter) AddNonLiteral(subj, pred, obj, _ string) error {
	return a.t.AddNonLiteral(subj, pred, obj)
}

func (a *tripleSinkAdapter) AddIriRef(subj, pred, objIRI, _ string) error {
	return a.t.AddIriRef(subj, pred, objIRI)
}

func (a *tripleSinkAdapter) AddPlainLiteral(subj, pred, lexical, lang, _ string) error {
	return a.t.AddPlainLiteral(subj, pred, lexical, lang)
}

func (a *tripleSinkAdapter) AddTypedLiteral(subj, pred, lexical, datatypeIRI, _ string) error {
	return a.t.AddTypedLiteral(subj, pred, lexical, datatypeIRI)
}

// AsTripleSink adapts a QuadSink to TripleSink, passing "" as the graph on
// every call. Used by the format dispatcher to drive triple-only formats
// (N-Triples, RDF/XML) with a caller-supplied QuadSink.
func AsTripleSink(q QuadSink) TripleSink {
	return &quadSinkAdapter{q: q}
}

type quadSinkAdapter struct {
	q QuadSink
}

func (a *quadSinkAdapter) StartStream() error { return a.q.StartStream() }
func (a *quadSinkAdapter) EndStream() error   { return a.q.EndStream() }

func (a *quadSinkAdapter) AddNonLiteral(subj, pred, obj string) error {
	return a.q.AddNonLiteral(subj, pred, obj, "")
}

func (a *quadSinkAdapter) AddIriRef(subj, pred, objIRI string) error {
	return a.q.AddIriRef(subj, pred, objIRI, "")
}

func (a *quadSinkAdapter) AddPlainLiteral(subj, pred, lexical, lang string) error {
	return a.q.AddPlainLiteral(subj, pred, lexical, lang, "")
}

func (a *quadSinkAdapter) AddTypedLiteral(subj, pred, lexical, datatypeIRI string) error {
	return a.q.AddTypedLiteral(subj, pred, lexical, datatypeIRI, "")
}

// CollectingSink is a QuadSink that accumulates statements into a Quad
// slice, for callers that want pull-style access without implementing the
// sink methods themselves (a convenience, not a required collaborator).
type CollectingSink struct {
	Quads []Quad
}

func (c *CollectingSink) StartStream() error { return nil }
func (c *CollectingSink) EndStream() error   { return nil }

func (c *CollectingSink) AddNonLiteral(subj, pred, obj, graph string) error {
	c.Quads = append(c.Quads, Quad{S: parseNodeTerm(subj), P: IRI{Value: pred}, O: parseNodeTerm(obj), G: graphTerm(graph)})
	return nil
}

func (c *CollectingSink) AddIriRef(subj, pred, objIRI, graph string) error {
	c.Quads = append(c.Quads, Quad{S: parseNodeTerm(subj), P: IRI{Value: pred}, O: IRI{Value: objIRI}, G: graphTerm(graph)})
	return nil
}

func (c *CollectingSink) AddPlainLiteral(subj, pred, lexical, lang, graph string) error {
	c.Quads = append(c.Quads, Quad{S: parseNodeTerm(subj), P: IRI{Value: pred}, O: Literal{Lexical: lexical, Lang: lang}, G: graphTerm(graph)})
	return nil
}

func (c *CollectingSink) AddTypedLiteral(subj, pred, lexical, datatypeIRI, graph string) error {
	c.Quads = append(c.Quads, Quad{S: parseNodeTerm(subj), P: IRI{Value: pred}, O: Literal{Lexical: lexical, Datatype: IRI{Value: datatypeIRI}}, G: graphTerm(graph)})
	return nil
}

func graphTerm(graph string) Term {
	if graph == "" {
		return nil
	}
	return parseNodeTerm(graph)
}

// parseNodeTerm turns a subject/object/graph string back into a Term,
// recognizing the "_:" blank-node prefix the parsers use for their string
// arguments.
func parseNodeTerm(s string) Term {
	if len(s) > 2 && s[0] == '_' && s[1] == ':' {
		return BlankNode{ID: s[2:]}
	}
	return IRI{Value: s}
}
