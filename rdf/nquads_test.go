package rdf

import (
	"context"
	"strings"
	"testing"
)

func parseNQuadsString(t *testing.T, input string, opts ...Option) *CollectingSink {
	t.Helper()
	sink := &CollectingSink{}
	if err := ParseNQuads(context.Background(), strings.NewReader(input), sink, opts...); err != nil {
		t.Fatalf("ParseNQuads: %v", err)
	}
	return sink
}

func TestNQuadsBasicTriple(t *testing.T) {
	sink := parseNQuadsString(t, `<http://example.org/s> <http://example.org/p> <http://example.org/o> .`+"\n")
	if len(sink.Quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(sink.Quads))
	}
	q := sink.Quads[0]
	if q.S.String() != "http://example.org/s" || q.P.Value != "http://example.org/p" || q.O.String() != "http://example.org/o" {
		t.Fatalf("unexpected quad: %+v", q)
	}
	if !q.InDefaultGraph() {
		t.Fatalf("expected default graph")
	}
}

func TestNQuadsNamedGraph(t *testing.T) {
	sink := parseNQuadsString(t, `<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .`+"\n")
	if len(sink.Quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(sink.Quads))
	}
	q := sink.Quads[0]
	if q.InDefaultGraph() {
		t.Fatalf("expected named graph")
	}
	if q.G.String() != "http://example.org/g" {
		t.Fatalf("unexpected graph: %v", q.G)
	}
}

func TestNQuadsLanguageTaggedLiteral(t *testing.T) {
	sink := parseNQuadsString(t, `<http://example.org/s> <http://example.org/p> "hello"@en .`+"\n")
	lit, ok := sink.Quads[0].O.(Literal)
	if !ok {
		t.Fatalf("object is not a literal: %+v", sink.Quads[0].O)
	}
	if lit.Lexical != "hello" || lit.Lang != "en" {
		t.Fatalf("unexpected literal: %+v", lit)
	}
}

func TestNQuadsTypedLiteral(t *testing.T) {
	sink := parseNQuadsString(t, `<http://example.org/s> <http://example.org/p> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .`+"\n")
	lit, ok := sink.Quads[0].O.(Literal)
	if !ok {
		t.Fatalf("object is not a literal: %+v", sink.Quads[0].O)
	}
	if lit.Lexical != "42" || lit.Datatype.Value != "http://www.w3.org/2001/XMLSchema#integer" {
		t.Fatalf("unexpected literal: %+v", lit)
	}
}

func TestNQuadsBlankNodes(t *testing.T) {
	sink := parseNQuadsString(t, `_:a <http://example.org/p> _:a .`+"\n")
	q := sink.Quads[0]
	subj, ok := q.S.(BlankNode)
	if !ok {
		t.Fatalf("subject is not a blank node: %+v", q.S)
	}
	obj, ok := q.O.(BlankNode)
	if !ok {
		t.Fatalf("object is not a blank node: %+v", q.O)
	}
	if subj.ID != obj.ID {
		t.Fatalf("same input label produced different ids: %q vs %q", subj.ID, obj.ID)
	}
}

func TestNQuadsComment(t *testing.T) {
	input := "# a leading comment\n" +
		`<http://example.org/s> <http://example.org/p> <http://example.org/o> .` + "\n" +
		"# a trailing comment with a <fake> . token\n"
	sink := parseNQuadsString(t, input)
	if len(sink.Quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(sink.Quads))
	}
}

func TestNQuadsEscapeSequences(t *testing.T) {
	sink := parseNQuadsString(t, `<http://example.org/s> <http://example.org/p> "tab\tquote\"backslash\\" .`+"\n")
	lit := sink.Quads[0].O.(Literal)
	want := "tab\tquote\"backslash\\"
	if lit.Lexical != want {
		t.Fatalf("got %q want %q", lit.Lexical, want)
	}
}

func TestNQuadsUnicodeEscape(t *testing.T) {
	sink := parseNQuadsString(t, `<http://example.org/s> <http://example.org/p> "caf\U000000E9" .`+"\n")
	lit := sink.Quads[0].O.(Literal)
	if lit.Lexical != "café" {
		t.Fatalf("got %q", lit.Lexical)
	}
}

// TestNQuadsChunking feeds the same input one byte at a time and confirms
// the result is identical to a single-call parse, including when an escape
// sequence straddles two Process calls.
func TestNQuadsChunking(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> "caf\U000000E9"@fr .` + "\n" +
		`_:b1 <http://example.org/p2> "plain" .` + "\n"

	whole := &CollectingSink{}
	if err := ParseNQuads(context.Background(), strings.NewReader(input), whole); err != nil {
		t.Fatalf("whole parse: %v", err)
	}

	chunked := &CollectingSink{}
	parser := NewNQuadsParser(chunked)
	if err := parser.StartStream(); err != nil {
		t.Fatalf("StartStream: %v", err)
	}
	for i := 0; i < len(input); i++ {
		if err := parser.Process([]byte{input[i]}); err != nil {
			t.Fatalf("Process byte %d: %v", i, err)
		}
	}
	if err := parser.EndStream(); err != nil {
		t.Fatalf("EndStream: %v", err)
	}

	if len(whole.Quads) != len(chunked.Quads) {
		t.Fatalf("quad count differs: whole=%d chunked=%d", len(whole.Quads), len(chunked.Quads))
	}
	for i := range whole.Quads {
		if whole.Quads[i].O.String() != chunked.Quads[i].O.String() {
			t.Fatalf("quad %d differs: whole=%v chunked=%v", i, whole.Quads[i].O, chunked.Quads[i].O)
		}
	}
}

func TestNQuadsRelativeIRIRejected(t *testing.T) {
	sink := &CollectingSink{}
	err := ParseNQuads(context.Background(), strings.NewReader(`<s> <http://example.org/p> <http://example.org/o> .`+"\n"), sink)
	if err == nil {
		t.Fatalf("expected error for relative IRI")
	}
	var pe *ParseError
	if !asParseError(err, &pe) || pe.Kind != ErrIRI {
		t.Fatalf("expected ErrIRI, got %v", err)
	}
}

func TestNQuadsErrorRecovery(t *testing.T) {
	input := `<s> <http://example.org/p> <http://example.org/o> .` + "\n" +
		`<http://example.org/s2> <http://example.org/p> <http://example.org/o> .` + "\n"
	sink := &CollectingSink{}
	var recovered []error
	err := ParseNQuads(context.Background(), strings.NewReader(input), sink,
		WithErrorRecovery(true),
		WithGraphHandler(func(e error) { recovered = append(recovered, e) }))
	if err != nil {
		t.Fatalf("expected recovery to swallow the error, got %v", err)
	}
	if len(recovered) != 1 {
		t.Fatalf("expected 1 recovered error, got %d", len(recovered))
	}
	if len(sink.Quads) != 1 {
		t.Fatalf("expected the second, well-formed statement to parse, got %d quads", len(sink.Quads))
	}
}

func TestNTriplesRejectsFourthTerm(t *testing.T) {
	sink := &CollectingSink{}
	err := ParseNTriples(context.Background(), strings.NewReader(
		`<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .`+"\n"),
		AsTripleSink(sink))
	if err == nil {
		t.Fatalf("expected error for graph term in N-Triples input")
	}
}

func asParseError(err error, target **ParseError) bool {
	if pe, ok := err.(*ParseError); ok {
		*target = pe
		return true
	}
	return false
}
