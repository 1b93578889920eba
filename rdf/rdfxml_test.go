package rdf

import (
	"context"
	"strings"
	"testing"
)

func parseRDFXMLString(t *testing.T, input string, opts ...Option) *CollectingSink {
	t.Helper()
	sink := &CollectingSink{}
	if err := ParseRDFXML(context.Background(), strings.NewReader(input), AsTripleSink(sink), opts...); err != nil {
		t.Fatalf("ParseRDFXML: %v", err)
	}
	return sink
}

func TestRDFXMLBasicDescription(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <rdf:Description rdf:about="http://example.org/book">
    <dc:title>A Book</dc:title>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	if len(sink.Quads) != 1 {
		t.Fatalf("got %d quads, want 1: %+v", len(sink.Quads), sink.Quads)
	}
	q := sink.Quads[0]
	if q.S.String() != "http://example.org/book" || q.P.Value != "http://purl.org/dc/elements/1.1/title" {
		t.Fatalf("unexpected quad: %+v", q)
	}
	lit, ok := q.O.(Literal)
	if !ok || lit.Lexical != "A Book" {
		t.Fatalf("unexpected object: %+v", q.O)
	}
}

func TestRDFXMLTypedNodeElement(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <ex:Book rdf:about="http://example.org/book"/>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	if len(sink.Quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(sink.Quads))
	}
	q := sink.Quads[0]
	if q.P.Value != rdfNS+"type" {
		t.Fatalf("expected rdf:type, got %v", q.P)
	}
	if q.O.String() != "http://example.org/ns#Book" {
		t.Fatalf("unexpected type object: %v", q.O)
	}
}

func TestRDFXMLNestedResourceAttribute(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <rdf:Description rdf:about="http://example.org/a">
    <ex:knows rdf:resource="http://example.org/b"/>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	if len(sink.Quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(sink.Quads))
	}
	q := sink.Quads[0]
	if q.S.String() != "http://example.org/a" || q.P.Value != "http://example.org/ns#knows" || q.O.String() != "http://example.org/b" {
		t.Fatalf("unexpected quad: %+v", q)
	}
}

func TestRDFXMLNestedNodeElement(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <rdf:Description rdf:about="http://example.org/a">
    <ex:knows>
      <rdf:Description rdf:about="http://example.org/b"/>
    </ex:knows>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	if len(sink.Quads) != 1 {
		t.Fatalf("got %d quads, want 1: %+v", len(sink.Quads), sink.Quads)
	}
	q := sink.Quads[0]
	if q.S.String() != "http://example.org/a" || q.P.Value != "http://example.org/ns#knows" || q.O.String() != "http://example.org/b" {
		t.Fatalf("unexpected quad: %+v", q)
	}
}

func TestRDFXMLLanguageTag(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <rdf:Description rdf:about="http://example.org/book" xml:lang="en">
    <dc:title>A Book</dc:title>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	lit := sink.Quads[0].O.(Literal)
	if lit.Lang != "en" {
		t.Fatalf("expected inherited xml:lang=en, got %q", lit.Lang)
	}
}

func TestRDFXMLDatatype(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <rdf:Description rdf:about="http://example.org/a">
    <ex:age rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">42</ex:age>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	lit := sink.Quads[0].O.(Literal)
	if lit.Lexical != "42" || lit.Datatype.Value != "http://www.w3.org/2001/XMLSchema#integer" {
		t.Fatalf("unexpected literal: %+v", lit)
	}
}

func TestRDFXMLParseTypeResource(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <rdf:Description rdf:about="http://example.org/a">
    <ex:address rdf:parseType="Resource">
      <ex:city>Springfield</ex:city>
    </ex:address>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	if len(sink.Quads) != 2 {
		t.Fatalf("got %d quads, want 2: %+v", len(sink.Quads), sink.Quads)
	}
	edge := sink.Quads[0]
	if edge.P.Value != "http://example.org/ns#address" {
		t.Fatalf("unexpected first quad: %+v", edge)
	}
	bnode, ok := edge.O.(BlankNode)
	if !ok {
		t.Fatalf("expected blank node object, got %+v", edge.O)
	}
	city := sink.Quads[1]
	if city.S.(BlankNode).ID != bnode.ID || city.P.Value != "http://example.org/ns#city" {
		t.Fatalf("unexpected second quad: %+v", city)
	}
}

func TestRDFXMLLiPredicates(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Seq rdf:about="http://example.org/seq">
    <rdf:li>one</rdf:li>
    <rdf:li>two</rdf:li>
  </rdf:Seq>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)
	// quad 0 is rdf:type Seq; quads 1,2 are rdf:_1/_2
	var liQuads []Quad
	for _, q := range sink.Quads {
		if strings.HasPrefix(q.P.Value, rdfNS+"_") {
			liQuads = append(liQuads, q)
		}
	}
	if len(liQuads) != 2 {
		t.Fatalf("got %d li quads, want 2: %+v", len(liQuads), sink.Quads)
	}
	if liQuads[0].P.Value != rdfNS+"_1" || liQuads[1].P.Value != rdfNS+"_2" {
		t.Fatalf("unexpected li predicates: %v, %v", liQuads[0].P, liQuads[1].P)
	}
}

// TestRDFXMLCollection reproduces the worked Collection example: two items
// under a parseType="Collection" property produce a well-formed rdf:first/
// rdf:rest list terminated with rdf:nil.
func TestRDFXMLCollection(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <rdf:Description rdf:about="http://example.org/outer">
    <ex:p rdf:parseType="Collection">
      <rdf:Description rdf:about="http://example.org/x"/>
      <rdf:Description rdf:about="http://example.org/y"/>
    </ex:p>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input)

	var head string
	for _, q := range sink.Quads {
		if q.S.String() == "http://example.org/outer" && q.P.Value == "http://example.org/ns#p" {
			head = q.O.String()
		}
	}
	if head == "" {
		t.Fatalf("did not find (outer,p,head) edge: %+v", sink.Quads)
	}

	first := map[string]string{}
	rest := map[string]string{}
	for _, q := range sink.Quads {
		switch q.P.Value {
		case rdfNS + "first":
			first[q.S.String()] = q.O.String()
		case rdfNS + "rest":
			rest[q.S.String()] = q.O.String()
		}
	}

	if first[head] != "http://example.org/x" {
		t.Fatalf("expected head's rdf:first to be x, got %q", first[head])
	}
	b1 := rest[head]
	if b1 == "" {
		t.Fatalf("expected head's rdf:rest to point to a second cell")
	}
	if first[b1] != "http://example.org/y" {
		t.Fatalf("expected second cell's rdf:first to be y, got %q", first[b1])
	}
	if rest[b1] != rdfNS+"nil" {
		t.Fatalf("expected second cell's rdf:rest to be rdf:nil, got %q", rest[b1])
	}
}

func TestRDFXMLReification(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <rdf:Description rdf:about="http://example.org/a">
    <ex:knows rdf:resource="http://example.org/b" rdf:ID="stmt1"/>
  </rdf:Description>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input, WithBaseIRI("http://example.org/doc"))

	byPred := map[string][]Quad{}
	for _, q := range sink.Quads {
		byPred[q.P.Value] = append(byPred[q.P.Value], q)
	}

	reifyIRI := "http://example.org/doc#stmt1"
	typeQuads := byPred[rdfNS+"type"]
	found := false
	for _, q := range typeQuads {
		if q.S.String() == reifyIRI && q.O.String() == rdfNS+"Statement" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected reification rdf:type Statement for %s: %+v", reifyIRI, sink.Quads)
	}

	subjQuads := byPred[rdfNS+"subject"]
	if len(subjQuads) != 1 || subjQuads[0].S.String() != reifyIRI || subjQuads[0].O.String() != "http://example.org/a" {
		t.Fatalf("unexpected rdf:subject quads: %+v", subjQuads)
	}

	objQuads := byPred[rdfNS+"object"]
	if len(objQuads) != 1 || objQuads[0].S.String() != reifyIRI || objQuads[0].O.String() != "http://example.org/b" {
		t.Fatalf("unexpected rdf:object quads: %+v", objQuads)
	}
}

func TestRDFXMLAmbiguousSubjectRejected(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="http://example.org/a" rdf:nodeID="b1"/>
</rdf:RDF>`
	sink := &CollectingSink{}
	err := ParseRDFXML(context.Background(), strings.NewReader(input), AsTripleSink(sink))
	if err == nil {
		t.Fatalf("expected error for ambiguous subject")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrSchema {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestRDFXMLRdfIDWithoutPropertiesEmitsNothing(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:ID="thing"/>
</rdf:RDF>`
	sink := parseRDFXMLString(t, input, WithBaseIRI("http://example.org/doc"))
	if len(sink.Quads) != 0 {
		t.Fatalf("rdf:Description with no properties should emit no quads, got %+v", sink.Quads)
	}
}

func TestRDFXMLXmlBaseWithFragmentNotDoubled(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/ns#">
  <rdf:Description xml:base="http://example.org/doc#frag" rdf:ID="thing">
    <ex:name>Thing</ex:name>
  </rdf:Description>
</rdf:RDF>`
	// normalizeBase should strip "#frag" from the element's xml:base before
	// rdf:ID concatenates its own fragment, so the subject gets exactly one.
	sink := parseRDFXMLString(t, input)
	var subj string
	for _, q := range sink.Quads {
		if q.P.Value == "http://example.org/ns#name" {
			subj = q.S.String()
		}
	}
	if subj != "http://example.org/doc#thing" {
		t.Fatalf("expected subject http://example.org/doc#thing, got %q", subj)
	}
}

func TestRDFXMLForbiddenAttributeOnNodeElement(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="http://example.org/a" rdf:aboutEach="http://example.org/b"/>
</rdf:RDF>`
	sink := &CollectingSink{}
	err := ParseRDFXML(context.Background(), strings.NewReader(input), AsTripleSink(sink))
	if err == nil {
		t.Fatalf("expected error for forbidden rdf:aboutEach attribute")
	}
}
