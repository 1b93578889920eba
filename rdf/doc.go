// Package rdf provides streaming decoders for N-Quads, N-Triples, and
// RDF/XML.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Author: Stephane Fellah (stephanef@geoknoesis.com)
// Geosemantic-AI expert with 30 years of experience
//
// Both parsers are push-style: the caller supplies a Sink and the parser
// calls it once per statement, in document order, synchronously. There is
// no pull-style Next() and no buffering of the whole input.
//
//   - NQuadsParser / NewNQuadsParser: 4-column N-Quads, one character-level
//     lexer shared with N-Triples.
//   - NewNTriplesParser: the same lexer restricted to the 3-column grammar
//     (no graph term), feeding a TripleSink.
//   - RdfXmlParser / NewRdfXmlParser: RDF/XML's node/property element
//     grammar, including rdf:parseType="Literal"/"Resource"/"Collection"
//     and rdf:ID reification.
//
// ParseNQuads and ParseNTriples are convenience drivers that read from an
// io.Reader in chunks and bracket a parser's Process calls with
// StartStream/EndStream; ParseRDFXML drives an RdfXmlParser from an
// encoding/xml token stream. Parse and ParseTriples dispatch on a Format
// value to the matching driver, adapting between QuadSink and TripleSink
// with AsQuadSink/AsTripleSink as needed.
//
// Example (decoding N-Quads):
//
//	sink := &rdf.CollectingSink{}
//	if err := rdf.ParseNQuads(ctx, r, sink); err != nil {
//	    // handle error
//	}
//	// sink.Quads now holds every quad in document order.
//
// Example (decoding RDF/XML into a custom sink):
//
//	err := rdf.ParseRDFXML(ctx, r, mySink, rdf.WithBaseIRI("http://example.org/"))
//
// N-Quads parsing can run in two modes: fail-fast (the default), which
// returns the first ParseError encountered, or WithErrorRecovery(true),
// which skips to the next "." and continues, optionally reporting each
// skipped error to a WithGraphHandler callback. RDF/XML always fails fast:
// a malformed element has no well-defined point to resume from.
//
// This package does not implement Turtle, TriG, or JSON-LD, and does not
// encode RDF back to any serialization; it decodes the three formats named
// above and nothing else.
package rdf
