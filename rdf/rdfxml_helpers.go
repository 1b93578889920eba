package rdf

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// xmlAttr is an attribute as delivered to the event receiver, with the
// namespace already resolved to a URI (xmlns declarations stripped out and
// instead reported via startPrefixMapping).
type xmlAttr struct {
	Space, Local, Value string
}

// xmlEventReceiver is the narrow SAX-style surface RdfXmlParser implements.
// dispatchXMLToken drives it from an encoding/xml.Decoder; nothing else in
// this package depends on encoding/xml directly.
type xmlEventReceiver interface {
	startDocument() error
	startElement(nsURI, localName, qName string, attrs []xmlAttr) error
	characters(text string) error
	comment(text string) error
	processingInstruction(target, data string) error
	startPrefixMapping(prefix, uri string) error
	endElement(nsURI, localName, qName string) error
	endDocument() error
}

var _ xmlEventReceiver = (*RdfXmlParser)(nil)

// ParseRDFXML parses an RDF/XML document from r, emitting triples to sink.
// Unlike ParseNQuads/ParseNTriples, RDF/XML always fails fast: a malformed
// document has no well-defined recovery point to skip to.
func ParseRDFXML(ctx context.Context, r io.Reader, sink TripleSink, opts ...Option) error {
	parser := NewRdfXmlParser(sink, opts...)
	if ctx == nil {
		ctx = parser.opts.Context
	}
	if ctx == nil {
		ctx = context.Background()
	}

	dec := xml.NewDecoder(r)
	if err := parser.startDocument(); err != nil {
		return err
	}
	for {
		if err := checkContext(ctx); err != nil {
			return err
		}
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parser.wrapXMLErr(err)
		}
		parser.setPos(dec.InputOffset())
		if err := dispatchXMLToken(parser, tok); err != nil {
			return err
		}
	}
	return parser.endDocument()
}

func dispatchXMLToken(p *RdfXmlParser, tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		for _, a := range t.Attr {
			if prefix, uri, ok := namespaceDecl(a); ok {
				if err := p.startPrefixMapping(prefix, uri); err != nil {
					return err
				}
			}
		}
		attrs := make([]xmlAttr, 0, len(t.Attr))
		for _, a := range t.Attr {
			if _, _, ok := namespaceDecl(a); ok {
				continue
			}
			attrs = append(attrs, xmlAttr{Space: a.Name.Space, Local: a.Name.Local, Value: a.Value})
		}
		return p.startElement(t.Name.Space, t.Name.Local, qualifiedName(t.Name), attrs)

	case xml.EndElement:
		return p.endElement(t.Name.Space, t.Name.Local, qualifiedName(t.Name))

	case xml.CharData:
		return p.characters(string(t))

	case xml.Comment:
		return p.comment(string(t))

	case xml.ProcInst:
		return p.processingInstruction(t.Target, string(t.Inst))
	}
	return nil
}

// namespaceDecl reports whether a is an xmlns/xmlns:prefix declaration,
// which encoding/xml surfaces as an ordinary attribute rather than a
// distinct token type.
func namespaceDecl(a xml.Attr) (prefix, uri string, ok bool) {
	if a.Name.Space == "xmlns" {
		return a.Name.Local, a.Value, true
	}
	if a.Name.Space == "" && a.Name.Local == "xmlns" {
		return "", a.Value, true
	}
	return "", "", false
}

// qualifiedName joins a name's namespace URI and local part as
// "namespaceURI:local". encoding/xml discards the source document's
// original prefix strings, so this is not the source qName; captureEndTag
// maps it back to the prefix captureStartTag chose for the same namespace.
func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func (p *RdfXmlParser) wrapXMLErr(cause error) error {
	return p.newErr(ErrStructural, ErrUnexpectedChar, fmt.Sprintf("xml decode error: %v", cause))
}

// findAttr returns the value of the attribute in namespace space with the
// given local name, or "" if absent.
func findAttr(attrs []xmlAttr, space, local string) string {
	for _, a := range attrs {
		if a.Space == space && a.Local == local {
			return a.Value
		}
	}
	return ""
}

// isIgnoredNamespaceAttr reports whether a is any xml:* attribute
// (xml:lang and xml:base included; callers resolve those separately before
// skipping them) or a stray xmlns declaration the driver failed to filter.
func isIgnoredNamespaceAttr(a xmlAttr) bool {
	if a.Space == xmlNS {
		return true
	}
	if a.Space == "xmlns" || (a.Space == "" && a.Local == "xmlns") {
		return true
	}
	return false
}

// attrLang resolves the active xml:lang for an element: an explicit
// xml:lang attribute (including an explicit empty value, which resets the
// language) overrides the inherited value.
func attrLang(attrs []xmlAttr, inherited string) string {
	for _, a := range attrs {
		if a.Space == xmlNS && a.Local == "lang" {
			return a.Value
		}
	}
	return inherited
}

// resolveElementBase resolves the active xml:base for an element. A base
// set via xml:base is normalized to drop any fragment, so that later
// "base + '#' + id" concatenation (rdf:ID, reification) never produces a
// doubled fragment.
func (p *RdfXmlParser) resolveElementBase(attrs []xmlAttr, inherited string) (string, error) {
	for _, a := range attrs {
		if a.Space == xmlNS && a.Local == "base" {
			resolved := resolveIRI(inherited, a.Value)
			if err := validateAbsoluteIRI(resolved); err != nil {
				return "", p.newErr(ErrIRI, err, resolved)
			}
			return normalizeBase(resolved), nil
		}
	}
	return inherited, nil
}

func normalizeBase(base string) string {
	if idx := strings.LastIndex(base, "#"); idx >= 0 {
		return base[:idx]
	}
	return base
}

// forbiddenRDFNames is the schema-violation set: names that may not appear
// as a property element's tag, nor as an ordinary attribute on a node or
// property element, because each already carries special meaning or was
// deprecated out of the language.
var forbiddenRDFNames = map[string]bool{
	"parseType":       true,
	"aboutEach":       true,
	"aboutEachPrefix": true,
	"bagID":           true,
	"datatype":        true,
	"about":           true,
	"resource":        true,
	"nodeID":          true,
	"ID":              true,
}

func isForbiddenRDFName(local string) bool {
	return forbiddenRDFNames[local]
}

// captureStartTag appends a verbatim open tag to a parseType="Literal"
// accumulation. Exact prefix strings from the source document are not
// available via encoding/xml, so prefixes are re-derived from the
// namespace mappings observed during capture (falling back to a
// synthesized nsN prefix for an unmapped URI).
func (p *RdfXmlParser) captureStartTag(frame *rdfxmlFrame, nsURI, localName, qName string, attrs []xmlAttr) {
	tag := frame.literalTagName(nsURI, localName)
	frame.literalBuf.WriteString("<" + tag)
	if nsURI != "" {
		if prefix := frame.literalPrefixFor(nsURI); prefix != "" && prefix != "xml" {
			frame.literalBuf.WriteString(fmt.Sprintf(" xmlns:%s=%q", prefix, nsURI))
		}
	}
	for _, a := range attrs {
		if isIgnoredNamespaceAttr(a) {
			continue
		}
		attrName := a.Local
		if a.Space != "" {
			attrName = frame.literalTagName(a.Space, a.Local)
		}
		frame.literalBuf.WriteString(fmt.Sprintf(" %s=%q", attrName, a.Value))
	}
	frame.literalBuf.WriteString(">")
	_ = qName
}

func (p *RdfXmlParser) captureEndTag(frame *rdfxmlFrame, qName string) {
	nsURI, localName := "", qName
	if idx := strings.LastIndex(qName, ":"); idx >= 0 {
		nsURI, localName = qName[:idx], qName[idx+1:]
	}
	frame.literalBuf.WriteString("</" + frame.literalTagName(nsURI, localName) + ">")
}

// literalTagName derives a qualified name for nsURI+localName within a
// parseType="Literal" capture, minting a synthetic prefix on first use of
// an unmapped namespace.
func (f *rdfxmlFrame) literalTagName(nsURI, localName string) string {
	prefix := f.literalPrefixFor(nsURI)
	if prefix == "" {
		return localName
	}
	return prefix + ":" + localName
}

func (f *rdfxmlFrame) literalPrefixFor(nsURI string) string {
	if nsURI == "" {
		return ""
	}
	if nsURI == rdfNS {
		return "rdf"
	}
	if nsURI == xmlNS {
		return "xml"
	}
	if f.nsScope == nil {
		f.nsScope = map[string]string{}
	}
	for prefix, uri := range f.nsScope {
		if uri == nsURI && prefix != "" {
			return prefix
		}
	}
	prefix := fmt.Sprintf("ns%d", len(f.nsScope))
	f.nsScope[prefix] = nsURI
	return prefix
}

// xmlEscapeText escapes character data for inclusion in a parseType
// ="Literal" verbatim accumulation.
func xmlEscapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
