package rdf

import (
	"bytes"
	"fmt"
)

const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
const xmlNS = "http://www.w3.org/XML/1998/namespace"

// rdfxmlMode is one of the five RDF/XML grammar modes, selecting how a
// frame's child elements are interpreted.
type rdfxmlMode uint8

const (
	modeInsideOfProperty rdfxmlMode = iota
	modeInsideOfResource
	modeParseTypeLiteral
	modeParseTypeCollection
	modeParseTypeResource
)

// rdfxmlFrame is pushed on every startElement and popped on every
// endElement, replacing the four parallel stacks (mode/lang/base/subject,
// plus per-subject li counters) with a single stack of frames.
type rdfxmlFrame struct {
	mode    rdfxmlMode
	lang    string
	base    string
	liIndex int

	// subject/pred describe, for a property element's own frame, the
	// (subject, predicate) pair its value attaches to. For a resource
	// frame (INSIDE_OF_RESOURCE/PARSE_TYPE_RESOURCE), subject is the
	// resource itself and pred is unused.
	subject string
	pred    string

	captureLiteral  bool
	hadChildElement bool
	text            bytes.Buffer
	datatype        string
	reifyIRI        string

	collHead string
	collTail string

	literalBuf   bytes.Buffer
	literalDepth int
	nsScope      map[string]string
}

// RdfXmlParser is an XML-event-driven parser producing triples. It
// implements xmlEventReceiver; ParseRDFXML drives it from an
// encoding/xml.Decoder.
type RdfXmlParser struct {
	sink   TripleSink
	opts   Options
	bnodes *blankNodeGenerator
	stack  []rdfxmlFrame

	curOffset int64
}

// NewRdfXmlParser creates a parser that emits triples to sink.
func NewRdfXmlParser(sink TripleSink, opts ...Option) *RdfXmlParser {
	return &RdfXmlParser{sink: sink, opts: buildOptions(opts), bnodes: newBlankNodeGenerator()}
}

func (p *RdfXmlParser) setPos(offset int64) { p.curOffset = offset }

func (p *RdfXmlParser) push(f rdfxmlFrame) { p.stack = append(p.stack, f) }
func (p *RdfXmlParser) pop()               { p.stack = p.stack[:len(p.stack)-1] }

func (p *RdfXmlParser) startDocument() error {
	p.stack = p.stack[:0]
	p.bnodes.reset()
	p.push(rdfxmlFrame{mode: modeInsideOfProperty, base: p.opts.BaseIRI, liIndex: 1})
	return p.sink.StartStream()
}

func (p *RdfXmlParser) endDocument() error {
	if len(p.stack) != 1 {
		return p.structErr("unclosed element at end of document")
	}
	return p.sink.EndStream()
}

func (p *RdfXmlParser) startElement(nsURI, localName, qName string, attrs []xmlAttr) error {
	if len(p.stack) == 0 {
		return p.structErr("startElement before startDocument")
	}
	parent := &p.stack[len(p.stack)-1]

	if parent.mode == modeParseTypeLiteral {
		p.captureStartTag(parent, nsURI, localName, qName, attrs)
		parent.literalDepth++
		return nil
	}

	lang := attrLang(attrs, parent.lang)
	base, err := p.resolveElementBase(attrs, parent.base)
	if err != nil {
		return err
	}

	// The rdf:RDF wrapper, if present, is transparent: its children are
	// the real top-level node elements, not a node element itself.
	if nsURI == rdfNS && localName == "RDF" && parent.subject == "" && parent.pred == "" && parent.mode == modeInsideOfProperty {
		p.push(rdfxmlFrame{mode: modeInsideOfProperty, lang: lang, base: base, liIndex: 1})
		return nil
	}

	switch parent.mode {
	case modeInsideOfProperty, modeParseTypeCollection:
		return p.startNodeElement(parent, nsURI, localName, attrs, lang, base)
	case modeInsideOfResource, modeParseTypeResource:
		return p.startPropertyElement(parent, nsURI, localName, attrs, lang, base)
	default:
		return p.structErr("unexpected element in current mode")
	}
}

func (p *RdfXmlParser) startNodeElement(parent *rdfxmlFrame, nsURI, localName string, attrs []xmlAttr, lang, base string) error {
	if nsURI == rdfNS && localName == "li" {
		return p.schemaErr("rdf:li is not allowed as a node element")
	}

	subject, err := p.nodeSubject(attrs, base)
	if err != nil {
		return err
	}

	if parent.mode != modeParseTypeCollection && parent.subject != "" && parent.pred != "" {
		if err := p.sink.AddNonLiteral(parent.subject, parent.pred, subject); err != nil {
			return err
		}
		parent.hadChildElement = true
	}

	if !(nsURI == rdfNS && localName == "Description") {
		typeIRI, err := resolveNoResolve(nsURI, localName)
		if err != nil {
			return p.iriErrf("element %s%s: %v", nsURI, localName, err)
		}
		if err := p.sink.AddIriRef(subject, rdfNS+"type", typeIRI); err != nil {
			return err
		}
	}

	for _, a := range attrs {
		if isIgnoredNamespaceAttr(a) {
			continue
		}
		if a.Space == rdfNS {
			switch a.Local {
			case "about", "ID", "nodeID":
				continue
			case "type":
				if err := p.sink.AddIriRef(subject, rdfNS+"type", resolveIRI(base, a.Value)); err != nil {
					return err
				}
				continue
			default:
				if isForbiddenRDFName(a.Local) {
					return p.schemaErrf("attribute rdf:%s is not allowed on a node element", a.Local)
				}
			}
		}
		predIRI, err := resolveNoResolve(a.Space, a.Local)
		if err != nil {
			return p.iriErrf("attribute %s%s: %v", a.Space, a.Local, err)
		}
		if err := p.sink.AddPlainLiteral(subject, predIRI, a.Value, lang); err != nil {
			return err
		}
	}

	p.push(rdfxmlFrame{mode: modeInsideOfResource, lang: lang, base: base, subject: subject, liIndex: 1})
	return nil
}

func (p *RdfXmlParser) nodeSubject(attrs []xmlAttr, base string) (string, error) {
	about := findAttr(attrs, rdfNS, "about")
	id := findAttr(attrs, rdfNS, "ID")
	nodeID := findAttr(attrs, rdfNS, "nodeID")

	count := 0
	for _, v := range []string{about, id, nodeID} {
		if v != "" {
			count++
		}
	}
	if count > 1 {
		return "", p.newErr(ErrSchema, ErrAmbiguousSubject, "node element")
	}

	switch {
	case about != "":
		resolved := resolveIRI(base, about)
		if err := validateAbsoluteIRI(resolved); err != nil {
			return "", p.newErr(ErrIRI, err, resolved)
		}
		return resolved, nil
	case id != "":
		if !isValidNCName(id) {
			return "", p.iriErr(id)
		}
		return base + "#" + id, nil
	case nodeID != "":
		if !isValidNCName(nodeID) {
			return "", p.iriErr(nodeID)
		}
		return "_:" + p.bnodes.forLabel(nodeID), nil
	default:
		return "_:" + p.bnodes.fresh(), nil
	}
}

func (p *RdfXmlParser) startPropertyElement(parent *rdfxmlFrame, nsURI, localName string, attrs []xmlAttr, lang, base string) error {
	if nsURI == rdfNS && (localName == "Description" || localName == "nil") {
		return p.schemaErrf("rdf:%s is not allowed as a property element", localName)
	}
	if nsURI == rdfNS && isForbiddenRDFName(localName) {
		return p.schemaErrf("rdf:%s is not allowed as a property element", localName)
	}
	if nsURI == "" {
		return p.iriErrf("property element %q has no namespace", localName)
	}

	var predIRI string
	if nsURI == rdfNS && localName == "li" {
		predIRI = fmt.Sprintf("%s_%d", rdfNS, parent.liIndex)
		parent.liIndex++
	} else {
		var err error
		predIRI, err = resolveNoResolve(nsURI, localName)
		if err != nil {
			return p.iriErrf("property element %s%s: %v", nsURI, localName, err)
		}
	}

	resource := findAttr(attrs, rdfNS, "resource")
	nodeID := findAttr(attrs, rdfNS, "nodeID")
	parseType := findAttr(attrs, rdfNS, "parseType")
	idAttr := findAttr(attrs, rdfNS, "ID")
	datatype := findAttr(attrs, rdfNS, "datatype")

	if resource != "" && nodeID != "" {
		return p.schemaErr("rdf:resource and rdf:nodeID are mutually exclusive")
	}
	if parseType != "" {
		if resource != "" || nodeID != "" {
			return p.schemaErr("rdf:parseType cannot be combined with rdf:resource or rdf:nodeID")
		}
		for _, a := range attrs {
			if isIgnoredNamespaceAttr(a) {
				continue
			}
			if a.Space == rdfNS && (a.Local == "parseType" || a.Local == "ID") {
				continue
			}
			return p.schemaErr("rdf:parseType cannot be combined with other attributes")
		}
	}

	var reifyIRI string
	if idAttr != "" {
		if !isValidNCName(idAttr) {
			return p.iriErr(idAttr)
		}
		reifyIRI = base + "#" + idAttr
	}

	switch {
	case resource != "":
		obj := resolveIRI(base, resource)
		if err := validateAbsoluteIRI(obj); err != nil {
			return p.newErr(ErrIRI, err, obj)
		}
		if err := p.sink.AddIriRef(parent.subject, predIRI, obj); err != nil {
			return err
		}
		if reifyIRI != "" {
			if err := p.emitReifyNode(reifyIRI, parent.subject, predIRI, obj); err != nil {
				return err
			}
		}
		p.push(rdfxmlFrame{mode: modeInsideOfProperty, lang: lang, base: base, subject: parent.subject, pred: predIRI, liIndex: 1})
		return nil

	case nodeID != "":
		if !isValidNCName(nodeID) {
			return p.iriErr(nodeID)
		}
		obj := "_:" + p.bnodes.forLabel(nodeID)
		if err := p.sink.AddNonLiteral(parent.subject, predIRI, obj); err != nil {
			return err
		}
		if reifyIRI != "" {
			if err := p.emitReifyNode(reifyIRI, parent.subject, predIRI, obj); err != nil {
				return err
			}
		}
		p.push(rdfxmlFrame{mode: modeInsideOfProperty, lang: lang, base: base, subject: parent.subject, pred: predIRI, liIndex: 1})
		return nil

	case parseType == "Literal":
		p.push(rdfxmlFrame{mode: modeParseTypeLiteral, lang: lang, base: base, subject: parent.subject, pred: predIRI, reifyIRI: reifyIRI, nsScope: map[string]string{}})
		return nil

	case parseType == "Resource":
		bnode := "_:" + p.bnodes.fresh()
		if err := p.sink.AddNonLiteral(parent.subject, predIRI, bnode); err != nil {
			return err
		}
		if reifyIRI != "" {
			if err := p.emitReifyNode(reifyIRI, parent.subject, predIRI, bnode); err != nil {
				return err
			}
		}
		p.push(rdfxmlFrame{mode: modeParseTypeResource, lang: lang, base: base, subject: bnode, liIndex: 1})
		return nil

	case parseType == "Collection":
		head := "_:" + p.bnodes.fresh()
		if err := p.sink.AddNonLiteral(parent.subject, predIRI, head); err != nil {
			return err
		}
		if reifyIRI != "" {
			if err := p.emitReifyNode(reifyIRI, parent.subject, predIRI, head); err != nil {
				return err
			}
		}
		p.push(rdfxmlFrame{mode: modeParseTypeCollection, lang: lang, base: base, subject: parent.subject, pred: predIRI, collHead: head, liIndex: 1})
		return nil

	case parseType != "":
		return p.schemaErrf("unsupported rdf:parseType %q", parseType)
	}

	var extra []xmlAttr
	for _, a := range attrs {
		if isIgnoredNamespaceAttr(a) {
			continue
		}
		if a.Space == rdfNS && (a.Local == "resource" || a.Local == "nodeID" || a.Local == "parseType" || a.Local == "ID" || a.Local == "datatype") {
			continue
		}
		extra = append(extra, a)
	}

	if len(extra) > 0 {
		bnode := "_:" + p.bnodes.fresh()
		if err := p.sink.AddNonLiteral(parent.subject, predIRI, bnode); err != nil {
			return err
		}
		for _, a := range extra {
			if a.Space == rdfNS && isForbiddenRDFName(a.Local) {
				return p.schemaErrf("attribute rdf:%s is not allowed here", a.Local)
			}
			attrPred, err := resolveNoResolve(a.Space, a.Local)
			if err != nil {
				return p.iriErrf("attribute %s%s: %v", a.Space, a.Local, err)
			}
			if err := p.sink.AddPlainLiteral(bnode, attrPred, a.Value, lang); err != nil {
				return err
			}
		}
		if reifyIRI != "" {
			if err := p.emitReifyNode(reifyIRI, parent.subject, predIRI, bnode); err != nil {
				return err
			}
		}
		p.push(rdfxmlFrame{mode: modeInsideOfProperty, lang: lang, base: base, subject: parent.subject, pred: predIRI, liIndex: 1})
		return nil
	}

	p.push(rdfxmlFrame{
		mode: modeInsideOfProperty, lang: lang, base: base,
		subject: parent.subject, pred: predIRI,
		captureLiteral: true, datatype: datatype, reifyIRI: reifyIRI, liIndex: 1,
	})
	return nil
}

func (p *RdfXmlParser) characters(text string) error {
	if len(p.stack) == 0 {
		return nil
	}
	top := &p.stack[len(p.stack)-1]
	if top.mode == modeParseTypeLiteral {
		top.literalBuf.WriteString(xmlEscapeText(text))
		return nil
	}
	if top.captureLiteral {
		top.text.WriteString(text)
	}
	return nil
}

func (p *RdfXmlParser) comment(text string) error {
	if len(p.stack) == 0 {
		return nil
	}
	top := &p.stack[len(p.stack)-1]
	if top.mode == modeParseTypeLiteral {
		top.literalBuf.WriteString("<!--" + text + "-->")
	}
	return nil
}

func (p *RdfXmlParser) processingInstruction(target, data string) error {
	if len(p.stack) == 0 {
		return nil
	}
	top := &p.stack[len(p.stack)-1]
	if top.mode == modeParseTypeLiteral {
		top.literalBuf.WriteString("<?" + target + " " + data + "?>")
	}
	return nil
}

func (p *RdfXmlParser) startPrefixMapping(prefix, uri string) error {
	if len(p.stack) == 0 {
		return nil
	}
	top := &p.stack[len(p.stack)-1]
	if top.mode == modeParseTypeLiteral && top.nsScope != nil {
		top.nsScope[prefix] = uri
	}
	return nil
}

func (p *RdfXmlParser) endElement(nsURI, localName, qName string) error {
	if len(p.stack) == 0 {
		return p.structErr("unmatched end element")
	}
	top := &p.stack[len(p.stack)-1]

	if top.mode == modeParseTypeLiteral && top.literalDepth > 0 {
		p.captureEndTag(top, qName)
		top.literalDepth--
		return nil
	}

	finished := p.stack[len(p.stack)-1]
	p.pop()

	switch finished.mode {
	case modeInsideOfProperty:
		if finished.captureLiteral && !finished.hadChildElement {
			if err := p.emitCapturedLiteral(&finished); err != nil {
				return err
			}
		}

	case modeParseTypeLiteral:
		value := finished.literalBuf.String()
		if err := p.sink.AddTypedLiteral(finished.subject, finished.pred, value, rdfNS+"XMLLiteral"); err != nil {
			return err
		}
		if finished.reifyIRI != "" {
			if err := p.emitReifyTyped(finished.reifyIRI, finished.subject, finished.pred, value, rdfNS+"XMLLiteral"); err != nil {
				return err
			}
		}

	case modeParseTypeCollection:
		tail := finished.collTail
		if tail == "" {
			tail = finished.collHead
		}
		if err := p.sink.AddIriRef(tail, rdfNS+"rest", rdfNS+"nil"); err != nil {
			return err
		}

	case modeInsideOfResource, modeParseTypeResource:
		// nothing further: this was a resource/node context closing.
	}

	if len(p.stack) > 0 {
		parentTop := &p.stack[len(p.stack)-1]
		if parentTop.mode == modeParseTypeCollection && (finished.mode == modeInsideOfResource || finished.mode == modeParseTypeResource) {
			if err := p.weaveCollectionItem(parentTop, finished.subject); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *RdfXmlParser) weaveCollectionItem(parent *rdfxmlFrame, itemSubject string) error {
	if parent.collTail == "" {
		if err := p.sink.AddNonLiteral(parent.collHead, rdfNS+"first", itemSubject); err != nil {
			return err
		}
		parent.collTail = parent.collHead
		return nil
	}
	cell := "_:" + p.bnodes.fresh()
	if err := p.sink.AddNonLiteral(parent.collTail, rdfNS+"rest", cell); err != nil {
		return err
	}
	if err := p.sink.AddNonLiteral(cell, rdfNS+"first", itemSubject); err != nil {
		return err
	}
	parent.collTail = cell
	return nil
}

func (p *RdfXmlParser) emitCapturedLiteral(f *rdfxmlFrame) error {
	value := f.text.String()
	if f.datatype != "" {
		dt := resolveIRI(f.base, f.datatype)
		if err := p.sink.AddTypedLiteral(f.subject, f.pred, value, dt); err != nil {
			return err
		}
		if f.reifyIRI != "" {
			return p.emitReifyTyped(f.reifyIRI, f.subject, f.pred, value, dt)
		}
		return nil
	}
	if err := p.sink.AddPlainLiteral(f.subject, f.pred, value, f.lang); err != nil {
		return err
	}
	if f.reifyIRI != "" {
		return p.emitReifyPlain(f.reifyIRI, f.subject, f.pred, value, f.lang)
	}
	return nil
}

func (p *RdfXmlParser) emitReifyNode(reifyIRI, subj, pred, obj string) error {
	if err := p.sink.AddIriRef(reifyIRI, rdfNS+"type", rdfNS+"Statement"); err != nil {
		return err
	}
	if err := p.sink.AddNonLiteral(reifyIRI, rdfNS+"subject", subj); err != nil {
		return err
	}
	if err := p.sink.AddIriRef(reifyIRI, rdfNS+"predicate", pred); err != nil {
		return err
	}
	return p.sink.AddNonLiteral(reifyIRI, rdfNS+"object", obj)
}

func (p *RdfXmlParser) emitReifyPlain(reifyIRI, subj, pred, lexical, lang string) error {
	if err := p.sink.AddIriRef(reifyIRI, rdfNS+"type", rdfNS+"Statement"); err != nil {
		return err
	}
	if err := p.sink.AddNonLiteral(reifyIRI, rdfNS+"subject", subj); err != nil {
		return err
	}
	if err := p.sink.AddIriRef(reifyIRI, rdfNS+"predicate", pred); err != nil {
		return err
	}
	return p.sink.AddPlainLiteral(reifyIRI, rdfNS+"object", lexical, lang)
}

func (p *RdfXmlParser) emitReifyTyped(reifyIRI, subj, pred, lexical, datatype string) error {
	if err := p.sink.AddIriRef(reifyIRI, rdfNS+"type", rdfNS+"Statement"); err != nil {
		return err
	}
	if err := p.sink.AddNonLiteral(reifyIRI, rdfNS+"subject", subj); err != nil {
		return err
	}
	if err := p.sink.AddIriRef(reifyIRI, rdfNS+"predicate", pred); err != nil {
		return err
	}
	return p.sink.AddTypedLiteral(reifyIRI, rdfNS+"object", lexical, datatype)
}

func (p *RdfXmlParser) newErr(kind ErrorKind, cause error, context string) *ParseError {
	return newParseError("rdfxml", kind, 0, int(p.curOffset), context, cause)
}

func (p *RdfXmlParser) schemaErr(context string) error {
	return p.newErr(ErrSchema, ErrForbiddenAttribute, context)
}

func (p *RdfXmlParser) schemaErrf(format string, a ...interface{}) error {
	return p.schemaErr(fmt.Sprintf(format, a...))
}

func (p *RdfXmlParser) iriErr(context string) error {
	return p.newErr(ErrIRI, ErrRelativeIRI, context)
}

func (p *RdfXmlParser) iriErrf(format string, a ...interface{}) error {
	return p.iriErr(fmt.Sprintf(format, a...))
}

func (p *RdfXmlParser) structErr(context string) error {
	return p.newErr(ErrStructural, ErrUnexpectedChar, context)
}
