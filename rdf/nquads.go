package rdf

import (
	"context"
	"fmt"
	"io"
)

// lexState is a state of the N-Quads/N-Triples character lexer. States are
// mutually exclusive and persist across Process calls, so a token may
// straddle two or more input buffers.
type lexState uint8

const (
	stateOutside lexState = iota
	stateURI
	stateBNode
	stateLiteral
	stateAfterLiteral
	stateLiteralType
	stateComment
)

// quadObjectKind classifies how the object slot of the current statement
// was filled, selecting which QuadSink method finishSentence calls.
type quadObjectKind uint8

const (
	quadNonLiteral quadObjectKind = iota
	quadPlainLiteral
	quadTypedLiteral
)

// NQuadsParser is a streaming N-Quads lexer/parser. Process accepts
// arbitrary byte slices — including a single byte at a time — and drives
// sink calls as complete statements are recognized. N-Triples is the same
// parser with graph-term parsing disabled (see NewNTriplesParser).
//
// A parser instance is not safe for concurrent use: it owns a sink
// exclusively for the duration of one StartStream/EndStream bracket.
type NQuadsParser struct {
	quads  bool // true: 4-column N-Quads; false: 3-column N-Triples
	sink   QuadSink
	opts   Options
	bnodes *blankNodeGenerator

	state   lexState
	started bool

	line, col int

	// token accumulation across Process calls.
	acc        []byte
	accOpen    bool
	tokenStart int

	expectBNodeColon bool

	inEscapeDecision bool
	escapeRemaining  int
	literalEscaped   bool

	ltKind  byte // '@' or '^', set on entering stateLiteralType
	ltPhase int  // sub-state for the '^^<iri>' form

	slot          int // number of terms filled: subj=1, pred=2, obj=3, graph=4
	subj          string
	pred          string
	obj           string
	graph         string
	objKind       quadObjectKind
	lang          string
	datatype      string
	pendingLiteral string

	skipSentence bool
}

// NewNQuadsParser creates a parser that emits quads to sink.
func NewNQuadsParser(sink QuadSink, opts ...Option) *NQuadsParser {
	return &NQuadsParser{quads: true, sink: sink, opts: buildOptions(opts), bnodes: newBlankNodeGenerator()}
}

// NewNTriplesParser creates a parser restricted to the 3-column subset,
// adapting sink so the same lexer core serves both grammars.
func NewNTriplesParser(sink TripleSink, opts ...Option) *NQuadsParser {
	return &NQuadsParser{quads: false, sink: AsQuadSink(sink), opts: buildOptions(opts), bnodes: newBlankNodeGenerator()}
}

// StartStream resets all parser state and notifies the sink.
func (p *NQuadsParser) StartStream() error {
	p.state = stateOutside
	p.started = true
	p.acc = p.acc[:0]
	p.accOpen = false
	p.tokenStart = 0
	p.expectBNodeColon = false
	p.inEscapeDecision = false
	p.escapeRemaining = 0
	p.literalEscaped = false
	p.ltKind = 0
	p.ltPhase = 0
	p.skipSentence = false
	p.clearStatement()
	p.bnodes.reset()
	p.line, p.col = 1, 0
	return p.sink.StartStream()
}

func (p *NQuadsParser) clearStatement() {
	p.slot = 0
	p.subj, p.pred, p.obj, p.graph = "", "", "", ""
	p.lang, p.datatype, p.pendingLiteral = "", "", ""
	p.objKind = quadNonLiteral
}

// EndStream reports an error if a token or sentence is still open, then
// notifies the sink.
func (p *NQuadsParser) EndStream() error {
	if p.state != stateOutside || p.slot != 0 || p.accOpen {
		err := p.newErr(ErrStructural, ErrMissingTerminator, "unterminated statement at end of stream")
		if aborted, herr := p.onError(err); aborted {
			return herr
		}
	}
	return p.sink.EndStream()
}

// Process feeds data through the lexer. It may be called any number of
// times with chunks of any size; state persists between calls.
func (p *NQuadsParser) Process(data []byte) error {
	if !p.started {
		return p.newErr(ErrStructural, ErrMissingTerminator, "Process called before StartStream")
	}
	for i := 0; i < len(data); i++ {
		ch := data[i]
		p.advancePos(ch)

		if p.skipSentence {
			if ch == '.' {
				p.skipSentence = false
			}
			continue
		}

		redispatch := true
		for redispatch {
			var err error
			redispatch, err = p.step(data, i, ch)
			if err != nil {
				aborted, herr := p.onError(err)
				if aborted {
					return herr
				}
				redispatch = false
			}
		}
	}
	if err := p.flushPending(data); err != nil {
		if aborted, herr := p.onError(err); aborted {
			return herr
		}
	}
	return nil
}

func (p *NQuadsParser) advancePos(ch byte) {
	if ch == '\n' {
		p.line++
		p.col = 0
	} else {
		p.col++
	}
}

func (p *NQuadsParser) step(data []byte, i int, ch byte) (bool, error) {
	switch p.state {
	case stateOutside:
		return p.stepOutside(data, i, ch)
	case stateURI:
		return p.stepURI(data, i, ch)
	case stateBNode:
		return p.stepBNode(data, i, ch)
	case stateLiteral:
		return p.stepLiteral(data, i, ch)
	case stateAfterLiteral:
		return p.stepAfterLiteral(data, i, ch)
	case stateLiteralType:
		return p.stepLiteralType(data, i, ch)
	case stateComment:
		return p.stepComment(data, i, ch)
	default:
		return false, nil
	}
}

func isWS(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' }

func (p *NQuadsParser) stepOutside(data []byte, i int, ch byte) (bool, error) {
	if p.expectBNodeColon {
		p.expectBNodeColon = false
		if ch != ':' {
			return false, p.newErr(ErrLexical, ErrUnexpectedChar, "expected ':' after '_'")
		}
		p.state = stateBNode
		p.tokenStart = i + 1
		return false, nil
	}
	switch {
	case isWS(ch):
		return false, nil
	case ch == '#':
		p.state = stateComment
		return false, nil
	case ch == '<':
		p.state = stateURI
		p.tokenStart = i + 1
		return false, nil
	case ch == '_':
		p.expectBNodeColon = true
		return false, nil
	case ch == '"':
		p.state = stateLiteral
		p.tokenStart = i + 1
		p.inEscapeDecision = false
		p.escapeRemaining = 0
		p.literalEscaped = false
		return false, nil
	case ch == '.':
		return false, p.finishSentence()
	default:
		return false, p.newErr(ErrLexical, ErrUnexpectedChar, fmt.Sprintf("unexpected character %q", ch))
	}
}

func (p *NQuadsParser) finishSentence() error {
	if p.slot < 3 {
		return p.newErr(ErrStructural, ErrMissingTerminator, "incomplete statement")
	}
	if !p.quads && p.slot != 3 {
		return p.newErr(ErrStructural, ErrUnexpectedChar, "unexpected fourth term in triples input")
	}
	graph := ""
	if p.quads && p.slot == 4 {
		graph = p.graph
	}
	var err error
	switch p.objKind {
	case quadNonLiteral:
		err = p.sink.AddNonLiteral(p.subj, p.pred, p.obj, graph)
	case quadPlainLiteral:
		err = p.sink.AddPlainLiteral(p.subj, p.pred, p.obj, p.lang, graph)
	case quadTypedLiteral:
		err = p.sink.AddTypedLiteral(p.subj, p.pred, p.obj, p.datatype, graph)
	}
	p.clearStatement()
	return err
}

func (p *NQuadsParser) fillNonLiteralSlot(value string) error {
	switch p.slot {
	case 0:
		p.subj = value
	case 1:
		p.pred = value
	case 2:
		p.obj = value
		p.objKind = quadNonLiteral
	case 3:
		if !p.quads {
			return p.newErr(ErrStructural, ErrUnexpectedChar, "unexpected fourth term in triples input")
		}
		p.graph = value
	default:
		return p.newErr(ErrStructural, ErrUnexpectedChar, "too many terms in statement")
	}
	p.slot++
	return nil
}

func (p *NQuadsParser) fillLiteralObjSlot() error {
	if p.slot != 2 {
		return p.newErr(ErrStructural, ErrUnexpectedChar, "literal in unexpected position")
	}
	p.slot++
	return nil
}

func (p *NQuadsParser) stepURI(data []byte, i int, ch byte) (bool, error) {
	if ch != '>' {
		return false, nil
	}
	raw := p.extractToken(data, i)
	value, err := UnescapeString(raw)
	if err != nil {
		return false, p.newErr(ErrLexical, ErrInvalidEscape, "invalid escape in IRI")
	}
	if err := validateAbsoluteIRI(value); err != nil {
		return false, p.newErr(ErrIRI, err, value)
	}
	p.state = stateOutside
	return false, p.fillNonLiteralSlot(value)
}

func (p *NQuadsParser) stepBNode(data []byte, i int, ch byte) (bool, error) {
	if !isWS(ch) && ch != '.' {
		return false, nil
	}
	label := p.extractToken(data, i)
	if label == "" {
		return false, p.newErr(ErrLexical, ErrUnexpectedChar, "empty blank node label")
	}
	id := p.bnodes.forLabel(label)
	p.state = stateOutside
	if err := p.fillNonLiteralSlot("_:" + id); err != nil {
		return false, err
	}
	return true, nil
}

func (p *NQuadsParser) stepLiteral(data []byte, i int, ch byte) (bool, error) {
	if p.inEscapeDecision {
		p.inEscapeDecision = false
		switch ch {
		case 'u':
			p.escapeRemaining = 4
		case 'U':
			p.escapeRemaining = 8
		case 'n', 't', 'r', 'b', 'f', '"', '\'', '\\':
			p.escapeRemaining = 0
		default:
			return false, p.newErr(ErrLexical, ErrInvalidEscape, fmt.Sprintf("invalid escape \\%c", ch))
		}
		return false, nil
	}
	if p.escapeRemaining > 0 {
		p.escapeRemaining--
		return false, nil
	}
	if ch == '\\' {
		p.inEscapeDecision = true
		p.literalEscaped = true
		return false, nil
	}
	if ch == '"' {
		raw := p.extractToken(data, i)
		value := raw
		if p.literalEscaped {
			unescaped, err := UnescapeString(raw)
			if err != nil {
				return false, p.newErr(ErrLexical, ErrInvalidEscape, "invalid escape in literal")
			}
			value = unescaped
		}
		p.literalEscaped = false
		p.pendingLiteral = value
		p.objKind = quadPlainLiteral
		p.state = stateAfterLiteral
		return false, nil
	}
	return false, nil
}

func (p *NQuadsParser) stepAfterLiteral(data []byte, i int, ch byte) (bool, error) {
	switch {
	case ch == '@' || ch == '^':
		p.state = stateLiteralType
		p.ltKind = ch
		p.ltPhase = 0
		p.tokenStart = i + 1
		return false, nil
	case isWS(ch) || ch == '<':
		p.obj = p.pendingLiteral
		p.lang = ""
		p.state = stateOutside
		if err := p.fillLiteralObjSlot(); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, p.newErr(ErrLexical, ErrUnexpectedChar, "expected '@', '^', whitespace, or '<' after literal")
	}
}

func (p *NQuadsParser) stepLiteralType(data []byte, i int, ch byte) (bool, error) {
	if p.ltKind == '@' {
		if isWS(ch) || ch == '.' {
			lang := p.extractToken(data, i)
			if !isValidLangTag(lang) {
				return false, p.newErr(ErrLexical, ErrUnexpectedChar, "invalid language tag")
			}
			p.obj = p.pendingLiteral
			p.lang = lang
			p.objKind = quadPlainLiteral
			p.state = stateOutside
			if err := p.fillLiteralObjSlot(); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}

	switch p.ltPhase {
	case 0:
		if ch != '^' {
			return false, p.newErr(ErrLexical, ErrUnexpectedChar, "expected '^^' before datatype IRI")
		}
		p.ltPhase = 1
		return false, nil
	case 1:
		if ch != '<' {
			return false, p.newErr(ErrLexical, ErrUnexpectedChar, "expected '<' to open datatype IRI")
		}
		p.ltPhase = 2
		p.tokenStart = i + 1
		return false, nil
	default: // 2: inside datatype IRI
		if ch != '>' {
			return false, nil
		}
		raw := p.extractToken(data, i)
		datatype, err := UnescapeString(raw)
		if err != nil {
			return false, p.newErr(ErrLexical, ErrInvalidEscape, "invalid escape in datatype IRI")
		}
		if err := validateAbsoluteIRI(datatype); err != nil {
			return false, p.newErr(ErrIRI, err, datatype)
		}
		p.obj = p.pendingLiteral
		p.datatype = datatype
		p.objKind = quadTypedLiteral
		p.state = stateOutside
		return false, p.fillLiteralObjSlot()
	}
}

func (p *NQuadsParser) stepComment(data []byte, i int, ch byte) (bool, error) {
	if ch == '\n' || ch == '\r' {
		p.state = stateOutside
	}
	return false, nil
}

// extractToken returns the accumulated text of the token ending (exclusive)
// at position end in data, concatenating any fragment carried over from a
// prior Process call.
func (p *NQuadsParser) extractToken(data []byte, end int) string {
	if p.accOpen {
		tok := string(p.acc) + string(data[p.tokenStart:end])
		p.acc = p.acc[:0]
		p.accOpen = false
		return tok
	}
	return string(data[p.tokenStart:end])
}

// flushPending carries a still-open token's remaining bytes into the
// accumulation buffer when a Process call ends mid-token.
func (p *NQuadsParser) flushPending(data []byte) error {
	switch p.state {
	case stateURI, stateBNode, stateLiteral, stateLiteralType:
		p.acc = append(p.acc, data[p.tokenStart:]...)
		p.accOpen = true
		p.tokenStart = 0
		if p.opts.MaxStatementBytes > 0 && len(p.acc) > p.opts.MaxStatementBytes {
			return p.newErr(ErrStructural, ErrUnterminatedToken, "token exceeds maximum statement size")
		}
	}
	return nil
}

func (p *NQuadsParser) onError(err error) (abort bool, returnErr error) {
	p.notifyGraphHandler(err)
	if p.opts.ErrorRecovery {
		p.clearStatement()
		p.state = stateOutside
		p.skipSentence = true
		p.acc = p.acc[:0]
		p.accOpen = false
		return false, nil
	}
	return true, err
}

func (p *NQuadsParser) notifyGraphHandler(err error) {
	if p.opts.GraphHandler != nil {
		p.opts.GraphHandler(err)
	}
}

func (p *NQuadsParser) newErr(kind ErrorKind, cause error, context string) *ParseError {
	format := "nquads"
	if !p.quads {
		format = "ntriples"
	}
	return newParseError(format, kind, p.line, p.col, context, cause)
}

// ParseNQuads reads r in chunks and feeds them to a fresh NQuadsParser
// targeting sink, bracketing the stream with StartStream/EndStream.
func ParseNQuads(ctx context.Context, r io.Reader, sink QuadSink, opts ...Option) error {
	return runNQuadsDriver(ctx, r, NewNQuadsParser(sink, opts...))
}

// ParseNTriples is ParseNQuads restricted to the 3-column grammar.
func ParseNTriples(ctx context.Context, r io.Reader, sink TripleSink, opts ...Option) error {
	return runNQuadsDriver(ctx, r, NewNTriplesParser(sink, opts...))
}

func runNQuadsDriver(ctx context.Context, r io.Reader, parser *NQuadsParser) error {
	if ctx == nil {
		ctx = parser.opts.Context
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := parser.StartStream(); err != nil {
		return err
	}
	bufSize := parser.opts.BufferSize
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	buf := make([]byte, bufSize)
	for {
		if err := checkContext(ctx); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if perr := parser.Process(buf[:n]); perr != nil {
				return perr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return parser.EndStream()
}
