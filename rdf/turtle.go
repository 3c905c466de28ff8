package rdf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DecodeTurtle parses data as a subset of the Turtle syntax and returns
// the resulting graph. The prefixes map supplies pre-bound prefix
// declarations (prefix label, without colon, to namespace IRI); @prefix
// and PREFIX directives in the document add to or override it.
//
// Supported: prefixed names, <IRI> references, _:label and [ ... ] blank
// nodes (including the empty node []), plain/language-tagged/typed string
// literals, bare integer and decimal numbers, booleans, the "a" keyword,
// ";" and "," lists, and "#" comments. RDF collections and @base are not.
func DecodeTurtle(data []byte, prefixes map[string]string) (*Graph, error) {
	d := &turtleDecoder{
		input:    string(data),
		line:     1,
		prefixes: make(map[string]string, len(prefixes)),
		graph:    NewGraph(),
	}
	for label, ns := range prefixes {
		d.prefixes[label] = ns
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.graph, nil
}

type turtleDecoder struct {
	input    string
	pos      int
	line     int
	prefixes map[string]string
	graph    *Graph
	genID    int
}

func (d *turtleDecoder) errorf(format string, args ...any) error {
	return fmt.Errorf("turtle: line %d: %s", d.line, fmt.Sprintf(format, args...))
}

func (d *turtleDecoder) run() error {
	for {
		d.skipSpace()
		if d.eof() {
			return nil
		}
		if d.hasPrefix("@prefix") || d.hasKeyword("PREFIX") {
			if err := d.parsePrefixDirective(); err != nil {
				return err
			}
			continue
		}
		if d.hasPrefix("@base") || d.hasKeyword("BASE") {
			return d.errorf("@base is not supported")
		}
		if err := d.parseTriples(); err != nil {
			return err
		}
	}
}

func (d *turtleDecoder) parsePrefixDirective() error {
	atForm := d.hasPrefix("@prefix")
	if atForm {
		d.pos += len("@prefix")
	} else {
		d.pos += len("PREFIX")
	}
	d.skipSpace()

	colon := strings.IndexByte(d.input[d.pos:], ':')
	if colon < 0 {
		return d.errorf("malformed prefix directive")
	}
	label := strings.TrimSpace(d.input[d.pos : d.pos+colon])
	d.pos += colon + 1
	d.skipSpace()

	if d.eof() || d.input[d.pos] != '<' {
		return d.errorf("expected IRI in prefix directive")
	}
	iri, err := d.parseIRIRef()
	if err != nil {
		return err
	}
	d.prefixes[label] = string(iri)

	if atForm {
		d.skipSpace()
		if d.eof() || d.input[d.pos] != '.' {
			return d.errorf("expected '.' after @prefix directive")
		}
		d.pos++
	}
	return nil
}

func (d *turtleDecoder) parseTriples() error {
	subject, err := d.parseSubject()
	if err != nil {
		return err
	}
	if err := d.parsePredicateObjectList(subject, '.'); err != nil {
		return err
	}
	d.skipSpace()
	if d.eof() || d.input[d.pos] != '.' {
		return d.errorf("expected '.' to end triples")
	}
	d.pos++
	return nil
}

func (d *turtleDecoder) parseSubject() (Term, error) {
	d.skipSpace()
	if d.eof() {
		return nil, d.errorf("expected subject")
	}
	switch d.input[d.pos] {
	case '<':
		return d.parseIRIRef()
	case '[':
		return d.parseBlankNodeProperties()
	case '_':
		return d.parseBlankNodeLabel()
	default:
		return d.parsePrefixedName()
	}
}

// parsePredicateObjectList parses "verb objectList (';' verb objectList)*"
// for subject, stopping before stop (either '.' or ']').
func (d *turtleDecoder) parsePredicateObjectList(subject Term, stop byte) error {
	for {
		d.skipSpace()
		if d.eof() {
			return d.errorf("unterminated predicate-object list")
		}
		if d.input[d.pos] == stop {
			return nil
		}

		predicate, err := d.parseVerb()
		if err != nil {
			return err
		}
		if err := d.parseObjectList(subject, predicate); err != nil {
			return err
		}

		d.skipSpace()
		if d.eof() {
			return d.errorf("unterminated predicate-object list")
		}
		if d.input[d.pos] != ';' {
			return nil
		}
		// Consume ';' separators, tolerating a trailing one.
		for !d.eof() && d.input[d.pos] == ';' {
			d.pos++
			d.skipSpace()
		}
	}
}

func (d *turtleDecoder) parseVerb() (IRI, error) {
	d.skipSpace()
	if d.hasKeyword("a") {
		d.pos++
		return RDFType, nil
	}
	if !d.eof() && d.input[d.pos] == '<' {
		return d.parseIRIRef()
	}
	term, err := d.parsePrefixedName()
	if err != nil {
		return "", err
	}
	return term.(IRI), nil
}

func (d *turtleDecoder) parseObjectList(subject Term, predicate IRI) error {
	for {
		object, err := d.parseObject()
		if err != nil {
			return err
		}
		d.graph.Add(Triple{Subject: subject, Predicate: predicate, Object: object})

		d.skipSpace()
		if d.eof() || d.input[d.pos] != ',' {
			return nil
		}
		d.pos++
	}
}

func (d *turtleDecoder) parseObject() (Term, error) {
	d.skipSpace()
	if d.eof() {
		return nil, d.errorf("expected object")
	}
	c := d.input[d.pos]
	switch {
	case c == '<':
		return d.parseIRIRef()
	case c == '"':
		return d.parseLiteral()
	case c == '[':
		return d.parseBlankNodeProperties()
	case c == '_':
		return d.parseBlankNodeLabel()
	case c == '(':
		return nil, d.errorf("RDF collections are not supported")
	case c == '+' || c == '-' || (c >= '0' && c <= '9'):
		return d.parseNumber()
	case d.hasKeyword("true"):
		d.pos += len("true")
		return Literal{Value: "true", Datatype: XSDBoolean}, nil
	case d.hasKeyword("false"):
		d.pos += len("false")
		return Literal{Value: "false", Datatype: XSDBoolean}, nil
	default:
		return d.parsePrefixedName()
	}
}

func (d *turtleDecoder) parseIRIRef() (IRI, error) {
	// Caller guarantees d.input[d.pos] == '<'.
	d.pos++
	end := strings.IndexByte(d.input[d.pos:], '>')
	if end < 0 {
		return "", d.errorf("unterminated IRI reference")
	}
	iri := d.input[d.pos : d.pos+end]
	d.pos += end + 1
	if strings.ContainsAny(iri, " \t\n\r") {
		return "", d.errorf("whitespace in IRI reference <%s>", iri)
	}
	return IRI(iri), nil
}

func (d *turtleDecoder) parseBlankNodeLabel() (Term, error) {
	if !strings.HasPrefix(d.input[d.pos:], "_:") {
		return nil, d.errorf("malformed blank node label")
	}
	d.pos += 2
	start := d.pos
	for !d.eof() && isLocalNameByte(d.input[d.pos]) {
		d.pos++
	}
	d.trimTrailingDots(start)
	if d.pos == start {
		return nil, d.errorf("empty blank node label")
	}
	return BlankNode(d.input[start:d.pos]), nil
}

// parseBlankNodeProperties parses "[ ... ]", returning a fresh blank node.
// An empty "[]" produces a node with no outgoing triples.
func (d *turtleDecoder) parseBlankNodeProperties() (Term, error) {
	d.pos++ // consume '['
	d.genID++
	node := BlankNode(fmt.Sprintf("genid%d", d.genID))

	d.skipSpace()
	if !d.eof() && d.input[d.pos] == ']' {
		d.pos++
		return node, nil
	}
	if err := d.parsePredicateObjectList(node, ']'); err != nil {
		return nil, err
	}
	d.skipSpace()
	if d.eof() || d.input[d.pos] != ']' {
		return nil, d.errorf("unterminated blank node property list")
	}
	d.pos++
	return node, nil
}

func (d *turtleDecoder) parseLiteral() (Term, error) {
	value, err := d.parseQuotedString()
	if err != nil {
		return nil, err
	}

	if !d.eof() && d.input[d.pos] == '@' {
		d.pos++
		start := d.pos
		for !d.eof() && (isAlphaByte(d.input[d.pos]) || d.input[d.pos] == '-') {
			d.pos++
		}
		if d.pos == start {
			return nil, d.errorf("empty language tag")
		}
		return Literal{Value: value, Language: d.input[start:d.pos]}, nil
	}

	if strings.HasPrefix(d.input[d.pos:], "^^") {
		d.pos += 2
		d.skipSpace()
		if !d.eof() && d.input[d.pos] == '<' {
			datatype, err := d.parseIRIRef()
			if err != nil {
				return nil, err
			}
			return Literal{Value: value, Datatype: datatype}, nil
		}
		term, err := d.parsePrefixedName()
		if err != nil {
			return nil, err
		}
		return Literal{Value: value, Datatype: term.(IRI)}, nil
	}

	return Literal{Value: value}, nil
}

func (d *turtleDecoder) parseQuotedString() (string, error) {
	// Caller guarantees d.input[d.pos] == '"'.
	long := strings.HasPrefix(d.input[d.pos:], `"""`)
	if long {
		d.pos += 3
	} else {
		d.pos++
	}

	var sb strings.Builder
	for {
		if d.eof() {
			return "", d.errorf("unterminated string literal")
		}
		if long && strings.HasPrefix(d.input[d.pos:], `"""`) {
			d.pos += 3
			return sb.String(), nil
		}
		c := d.input[d.pos]
		if !long && c == '"' {
			d.pos++
			return sb.String(), nil
		}
		if c == '\n' {
			if !long {
				return "", d.errorf("newline in string literal")
			}
			d.line++
			sb.WriteByte(c)
			d.pos++
			continue
		}
		if c == '\\' {
			unescaped, err := d.parseEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(unescaped)
			continue
		}
		sb.WriteByte(c)
		d.pos++
	}
}

func (d *turtleDecoder) parseEscape() (rune, error) {
	// Caller guarantees d.input[d.pos] == '\\'.
	if d.pos+1 >= len(d.input) {
		return 0, d.errorf("unterminated escape sequence")
	}
	c := d.input[d.pos+1]
	d.pos += 2
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case '"', '\'', '\\':
		return rune(c), nil
	case 'u', 'U':
		width := 4
		if c == 'U' {
			width = 8
		}
		if d.pos+width > len(d.input) {
			return 0, d.errorf("truncated \\%c escape", c)
		}
		code, err := strconv.ParseUint(d.input[d.pos:d.pos+width], 16, 32)
		if err != nil {
			return 0, d.errorf("invalid \\%c escape", c)
		}
		d.pos += width
		return rune(code), nil
	default:
		return 0, d.errorf("unknown escape sequence \\%c", c)
	}
}

func (d *turtleDecoder) parseNumber() (Term, error) {
	start := d.pos
	if d.input[d.pos] == '+' || d.input[d.pos] == '-' {
		d.pos++
	}
	digits := 0
	for !d.eof() && d.input[d.pos] >= '0' && d.input[d.pos] <= '9' {
		d.pos++
		digits++
	}
	decimal := false
	if !d.eof() && d.input[d.pos] == '.' && d.pos+1 < len(d.input) &&
		d.input[d.pos+1] >= '0' && d.input[d.pos+1] <= '9' {
		decimal = true
		d.pos++
		for !d.eof() && d.input[d.pos] >= '0' && d.input[d.pos] <= '9' {
			d.pos++
		}
	}
	if digits == 0 {
		return nil, d.errorf("malformed number")
	}
	value := d.input[start:d.pos]
	if decimal {
		return Literal{Value: value, Datatype: XSDDecimal}, nil
	}
	return Literal{Value: value, Datatype: XSDInteger}, nil
}

func (d *turtleDecoder) parsePrefixedName() (Term, error) {
	start := d.pos
	for !d.eof() && isPrefixByte(d.input[d.pos]) {
		d.pos++
	}
	if d.eof() || d.input[d.pos] != ':' {
		return nil, d.errorf("expected prefixed name at %q", d.peekContext())
	}
	label := d.input[start:d.pos]
	d.pos++

	ns, ok := d.prefixes[label]
	if !ok {
		return nil, d.errorf("unknown prefix %q", label)
	}

	localStart := d.pos
	for !d.eof() && isLocalNameByte(d.input[d.pos]) {
		d.pos++
	}
	d.trimTrailingDots(localStart)
	local := d.input[localStart:d.pos]
	return IRI(ns + local), nil
}

// trimTrailingDots backtracks over '.' characters consumed into a name;
// a name never ends with a dot, so those belong to the statement
// terminator.
func (d *turtleDecoder) trimTrailingDots(start int) {
	for d.pos > start && d.input[d.pos-1] == '.' {
		d.pos--
	}
}

func (d *turtleDecoder) skipSpace() {
	for !d.eof() {
		c := d.input[d.pos]
		switch c {
		case '\n':
			d.line++
			d.pos++
		case ' ', '\t', '\r':
			d.pos++
		case '#':
			for !d.eof() && d.input[d.pos] != '\n' {
				d.pos++
			}
		default:
			return
		}
	}
}

func (d *turtleDecoder) eof() bool { return d.pos >= len(d.input) }

func (d *turtleDecoder) hasPrefix(s string) bool {
	return strings.HasPrefix(d.input[d.pos:], s)
}

// hasKeyword reports whether the input continues with s followed by a
// non-name character, so "a" does not match the start of "and".
func (d *turtleDecoder) hasKeyword(s string) bool {
	if !strings.HasPrefix(d.input[d.pos:], s) {
		return false
	}
	rest := d.input[d.pos+len(s):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ':' && r != '_'
}

func (d *turtleDecoder) peekContext() string {
	end := d.pos + 20
	if end > len(d.input) {
		end = len(d.input)
	}
	return d.input[d.pos:end]
}

func isAlphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isPrefixByte(c byte) bool {
	return isAlphaByte(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isLocalNameByte(c byte) bool {
	return isPrefixByte(c) || c == '.' || c == '%' || c >= 0x80
}
