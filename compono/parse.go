package compono

import "strings"

// parser is a permissive, recovery-oriented tokenizer and tree builder. It
// does not implement HTML5 tree-construction insertion modes or the
// adoption agency algorithm — unmatched or malformed regions are recovered
// from locally (see parseContent, parseComment and parseRawText), not
// reparented per spec.
type parser struct {
	src  string
	pos  int
	line int
	col  int
	file string
	b    *Build

	// recoveries counts forced recoveries (unterminated comment, unterminated
	// raw-text section). A single aggregated warning is emitted for these once
	// parsing completes.
	recoveries int
}

// Parse parses src (assumed UTF-8, treated as opaque bytes) into a Document
// node, logging diagnostics to b. file is used only to tag source spans.
func Parse(file string, src string, b *Build) *Node {
	p := &parser{src: src, line: 1, col: 1, file: file, b: b}
	doc := NewDocument()
	p.parseContent(doc, "")

	if p.recoveries > 0 {
		b.Warnf(Span{File: file}, "parser recovered from %d malformed HTML region(s)", p.recoveries)
	}
	return doc
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) rest() string { return p.src[p.pos:] }

func (p *parser) at(prefix string) bool {
	return strings.HasPrefix(p.rest(), prefix)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) advance(n int) {
	end := p.pos + n
	if end > len(p.src) {
		end = len(p.src)
	}
	for p.pos < end {
		if p.src[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

// mark captures the current position as the start of a new span.
func (p *parser) mark() (offset, line, col int) {
	return p.pos, p.line, p.col
}

func (p *parser) span(offset, line, col int) Span {
	return Span{File: p.file, Offset: offset, Line: line, Column: col, Length: p.pos - offset}
}

func isNameStartByte(c byte) bool {
	return isASCIILetter(c) || c == '_' || c == ':'
}

func isTagNameByte(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '-' || c == '_' || c == ':' || c == '.'
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f':
		return true
	}
	return false
}

// parseContent parses children into parent until it consumes a close tag
// matching closeTag (case-insensitive) or reaches end-of-input. closeTag=""
// means "no enclosing element" (the document root): end-of-input is the only
// way out, and any close tag encountered is a stray that gets discarded.
func (p *parser) parseContent(parent *Node, closeTag string) {
	for !p.eof() {
		switch {
		case p.at("<!--"):
			p.parseComment(parent)
		case p.at("<!"):
			p.parseDeclaration(parent)
		case p.at("</"):
			name, ok := p.parseCloseTag()
			if ok && closeTag != "" && strings.EqualFold(name, closeTag) {
				return
			}
			// stray close tag: silently discarded, keep parsing content
		case p.peek() == '<' && p.pos+1 < len(p.src) && isNameStartByte(p.src[p.pos+1]):
			p.parseStartTag(parent)
		case p.peek() == '<':
			p.addText(parent, "<")
			p.advance(1)
		default:
			p.parseText(parent)
		}
	}
}

func (p *parser) parseComment(parent *Node) {
	off, line, col := p.mark()
	p.advance(len("<!--"))
	end := strings.Index(p.rest(), "-->")
	if end < 0 {
		text := p.rest()
		p.advance(len(p.rest()))
		p.recoveries++
		parent.AppendChild(&Node{Kind: CommentKind, Text: text, Source: p.span(off, line, col)})
		return
	}
	text := p.rest()[:end]
	p.advance(end)
	p.advance(len("-->"))
	parent.AppendChild(&Node{Kind: CommentKind, Text: text, Source: p.span(off, line, col)})
}

func (p *parser) parseDeclaration(parent *Node) {
	off, line, col := p.mark()
	p.advance(len("<!"))
	end := strings.IndexByte(p.rest(), '>')
	var text string
	if end < 0 {
		text = p.rest()
		p.advance(len(p.rest()))
	} else {
		text = p.rest()[:end]
		p.advance(end)
		p.advance(1) // consume '>'
	}
	parent.AppendChild(&Node{Kind: DeclarationKind, Text: text, Source: p.span(off, line, col)})
}

// parseCloseTag consumes "</NAME ...>" (or to end-of-input if '>' is
// missing) and returns the lowercased name. ok is false only if parsing
// could not even find the "</" it was called to consume, which cannot
// happen given the caller's guard — kept for symmetry with other parse*
// helpers.
func (p *parser) parseCloseTag() (string, bool) {
	if !p.at("</") {
		return "", false
	}
	p.advance(2)
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isSpaceByte(c) || c == '>' || c == '/' {
			break
		}
		p.advance(1)
	}
	name := strings.ToLower(p.src[start:p.pos])

	// skip until '>', ignoring anything in between (stray attributes, junk).
	for !p.eof() && p.peek() != '>' {
		p.advance(1)
	}
	if !p.eof() {
		p.advance(1) // consume '>'
	}
	return name, true
}

func (p *parser) parseText(parent *Node) {
	start := p.pos
	idx := strings.IndexByte(p.rest(), '<')
	if idx < 0 {
		idx = len(p.rest())
	}
	p.advance(idx)
	p.addText(parent, p.src[start:p.pos])
}

// addText appends text as a new Text child, or extends the previous child if
// it is already a Text node, so that adjacent text runs produced by
// different recovery paths (e.g. a literal "<" followed by ordinary text)
// merge into one node.
func (p *parser) addText(parent *Node, text string) {
	if text == "" {
		return
	}
	if n := len(parent.Children); n > 0 {
		last := parent.Children[n-1]
		if last.Kind == TextKind {
			last.Text += text
			last.Source.Length += len(text)
			return
		}
	}
	line, col := p.line, p.col
	parent.AppendChild(&Node{
		Kind: TextKind,
		Text: text,
		Source: Span{
			File:   p.file,
			Offset: p.pos - len(text),
			Line:   line,
			Column: col,
			Length: len(text),
		},
	})
}

func (p *parser) parseStartTag(parent *Node) {
	off, line, col := p.mark()
	p.advance(1) // consume '<'

	start := p.pos
	for !p.eof() && isTagNameByte(p.peek()) {
		p.advance(1)
	}
	tag := strings.ToLower(p.src[start:p.pos])

	n := &Node{Kind: ElementKind, Tag: tag}

	selfClosing := false
loop:
	for !p.eof() {
		p.skipSpace()
		switch {
		case p.at("/>"):
			selfClosing = true
			p.advance(2)
			break loop
		case p.peek() == '>':
			p.advance(1)
			break loop
		default:
			name, ok := p.parseAttrName()
			if !ok {
				// attribute-name parsing failed: advance one byte and retry.
				p.advance(1)
				continue
			}
			p.skipSpace()
			val := ""
			if p.peek() == '=' {
				p.advance(1)
				val = p.parseAttrValue()
			}
			// Duplicates are permitted on parse; Node.Attr only ever observes
			// the first one, per spec.
			n.Attrs = append(n.Attrs, Attribute{Name: name, Value: val})
		}
	}

	n.Source = p.span(off, line, col)
	parent.AppendChild(n)

	if isVoid(tag) || selfClosing {
		return
	}
	if isRawText(tag) {
		p.parseRawText(n, tag)
		return
	}
	p.parseContent(n, tag)
	n.Source.Length = p.pos - off
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpaceByte(p.peek()) {
		p.advance(1)
	}
}

// parseAttrName reads an attribute name: any run of bytes that isn't
// whitespace, '=', '>', or '/'. ok is false if nothing could be consumed
// (the name-parsing failure case the spec calls out for recovery).
func (p *parser) parseAttrName() (string, bool) {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isSpaceByte(c) || c == '=' || c == '>' || c == '/' {
			break
		}
		p.advance(1)
	}
	if p.pos == start {
		return "", false
	}
	return strings.ToLower(p.src[start:p.pos]), true
}

// parseAttrValue reads a quoted (single or double) or unquoted attribute
// value. The cursor must be positioned right after the '='.
func (p *parser) parseAttrValue() string {
	c := p.peek()
	if c == '"' || c == '\'' {
		quote := c
		p.advance(1)
		start := p.pos
		for !p.eof() && p.peek() != quote {
			p.advance(1)
		}
		val := p.src[start:p.pos]
		if !p.eof() {
			p.advance(1) // consume closing quote
		}
		return val
	}
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isSpaceByte(c) || c == '>' || c == '/' {
			break
		}
		p.advance(1)
	}
	return p.src[start:p.pos]
}

// parseRawText consumes a single opaque Text run up to the next
// case-insensitive occurrence of "</tag", then the matching close tag
// itself. If no such marker exists, it consumes to end-of-input and counts
// a recovery.
func (p *parser) parseRawText(n *Node, tag string) {
	marker := "</" + tag
	idx := indexFold(p.rest(), marker)
	if idx < 0 {
		text := p.rest()
		start := p.pos
		p.advance(len(p.rest()))
		if text != "" {
			n.AppendChild(&Node{
				Kind:   TextKind,
				Text:   text,
				Source: Span{File: p.file, Offset: start, Length: len(text)},
			})
		}
		p.recoveries++
		return
	}
	if idx > 0 {
		text := p.rest()[:idx]
		start := p.pos
		p.advance(idx)
		n.AppendChild(&Node{
			Kind:   TextKind,
			Text:   text,
			Source: Span{File: p.file, Offset: start, Length: len(text)},
		})
	}
	p.parseCloseTag()
}

// indexFold is a case-insensitive strings.Index for ASCII needles, which is
// all the close-tag markers ever are.
func indexFold(s, substr string) int {
	ls := strings.ToLower(s)
	return strings.Index(ls, strings.ToLower(substr))
}
