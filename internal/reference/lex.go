package reference

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenNone tokenKind = iota
	tokenEOF
	// tokenNum is a number or a special value like inf. Signs are operators.
	tokenNum
	tokenOp
	tokenOpen
	tokenClose
)

var kindNames = [...]string{"None", "EOF", "Num", "Op", "Open", "Close"}

type lexToken struct {
	text string
	kind tokenKind
	// pos is the 1-based column of the token's first rune.
	pos int
}

func (t lexToken) String() string {
	return kindNames[t.kind] + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

const (
	operators = "+-*/^"
	digits    = "0123456789"
)

// ends reports whether r terminates a number or word.
func ends(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(operators+"()", r)
}

// startsValue reports whether r can begin a number or special value.
func startsValue(r rune) bool {
	return r == '.' || strings.ContainsRune(digits, r) || unicode.IsLetter(r)
}

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the column of the next rune.
	col int
	// err is the first read error other than io.EOF.
	err error
	p   lexToken
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src, col: 1}
}

// push makes tok the next token. At most one token can be pushed.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("reference: double push")
	}
	l.p = tok
}

// must pops the pushed token.
func (l *lexer) must() lexToken {
	if l.p.kind == tokenNone {
		panic("reference: no pushed token")
	}
	tok := l.p
	l.p = lexToken{}
	return tok
}

// readRune reads one rune. The result is false at the end of the input or on
// a read error, which is kept in l.err.
func (l *lexer) readRune() (rune, bool) {
	r, _, err := l.src.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) && l.err == nil {
			l.err = err
		}
		return 0, false
	}
	l.col++
	return r, true
}

func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

func (l *lexer) peek() (rune, bool) {
	r, ok := l.readRune()
	if ok {
		l.unreadRune()
	}
	return r, ok
}

// accept consumes the next rune into the token text if it is in set.
func (l *lexer) accept(set string) bool {
	r, ok := l.readRune()
	if !ok {
		return false
	}
	if !strings.ContainsRune(set, r) {
		l.unreadRune()
		return false
	}
	l.buf.WriteRune(r)
	return true
}

// next scans the next token. The end of the input is reported once as an EOF
// token; after that, unless the EOF token is pushed, next returns io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		return l.must(), nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	r, ok := l.readRune()
	for ok && unicode.IsSpace(r) {
		r, ok = l.readRune()
	}
	if !ok {
		if l.err != nil {
			return lexToken{pos: l.col}, l.err
		}
		l.eof = true
		return lexToken{kind: tokenEOF, pos: l.col}, nil
	}
	tok := lexToken{pos: l.col - 1}
	switch {
	case startsValue(r):
		l.unreadRune()
		return l.scanValue(tok, r)
	case strings.ContainsRune(operators, r):
		tok.kind, tok.text = tokenOp, string(r)
	case r == '(':
		tok.kind, tok.text = tokenOpen, "("
	case r == ')':
		tok.kind, tok.text = tokenClose, ")"
	default:
		l.buf.WriteRune(r)
		return tok, l.invalid("")
	}
	return tok, nil
}

// attached scans a number that immediately follows the last scanned token,
// with no white space between them. The result is false with no error if the
// next rune doesn't start a number.
func (l *lexer) attached() (lexToken, bool, error) {
	if l.p.kind != tokenNone {
		panic("reference: attached with pushed token")
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.col}
	r, ok := l.peek()
	if !ok || !startsValue(r) {
		return tok, false, l.err
	}
	tok, err := l.scanValue(tok, r)
	return tok, err == nil, err
}

// scanValue scans a number or special value whose first rune is r.
func (l *lexer) scanValue(tok lexToken, r rune) (lexToken, error) {
	var err error
	if unicode.IsLetter(r) {
		err = l.scanSpecial()
	} else {
		err = l.scanNum()
	}
	if err != nil {
		return tok, err
	}
	tok.kind, tok.text = tokenNum, l.buf.String()
	return tok, nil
}

// scanNum scans digits with an optional fraction and exponent. The number
// must end at white space, an operator, a bracket, or the end of input.
func (l *lexer) scanNum() error {
	n := l.digits()
	if l.accept(".") {
		n += l.digits()
	}
	if n == 0 {
		return l.badNum()
	}
	if l.accept("eE") {
		l.accept("+-")
		if l.digits() == 0 {
			return l.badNum()
		}
	}
	if r, ok := l.peek(); ok && !ends(r) {
		return l.badNum()
	}
	return l.err
}

func (l *lexer) digits() int {
	n := 0
	for l.accept(digits) {
		n++
	}
	return n
}

// badNum reports an invalid number, including the offending rune in the
// error text unless it would start the next token.
func (l *lexer) badNum() error {
	if r, ok := l.readRune(); ok {
		if ends(r) {
			l.unreadRune()
		} else {
			l.buf.WriteRune(r)
		}
	}
	return l.invalid("number")
}

// scanSpecial scans a word, which must name a special value.
func (l *lexer) scanSpecial() error {
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	switch strings.ToLower(l.buf.String()) {
	case "inf", "infinity", "nan":
		return l.err
	}
	return l.invalid("number")
}

func (l *lexer) invalid(kind string) error {
	return &LexError{Text: l.buf.String(), Kind: kind, Col: l.col}
}

// LexError is an invalid token.
type LexError struct {
	// Text is the token up to and including the invalid rune.
	Text string
	// Kind is "number", or empty if the token was invalid from its first rune.
	Kind string
	// Col is the column after the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	what := "invalid token"
	if err.Kind != "" {
		what = "invalid " + err.Kind + " token"
	}
	return what + " at column " + strconv.Itoa(err.Col) + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
