package scanner

import (
	"errors"
	"strconv"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// Scanner turns source text into tokens.
type Scanner interface {
	// Scan always returns a token stream terminated by exactly one EOF token.
	// The error joins every problem found; scanning does not stop on errors.
	Scan() ([]token.Token, error)
}

var reservedKeywords = map[string]token.TokenType{
	"and":    token.AND,
	"class":  token.CLASS,
	"else":   token.ELSE,
	"false":  token.FALSE,
	"for":    token.FOR,
	"fun":    token.FUN,
	"if":     token.IF,
	"nil":    token.NIL,
	"or":     token.OR,
	"print":  token.PRINT,
	"return": token.RETURN,
	"super":  token.SUPER,
	"this":   token.THIS,
	"true":   token.TRUE,
	"var":    token.VAR,
	"while":  token.WHILE,
}

// Keywords returns the reserved words in lexical order.
func Keywords() []string {
	keys := maps.Keys(reservedKeywords)
	slices.Sort(keys)
	return keys
}

type ScannerOption func(*scanner)

// WithErrorReporter makes the scanner report each error as soon as it is found.
func WithErrorReporter(r loxerrors.ErrReporter) ScannerOption {
	return func(s *scanner) {
		s.reporter = r
	}
}

type scanner struct {
	source               []rune
	tokens               []token.Token
	start, current, line int
	errs                 []error
	reporter             loxerrors.ErrReporter
}

// NewScanner returns a new Scanner.
func NewScanner(input string, options ...ScannerOption) Scanner {
	s := &scanner{source: []rune(input), start: 0, current: 0, line: 1}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Scan implements Scanner.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() {
		// We are at the beginning of the next lexeme.
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line))

	return s.tokens, errors.Join(s.errs...)
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) scanToken() {
	var c = s.advance()

	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN)
	case ')':
		s.addToken(token.RIGHT_PAREN)
	case '{':
		s.addToken(token.LEFT_BRACE)
	case '}':
		s.addToken(token.RIGHT_BRACE)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		s.addToken(token.DOT)
	case '-':
		s.addToken(token.MINUS)
	case '+':
		s.addToken(token.PLUS)
	case ';':
		s.addToken(token.SEMICOLON)
	case '*':
		s.addToken(token.STAR)
	case '!':
		s.addMatchToken('=', token.BANG_EQUAL, token.BANG)
	case '=':
		s.addMatchToken('=', token.EQUAL_EQUAL, token.EQUAL)
	case '<':
		s.addMatchToken('=', token.LESS_EQUAL, token.LESS)
	case '>':
		s.addMatchToken('=', token.GREATER_EQUAL, token.GREATER)
	case '/':
		if s.match('/') {
			s.comment()
		} else {
			s.addToken(token.SLASH)
		}
	case ' ', '\r', '\t', '\n':
		// Ignore whitespace.
	case '"':
		s.string()
	default:
		if s.isDigit(c) {
			s.number()
		} else if s.isAlpha(c) {
			s.reservedOrIdentifier()
		} else {
			s.reportUnexpectedCharater(c)
		}
	}
}

func (s *scanner) peek() rune {
	if s.isAtEnd() {
		return '\000'
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return '\000'
	}
	return s.source[s.current+1]
}

func (s *scanner) advance() rune {
	if s.source[s.current] == '\n' {
		s.line++
	}
	s.current++
	return s.source[s.current-1]
}

func (s *scanner) match(expected rune) bool {
	if !s.isAtEnd() && expected == s.peek() {
		s.advance()
		return true
	}

	return false
}

func (s *scanner) addMatchToken(lookAhead rune, ifMatch, ifNotMatched token.TokenType) {
	if s.match(lookAhead) {
		s.addToken(ifMatch)
	} else {
		s.addToken(ifNotMatched)
	}
}

func (s *scanner) addToken(t token.TokenType) {
	s.addTokenLiteral(t, nil)
}

func (s *scanner) addTokenLiteral(t token.TokenType, literal token.Literal) {
	s.tokens = append(s.tokens, token.NewToken(t, string(s.source[s.start:s.current]), literal, s.line))
}

func (s *scanner) comment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *scanner) string() {
	// A string token is attributed to the line it starts on.
	line := s.line

	for !s.isAtEnd() && s.peek() != '"' {
		if s.peek() == '\\' && s.current+1 < len(s.source) {
			s.advance()
		}
		s.advance()
	}

	if s.isAtEnd() {
		s.reportError(loxerrors.ErrScanUnterminatedString)
		return
	}

	// The closing ".
	s.advance()

	value := s.source[s.start+1 : s.current-1]
	s.tokens = append(s.tokens, token.NewToken(token.STRING, string(s.source[s.start:s.current]), token.StringLiteral(value), line))
}

func (s *scanner) number() {
	for s.isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && s.isDigit(s.peekNext()) {
		s.advance()

		for s.isDigit(s.peek()) {
			s.advance()
		}
	}

	svalue := string(s.source[s.start:s.current])
	value, err := strconv.ParseFloat(svalue, 64)
	if err != nil {
		s.reportError(err)
		return
	}
	s.addTokenLiteral(token.NUMBER, token.NumberLiteral(value))
}

func (s *scanner) reservedOrIdentifier() {
	for s.isAlphaNumeric(s.peek()) {
		s.advance()
	}

	tokenType := token.IDENTIFIER
	name := string(s.source[s.start:s.current])
	if _type, ok := s.reserved(name); ok {
		tokenType = _type
	}
	s.addToken(tokenType)
}

func (s *scanner) reserved(identifier string) (tokenType token.TokenType, ok bool) {
	tokenType, ok = reservedKeywords[identifier]
	return
}

func (s *scanner) isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_'
}

// Identifiers start ASCII but may continue with any letter or digit.
func (s *scanner) isAlphaNumeric(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (s *scanner) reportUnexpectedCharater(c rune) {
	s.record(loxerrors.NewScanError(s.line, loxerrors.ErrScanUnexpectedCharacter, strconv.QuoteRune(c)))
}

func (s *scanner) reportError(err error) {
	s.record(loxerrors.NewScanError(s.line, err, ""))
}

func (s *scanner) record(err error) {
	s.errs = append(s.errs, err)
	if s.reporter != nil {
		s.reporter.ReportError(err)
	}
}

var _ Scanner = (*scanner)(nil)
