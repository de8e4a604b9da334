package getdate

import (
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	// maxTokens bounds the token buffer of a single parse.
	maxTokens = 256
	// maxWordLen caps how many letters and digits one word scan reads. No
	// lexicon word is that long, so a longer run fails the lookup and is
	// scanned again from its next byte.
	maxWordLen = 63
)

// MaxNumber is the value a digit run saturates at. Downstream range
// checks reject it wherever it cannot be a legitimate field.
const MaxNumber = math.MaxInt32

// Token is one lexical unit of a date expression. For KindOperator the
// Value holds the operator character.
type Token struct {
	Kind  Kind
	Value int64
}

func (t Token) String() string {
	switch t.Kind {
	case KindOperator:
		return fmt.Sprintf("%q", rune(t.Value))
	case KindEOF:
		return "EOF"
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.Value)
}

// scanner walks the raw input one token at a time.
type scanner struct {
	input string
	pos   int
}

// next returns the next token, or a KindEOF token at the end of input
// and inside an unterminated comment.
func (s *scanner) next() Token {
	for {
		for s.pos < len(s.input) && isSpace(s.input[s.pos]) {
			s.pos++
		}
		if s.pos < len(s.input) && s.input[s.pos] == '(' {
			if !s.skipComment() {
				return Token{Kind: KindEOF}
			}
			continue
		}
		break
	}
	if s.pos >= len(s.input) {
		return Token{Kind: KindEOF}
	}

	// Words are looked up first so "2nd" and "1st" win over numbers.
	var buf [maxWordLen]byte
	n, end := 0, s.pos
	for end < len(s.input) && n < maxWordLen {
		c := s.input[end]
		if !isAlnum(c) && c != '.' {
			break
		}
		if c != '.' {
			buf[n] = toLower(c)
			n++
		}
		end++
	}
	if e, ok := lookup(string(buf[:n])); ok {
		s.pos = end
		return Token{Kind: e.kind, Value: e.value}
	}

	if isDigit(s.input[s.pos]) {
		var v int64
		for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
			v = v*10 + int64(s.input[s.pos]-'0')
			if v > MaxNumber {
				v = MaxNumber
			}
			s.pos++
		}
		return Token{Kind: KindNumber, Value: v}
	}

	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	return Token{Kind: KindOperator, Value: int64(r)}
}

// skipComment consumes a parenthesized comment, nested parentheses
// included. It reports false when the input ends inside the comment.
func (s *scanner) skipComment() bool {
	depth := 0
	for {
		if s.pos >= len(s.input) {
			return false
		}
		c := s.input[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth <= 0 {
			return true
		}
	}
}

// tokenize splits input into at most maxTokens tokens.
func tokenize(input string) ([]Token, error) {
	s := scanner{input: input}
	var tokens []Token
	for {
		tok := s.next()
		if tok.Kind == KindEOF {
			return tokens, nil
		}
		if len(tokens) == maxTokens {
			return nil, fmt.Errorf("%w: more than %d tokens", ErrTokenBufferOverflow, maxTokens)
		}
		tokens = append(tokens, tok)
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isAlnum(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
