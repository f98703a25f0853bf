package fakephone

import (
	"fmt"
	"strings"
)

const (
	digitAlphabet        = "0123456789"
	nonZeroDigitAlphabet = "123456789"
	lowerAlphabet        = "abcdefghijklmnopqrstuvwxyz"
	upperAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Placeholder tokens recognised inside a Pattern.
const (
	TokenDigit        = '#'
	TokenNonZeroDigit = '%'
	TokenLower        = '?'
	TokenUpper        = '^'
	// SlotToken marks where a prefix constrained rule inserts its identifier.
	SlotToken = "{}"
)

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenPlaceholder
	tokenSlot
)

type token struct {
	kind     tokenKind
	literal  string
	alphabet string
}

// Pattern is a compiled template of literal runs and placeholder tokens.
// The zero value is an empty pattern that expands to "".
type Pattern struct {
	source       string
	tokens       []token
	placeholders int
	slot         bool
}

// ParsePattern compiles a template. Reserved characters (! @ { } \) are rejected,
// optional segments are modelled as separate patterns rather than runtime markers.
func ParsePattern(source string) (Pattern, error) {
	p := Pattern{source: source}
	if source == "" {
		return p, nil
	}

	var literal strings.Builder
	flush := func() {
		if literal.Len() == 0 {
			return
		}
		p.tokens = append(p.tokens, token{kind: tokenLiteral, literal: literal.String()})
		literal.Reset()
	}

	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case TokenDigit, TokenNonZeroDigit, TokenLower, TokenUpper:
			flush()
			p.tokens = append(p.tokens, token{kind: tokenPlaceholder, alphabet: alphabetFor(r)})
			p.placeholders++
		case '{':
			if i+1 >= len(runes) || runes[i+1] != '}' {
				return Pattern{}, &ConfigError{Field: "pattern", Err: fmt.Errorf("unterminated slot at offset %d in %q", i, source)}
			}
			if p.slot {
				return Pattern{}, &ConfigError{Field: "pattern", Err: fmt.Errorf("multiple slots in %q", source)}
			}
			flush()
			p.tokens = append(p.tokens, token{kind: tokenSlot})
			p.slot = true
			i++
		case '}', '!', '@', '\\':
			return Pattern{}, &ConfigError{Field: "pattern", Err: fmt.Errorf("reserved character %q in %q", r, source)}
		default:
			literal.WriteRune(r)
		}
	}
	flush()

	return p, nil
}

// MustParsePattern is like ParsePattern but panics on malformed input.
func MustParsePattern(source string) Pattern {
	p, err := ParsePattern(source)
	if err != nil {
		panic(err)
	}
	return p
}

func alphabetFor(r rune) string {
	switch r {
	case TokenNonZeroDigit:
		return nonZeroDigitAlphabet
	case TokenLower:
		return lowerAlphabet
	case TokenUpper:
		return upperAlphabet
	default:
		return digitAlphabet
	}
}

// String returns the template source.
func (p Pattern) String() string {
	return p.source
}

// Placeholders returns the number of random draws a single expansion makes.
func (p Pattern) Placeholders() int {
	return p.placeholders
}

// HasSlot reports whether the pattern carries an identifier slot.
func (p Pattern) HasSlot() bool {
	return p.slot
}

// Expand draws one symbol per placeholder and returns the concrete string.
// A slot, if any, expands to nothing.
func (p Pattern) Expand(src Source) string {
	return p.ExpandWith(src, "")
}

// ExpandWith expands the pattern and substitutes slot in place of the {} marker.
func (p Pattern) ExpandWith(src Source, slot string) string {
	if len(p.tokens) == 0 {
		return ""
	}

	var out strings.Builder
	out.Grow(len(p.source) + len(slot))
	for _, tok := range p.tokens {
		switch tok.kind {
		case tokenPlaceholder:
			out.WriteByte(tok.alphabet[src.IntN(len(tok.alphabet))])
		case tokenSlot:
			out.WriteString(slot)
		default:
			out.WriteString(tok.literal)
		}
	}
	return out.String()
}
