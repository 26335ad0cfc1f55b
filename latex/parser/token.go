package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Token is an atomic unit of LaTeX input: a control word such as
// `\frac`, a control symbol such as `\,`, a single grapheme cluster, or
// one of the structural markers below.
type Token = string

const (
	TokenGroupOpen    Token = "<{>"
	TokenGroupClose   Token = "<}>"
	TokenSpace        Token = "<space>"
	TokenMathShift    Token = "<$>"
	TokenDisplayShift Token = "<$$>"
)

// IsCommand reports whether tok is a control word or control symbol.
func IsCommand(tok Token) bool {
	return len(tok) > 1 && tok[0] == '\\'
}

// IsMarker reports whether tok is a structural marker.
func IsMarker(tok Token) bool {
	switch tok {
	case TokenGroupOpen, TokenGroupClose, TokenSpace, TokenMathShift, TokenDisplayShift:
		return true
	}
	return false
}

// Tokenize splits LaTeX markup into tokens.
//
// Whitespace following a control word is dropped, as TeX does. Other
// whitespace runs become a single TokenSpace. Comments run from an
// unescaped % to the end of the line and swallow the line break.
func Tokenize(src string) []Token {
	var tokens []Token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == '%':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			// The line break and the next line's indentation go with it.
			for i < len(src) && isSpace(src[i]) {
				i++
			}
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			for i < len(src) && isSpace(src[i]) {
				i++
			}
			tokens = append(tokens, TokenSpace)
		case ch == '{':
			tokens = append(tokens, TokenGroupOpen)
			i++
		case ch == '}':
			tokens = append(tokens, TokenGroupClose)
			i++
		case ch == '$':
			if i+1 < len(src) && src[i+1] == '$' {
				tokens = append(tokens, TokenDisplayShift)
				i += 2
			} else {
				tokens = append(tokens, TokenMathShift)
				i++
			}
		case ch == '\\':
			tok, n := scanCommand(src[i:])
			tokens = append(tokens, tok)
			i += n
			if isControlWord(tok) {
				for i < len(src) && isSpace(src[i]) {
					i++
				}
			}
		default:
			cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(src[i:], -1)
			if cluster == "" {
				_, size := utf8.DecodeRuneInString(src[i:])
				cluster = src[i : i+size]
			}
			tokens = append(tokens, cluster)
			i += len(cluster)
		}
	}
	return tokens
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isControlWord(tok Token) bool {
	return len(tok) > 1 && tok[0] == '\\' && isASCIILetter(tok[1])
}

// scanCommand reads a control word or control symbol starting at the
// backslash.
func scanCommand(src string) (Token, int) {
	if len(src) == 1 {
		return `\`, 1
	}
	if !isASCIILetter(src[1]) {
		_, size := utf8.DecodeRuneInString(src[1:])
		return src[:1+size], 1 + size
	}
	n := 1
	for n < len(src) && isASCIILetter(src[n]) {
		n++
	}
	return src[:n], n
}

// TokensToString reconstructs LaTeX markup from tokens.
func TokensToString(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		switch tok {
		case TokenGroupOpen:
			sb.WriteByte('{')
		case TokenGroupClose:
			sb.WriteByte('}')
		case TokenSpace:
			sb.WriteByte(' ')
		case TokenMathShift:
			sb.WriteByte('$')
		case TokenDisplayShift:
			sb.WriteString("$$")
		default:
			sb.WriteString(tok)
			// A control word swallows the letters that follow it.
			if isControlWord(tok) && i+1 < len(tokens) {
				next, _ := utf8.DecodeRuneInString(tokens[i+1])
				if next < utf8.RuneSelf && unicode.IsLetter(next) {
					sb.WriteByte(' ')
				}
			}
		}
	}
	return sb.String()
}
