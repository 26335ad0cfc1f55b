package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/mathjson/ebnflex"
	"golang.org/x/text/unicode/norm"
)

// identifierGrammar describes a valid identifier after font and accent
// suffixes have been applied.
const identifierGrammar = `
Identifier = head { tail } .
head = letter | emojiSeq .
tail = letter | digit | mark | "_" | emojiSeq .
emojiSeq = emoji { mark | joiner emoji } .
`

var identifierMatcher = ebnflex.MustCompile("identifier.ebnf", identifierGrammar, "Identifier", map[string]ebnflex.Class{
	"letter": unicode.IsLetter,
	"digit":  unicode.IsDigit,
	"mark":   unicode.IsMark,
	"emoji":  isEmoji,
	"joiner": func(r rune) bool { return r == '\u200d' },
})

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	}
	return false
}

// ValidIdentifier reports whether id is a well formed identifier.
func ValidIdentifier(id string) bool {
	return identifierMatcher.Match(id)
}

// fontCommands maps font wrappers to the suffix they add.
var fontCommands = map[Token]string{
	`\operatorname`: "",
	`\mathord`:      "",
	`\mathop`:       "",
	`\mathbin`:      "",
	`\mathrm`:       "_upright",
	`\mathup`:       "_upright",
	`\mathit`:       "_italic",
	`\mathbf`:       "_bold",
	`\boldsymbol`:   "_bold",
	`\bm`:           "_bold",
	`\mathbb`:       "_blackboard",
	`\mathcal`:      "_calligraphic",
	`\mathfrak`:     "_fraktur",
	`\mathsf`:       "_sansserif",
	`\mathtt`:       "_monospace",
	`\mathscr`:      "_script",
}

var accentCommands = map[Token]string{
	`\hat`:                "_hat",
	`\widehat`:            "_hat",
	`\tilde`:              "_tilde",
	`\widetilde`:          "_tilde",
	`\bar`:                "_bar",
	`\overline`:           "_bar",
	`\vec`:                "_vec",
	`\overrightarrow`:     "_vec",
	`\dot`:                "_dot",
	`\ddot`:               "_ddot",
	`\acute`:              "_acute",
	`\grave`:              "_grave",
	`\breve`:              "_breve",
	`\check`:              "_check",
	`\underline`:          "_underline",
	`\overleftarrow`:      "_overleftarrow",
	`\overleftrightarrow`: "_overleftrightarrow",
}

// symbolCommands are commands that read as identifiers on their own.
var symbolCommands = map[Token]string{}

func init() {
	for _, name := range []string{
		"alpha", "beta", "gamma", "delta", "epsilon", "varepsilon", "zeta",
		"eta", "theta", "vartheta", "iota", "kappa", "varkappa", "lambda",
		"mu", "nu", "xi", "omicron", "varpi", "rho", "varrho", "sigma",
		"varsigma", "tau", "upsilon", "phi", "varphi", "chi", "psi", "omega",
		"Gamma", "Delta", "Theta", "Lambda", "Xi", "Pi", "Sigma", "Upsilon",
		"Phi", "Psi", "Omega", "digamma", "aleph", "beth", "gimel", "daleth",
		"ell", "hbar", "imath", "jmath", "wp", "eth",
	} {
		symbolCommands[`\`+name] = name
	}
}

// ParseIdentifier parses an identifier followed by any primes, which
// fold into the name as _prime, _dprime and so on.
func (p *Parser) ParseIdentifier() (string, bool) {
	cp := p.Checkpoint()
	id, ok := p.parseIdentifierBody()
	if !ok {
		p.Restore(cp)
		return "", false
	}
	return id + primeSuffix(p.parsePrimes()), true
}

func primeSuffix(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "_prime"
	case 2:
		return "_dprime"
	case 3:
		return "_tprime"
	}
	return strings.Repeat("_prime", n)
}

// parseIdentifierBody parses an identifier without primes. On failure
// the cursor is unchanged.
func (p *Parser) parseIdentifierBody() (string, bool) {
	cp := p.Checkpoint()
	id, ok := p.scanIdentifier()
	if ok {
		id = norm.NFC.String(id)
		ok = ValidIdentifier(id)
	}
	if !ok {
		p.Restore(cp)
		return "", false
	}
	return id, true
}

func (p *Parser) scanIdentifier() (string, bool) {
	tok := p.Peek()
	if tag, ok := fontCommands[tok]; ok {
		p.Next()
		body, ok := p.scanFontBody()
		if !ok {
			return "", false
		}
		return applyFontTag(body, tag), true
	}
	if tag, ok := accentCommands[tok]; ok {
		p.Next()
		p.SkipSpace()
		var body string
		if p.Match(TokenGroupOpen) {
			inner, ok := p.scanIdentifier()
			if !ok || !p.Match(TokenGroupClose) {
				return "", false
			}
			body = inner
		} else {
			inner, ok := p.scanIdentifier()
			if !ok {
				return "", false
			}
			body = inner
		}
		return body + tag, true
	}
	if name, ok := symbolCommands[tok]; ok {
		p.Next()
		return name, true
	}
	if isLetterToken(tok) {
		p.Next()
		return tok, true
	}
	if isEmojiToken(tok) {
		var sb strings.Builder
		for isEmojiToken(p.Peek()) {
			sb.WriteString(p.Next())
		}
		return sb.String(), true
	}
	return "", false
}

func applyFontTag(body, tag string) string {
	single := utf8.RuneCountInString(body) == 1
	switch {
	case tag == "":
		return body
	case tag == "_upright" && !single:
		return body
	case tag == "_italic" && single:
		return body
	}
	return body + tag
}

// scanFontBody reads the argument of a font wrapper. Subscripts inside
// the argument become part of the name, so \mathrm{x_{max}} is x_max.
func (p *Parser) scanFontBody() (string, bool) {
	p.SkipSpace()
	if !p.Match(TokenGroupOpen) {
		tok := p.Peek()
		if name, ok := symbolCommands[tok]; ok {
			p.Next()
			return name, true
		}
		if isLetterToken(tok) || isDigitToken(tok) {
			p.Next()
			return tok, true
		}
		return "", false
	}

	var sb strings.Builder
	depth := 0
	for {
		tok := p.Next()
		switch {
		case tok == "":
			return "", false
		case tok == TokenGroupOpen:
			depth++
		case tok == TokenGroupClose:
			if depth == 0 {
				return sb.String(), sb.Len() > 0
			}
			depth--
		case tok == TokenSpace:
		case tok == "_" || tok == `\_`:
			sb.WriteByte('_')
		case symbolCommands[tok] != "":
			sb.WriteString(symbolCommands[tok])
		case IsCommand(tok) || IsMarker(tok):
			return "", false
		default:
			sb.WriteString(tok)
		}
	}
}

// parseSingleTokenIdentifier reads a letter or a symbol command such as
// \alpha, without primes or wrappers.
func (p *Parser) parseSingleTokenIdentifier() (string, bool) {
	tok := p.Peek()
	if name, ok := symbolCommands[tok]; ok {
		p.Next()
		return name, true
	}
	if isLetterToken(tok) && ValidIdentifier(norm.NFC.String(tok)) {
		p.Next()
		return norm.NFC.String(tok), true
	}
	return "", false
}

// parsePrimes counts prime marks: ', \prime, \doubleprime, ^\prime and
// ^{\prime\prime}.
func (p *Parser) parsePrimes() int {
	count := 0
	for {
		switch p.Peek() {
		case "'", "′", `\prime`:
			p.Next()
			count++
			continue
		case `\doubleprime`, "″":
			p.Next()
			count += 2
			continue
		case "^":
			if n := p.scriptPrimes(); n > 0 {
				count += n
				continue
			}
		}
		return count
	}
}

// scriptPrimes consumes ^\prime or ^{\prime...} and returns how many
// primes it held. Anything else leaves the cursor alone.
func (p *Parser) scriptPrimes() int {
	cp := p.Checkpoint()
	p.Next()
	if p.Match(`\prime`) {
		return 1
	}
	if p.Match(TokenGroupOpen) {
		n := 0
	scan:
		for {
			switch p.Peek() {
			case `\prime`:
				n++
			case `\doubleprime`:
				n += 2
			default:
				break scan
			}
			p.Next()
		}
		if n > 0 && p.Match(TokenGroupClose) {
			return n
		}
	}
	p.Restore(cp)
	return 0
}

func isLetterToken(tok Token) bool {
	if tok == "" || IsMarker(tok) || IsCommand(tok) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsLetter(r)
}

func isEmojiToken(tok Token) bool {
	if tok == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok)
	return isEmoji(r)
}
