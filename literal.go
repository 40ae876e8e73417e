package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// evalLoose evaluates a literal expression in a maximally permissive
// dialect: single- or double-quoted strings, Python-style booleans and
// None, trailing commas, and bareword values. It is the last recovery
// attempt before a parse is declared failed; the result is re-encoded
// as strict JSON by the caller.
func evalLoose(s string) (any, error) {
	p := &looseParser{input: s}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("trailing content at offset %d", p.pos)
	}
	return v, nil
}

type looseParser struct {
	input string
	pos   int
}

func (p *looseParser) errf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *looseParser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *looseParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *looseParser) value() (any, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errf("unexpected end of input")
	}

	switch {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '\'' || c == '"':
		return p.quotedString(c)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	default:
		return p.bareword()
	}
}

func (p *looseParser) object() (any, error) {
	p.pos++ // consume '{'
	obj := make(map[string]any)

	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errf("unterminated object")
		}
		if c == '}' {
			p.pos++
			return obj, nil
		}
		if c == ',' {
			p.pos++
			continue
		}

		key, err := p.value()
		if err != nil {
			return nil, err
		}
		keyStr, ok := key.(string)
		if !ok {
			keyStr = fmt.Sprintf("%v", key)
		}

		p.skipSpace()
		if c, ok := p.peek(); !ok || c != ':' {
			return nil, p.errf("expected ':' after key %q", keyStr)
		}
		p.pos++

		p.skipSpace()
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		obj[keyStr] = val
	}
}

func (p *looseParser) array() (any, error) {
	p.pos++ // consume '['
	arr := []any{}

	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errf("unterminated array")
		}
		if c == ']' {
			p.pos++
			return arr, nil
		}
		if c == ',' {
			p.pos++
			continue
		}

		val, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
}

func (p *looseParser) quotedString(quote byte) (any, error) {
	p.pos++ // consume opening quote
	var sb strings.Builder

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.input) {
				return nil, p.errf("dangling escape")
			}
			next := p.input[p.pos+1]
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(next)
			}
			p.pos += 2
		case quote:
			p.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}

	return nil, p.errf("unterminated string")
}

func (p *looseParser) number() (any, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}

	tok := p.input[start:p.pos]
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, p.errf("invalid number %q", tok)
	}
	return n, nil
}

// bareword consumes an unquoted token up to the next structural
// delimiter. Known literals map to their typed values; anything else
// is treated as a string.
func (p *looseParser) bareword() (any, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ',' || c == ':' || c == '}' || c == ']' || c == '{' || c == '[' {
			break
		}
		p.pos++
	}

	tok := strings.TrimSpace(p.input[start:p.pos])
	if tok == "" {
		return nil, p.errf("empty token")
	}

	switch tok {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	case "null", "None", "nil":
		return nil, nil
	default:
		return tok, nil
	}
}
