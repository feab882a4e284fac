package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrSyntax         = errors.New("syntax error")
)

// Eval evaluates an arithmetic expression with + - * / %, parentheses and
// unary minus. % is the floating-point remainder.
func Eval(expr string) (float64, error) {
	tokens, err := lex(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{tokens: tokens}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.tokens) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.tokens[p.pos].text)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: result out of range", ErrSyntax)
	}
	return v, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokOpen
	tokClose
)

type token struct {
	kind  tokenKind
	text  string
	value float64
}

func lex(expr string) ([]token, error) {
	var out []token
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			text := string(runes[start:i])
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, text)
			}
			out = append(out, token{kind: tokNumber, text: text, value: v})
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '%':
			out = append(out, token{kind: tokOp, text: string(r)})
			i++
		case r == '(':
			out = append(out, token{kind: tokOpen, text: "("})
			i++
		case r == ')':
			out = append(out, token{kind: tokClose, text: ")"})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, string(r))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	return out, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

// expr := term (("+" | "-") term)*
func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if tok.text == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

// term := unary (("*" | "/" | "%") unary)*
func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokOp || (tok.text != "*" && tok.text != "/" && tok.text != "%") {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		switch tok.text {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left = math.Mod(left, right)
		}
	}
}

// unary := "-" unary | "+" unary | primary
func (p *parser) unary() (float64, error) {
	tok, ok := p.peek()
	if ok && tok.kind == tokOp && (tok.text == "-" || tok.text == "+") {
		p.pos++
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		if tok.text == "-" {
			return -v, nil
		}
		return v, nil
	}
	return p.primary()
}

// primary := number | "(" expr ")"
func (p *parser) primary() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	switch tok.kind {
	case tokNumber:
		p.pos++
		return tok.value, nil
	case tokOpen:
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokClose {
			return 0, fmt.Errorf("%w: missing )", ErrSyntax)
		}
		p.pos++
		return v, nil
	}
	return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, tok.text)
}
