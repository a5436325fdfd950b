package ir

import (
	"strings"
	"unicode"

	"tlog.app/go/errors"
)

// typeParser parses type strings of IR documents:
//
//	u64, vector<vector<u8>>, &mut std::coin::Coin<T>, T, (u64, bool), ()
//
// A bare identifier that is not a builtin is a type parameter.
// Struct references are always qualified by address and module.
type typeParser struct {
	src  string
	toks []string
	pos  int

	addr func(name string) Address
	loc  Loc
}

func tokenizeType(s string) ([]string, error) {
	var toks []string

	for i := 0; i < len(s); {
		c := rune(s[i])

		switch {
		case unicode.IsSpace(c):
			i++
		case strings.HasPrefix(s[i:], "::"):
			toks = append(toks, "::")
			i += 2
		case strings.ContainsRune("<>,&()", c):
			toks = append(toks, string(c))
			i++
		case c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c):
			j := i
			for j < len(s) && (s[j] == '_' || unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j]))) {
				j++
			}

			toks = append(toks, s[i:j])
			i = j
		default:
			return nil, errors.New("unexpected character %q at %d", c, i)
		}
	}

	return toks, nil
}

func (p *typeParser) init(s string) error {
	toks, err := tokenizeType(s)
	if err != nil {
		return errors.Wrap(err, "type %q", s)
	}

	p.src = s
	p.toks = toks
	p.pos = 0

	return nil
}

func (p *typeParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}

	return ""
}

func (p *typeParser) next() string {
	t := p.peek()
	p.pos++

	return t
}

func (p *typeParser) expect(tok string) error {
	if got := p.next(); got != tok {
		return errors.New("type %q: expected %q, got %q", p.src, tok, got)
	}

	return nil
}

func (p *typeParser) done() error {
	if p.pos != len(p.toks) {
		return errors.New("type %q: unexpected %q", p.src, p.peek())
	}

	return nil
}

func (p *typeParser) parseType() (Type, error) {
	if p.peek() != "(" {
		return p.parseSingle()
	}

	p.next()

	var ts []*SingleType

	for p.peek() != ")" {
		if len(ts) != 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}

		t, err := p.parseSingle()
		if err != nil {
			return nil, err
		}

		ts = append(ts, t)
	}

	p.next()

	switch len(ts) {
	case 0:
		return &UnitType{}, nil
	case 1:
		return ts[0], nil
	default:
		return &MultipleType{Types: ts}, nil
	}
}

func (p *typeParser) parseSingle() (*SingleType, error) {
	t := &SingleType{Loc: p.loc}

	if p.peek() == "&" {
		p.next()
		t.Ref = true

		if p.peek() == "mut" {
			p.next()
			t.Mut = true
		}
	}

	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}

	t.Base = base

	return t, nil
}

func (p *typeParser) parseBase() (BaseType, error) {
	name := p.next()
	if name == "" || !isIdent(name) {
		return nil, errors.New("type %q: expected type name, got %q", p.src, name)
	}

	if p.peek() == "::" {
		return p.parseStruct(name)
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	b, ok := ParseBuiltin(name)
	if !ok {
		if len(args) != 0 {
			return nil, errors.New("type %q: type parameter %s takes no arguments", p.src, name)
		}

		return &TypeParam{Loc: p.loc, Name: name}, nil
	}

	if (b == BuiltinVector) != (len(args) == 1) || len(args) > 1 {
		return nil, errors.New("type %q: %s: wrong number of type arguments", p.src, name)
	}

	return &BuiltinType{Loc: p.loc, Name: b, Args: args}, nil
}

func (p *typeParser) parseStruct(addr string) (BaseType, error) {
	p.next() // ::

	module := p.next()
	if !isIdent(module) {
		return nil, errors.New("type %q: expected module name, got %q", p.src, module)
	}

	if err := p.expect("::"); err != nil {
		return nil, err
	}

	name := p.next()
	if !isIdent(name) {
		return nil, errors.New("type %q: expected struct name, got %q", p.src, name)
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	return &StructType{
		Loc:    p.loc,
		Module: ModuleIdent{Address: p.addr(addr), Module: module},
		Name:   name,
		Args:   args,
	}, nil
}

func (p *typeParser) parseArgs() (args []BaseType, err error) {
	if p.peek() != "<" {
		return nil, nil
	}

	p.next()

	for {
		t, err := p.parseBase()
		if err != nil {
			return nil, err
		}

		args = append(args, t)

		switch tok := p.next(); tok {
		case ",":
		case ">":
			return args, nil
		default:
			return nil, errors.New("type %q: expected , or >, got %q", p.src, tok)
		}
	}
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}

	return true
}
