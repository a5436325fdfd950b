package ir

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"

	"github.com/movingco/move-to-ts/internal/diagnostic"
)

type (
	wireModule struct {
		File      string            `yaml:"file"`
		Addresses map[string]string `yaml:"addresses"`
		Address   string            `yaml:"address"`
		Module    string            `yaml:"module"`
		Package   string            `yaml:"package"`
		Deps      []string          `yaml:"deps"`

		Constants []wireConstant `yaml:"constants"`
		Structs   []wireStruct   `yaml:"structs"`
		Functions []wireFunction `yaml:"functions"`
	}

	wireConstant struct {
		Line  int         `yaml:"line"`
		Col   int         `yaml:"col"`
		Name  string      `yaml:"name"`
		Type  string      `yaml:"type"`
		Value []*wireNode `yaml:"value"`
	}

	wireStruct struct {
		Line       int             `yaml:"line"`
		Col        int             `yaml:"col"`
		Name       string          `yaml:"name"`
		Abilities  []string        `yaml:"abilities"`
		TypeParams []wireTypeParam `yaml:"type_params"`
		Native     bool            `yaml:"native"`
		Fields     []wireVar       `yaml:"fields"`
	}

	wireTypeParam struct {
		Name    string `yaml:"name"`
		Phantom bool   `yaml:"phantom"`
	}

	wireVar struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	}

	wireFunction struct {
		Line       int         `yaml:"line"`
		Col        int         `yaml:"col"`
		Name       string      `yaml:"name"`
		Visibility string      `yaml:"visibility"`
		Test       bool        `yaml:"test"`
		TypeParams []string    `yaml:"type_params"`
		Params     []wireVar   `yaml:"params"`
		Return     string      `yaml:"return"`
		Native     bool        `yaml:"native"`
		Locals     []wireVar   `yaml:"locals"`
		Body       []*wireNode `yaml:"body"`
	}

	// wireNode is a statement, expression or l-value, told apart by Kind.
	wireNode struct {
		Line int    `yaml:"line"`
		Col  int    `yaml:"col"`
		Kind string `yaml:"kind"`

		Name     string   `yaml:"name"`
		Type     string   `yaml:"type"`
		Lit      string   `yaml:"lit"`
		Mut      bool     `yaml:"mut"`
		Op       string   `yaml:"op"`
		Module   string   `yaml:"module"`
		Field    string   `yaml:"field"`
		Struct   string   `yaml:"struct"`
		Elem     string   `yaml:"elem"`
		To       string   `yaml:"to"`
		TypeArg  string   `yaml:"type_arg"`
		TypeArgs []string `yaml:"type_args"`
		Label    int      `yaml:"label"`
		HasBreak bool     `yaml:"has_break"`
		PopNum   int      `yaml:"pop_num"`

		Exp     *wireNode   `yaml:"exp"`
		Left    *wireNode   `yaml:"left"`
		Right   *wireNode   `yaml:"right"`
		Cond    *wireNode   `yaml:"cond"`
		Target  *wireNode   `yaml:"target"`
		Args    []*wireNode `yaml:"args"`
		LValues []*wireNode `yaml:"lvalues"`
		Fields  []wireField `yaml:"fields"`

		Then []*wireNode `yaml:"then"`
		Else []*wireNode `yaml:"else"`
		Pre  []*wireNode `yaml:"pre"`
		Body []*wireNode `yaml:"body"`
	}

	wireField struct {
		Name   string    `yaml:"name"`
		Exp    *wireNode `yaml:"exp"`
		LValue *wireNode `yaml:"lvalue"`
	}

	decoder struct {
		doc       string
		file      string
		addresses map[string]string
	}
)

// LoadFile reads a module document from path.
func LoadFile(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Decode(path, data)
}

// Decode converts a YAML (or JSON) module document into a Module.
// doc names the document in errors.
func Decode(doc string, data []byte) (*Module, error) {
	var w wireModule

	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "decode %v", doc)
	}

	d := &decoder{
		doc:       doc,
		file:      w.File,
		addresses: w.Addresses,
	}

	if d.file == "" {
		d.file = doc
	}

	return d.module(&w)
}

func (d *decoder) module(w *wireModule) (_ *Module, err error) {
	if w.Address == "" || w.Module == "" {
		return nil, errors.New("%v: address and module are required", d.doc)
	}

	m := &Module{
		Ident:   ModuleIdent{Address: d.address(w.Address), Module: w.Module},
		Package: w.Package,
		File:    d.file,
	}

	for _, dep := range w.Deps {
		id, err := d.moduleIdent(dep)
		if err != nil {
			return nil, err
		}

		m.Deps = append(m.Deps, id)
	}

	for _, wc := range w.Constants {
		c := &Constant{Loc: d.loc(wc.Line, wc.Col), Name: wc.Name}

		c.Type, err = d.baseType(wc.Type, c.Loc)
		if err != nil {
			return nil, errors.Wrap(err, "constant %v", wc.Name)
		}

		c.Value, err = d.block(wc.Value)
		if err != nil {
			return nil, errors.Wrap(err, "constant %v", wc.Name)
		}

		m.Constants = append(m.Constants, c)
	}

	for i := range w.Structs {
		s, err := d.structDef(&w.Structs[i])
		if err != nil {
			return nil, errors.Wrap(err, "struct %v", w.Structs[i].Name)
		}

		m.Structs = append(m.Structs, s)
	}

	for i := range w.Functions {
		f, err := d.function(&w.Functions[i])
		if err != nil {
			return nil, errors.Wrap(err, "function %v", w.Functions[i].Name)
		}

		m.Functions = append(m.Functions, f)
	}

	return m, nil
}

func (d *decoder) structDef(w *wireStruct) (_ *Struct, err error) {
	s := &Struct{
		Loc:    d.loc(w.Line, w.Col),
		Name:   w.Name,
		Native: w.Native,
	}

	for _, a := range w.Abilities {
		switch a {
		case "copy":
			s.Abilities = s.Abilities.With(AbilityCopy)
		case "drop":
			s.Abilities = s.Abilities.With(AbilityDrop)
		case "store":
			s.Abilities = s.Abilities.With(AbilityStore)
		case "key":
			s.Abilities = s.Abilities.With(AbilityKey)
		default:
			return nil, d.errorf(s.Loc, "unknown ability %q", a)
		}
	}

	for _, tp := range w.TypeParams {
		s.TypeParams = append(s.TypeParams, StructTypeParam{Name: tp.Name, IsPhantom: tp.Phantom})
	}

	for _, f := range w.Fields {
		t, err := d.baseType(f.Type, s.Loc)
		if err != nil {
			return nil, errors.Wrap(err, "field %v", f.Name)
		}

		s.Fields = append(s.Fields, Field{Name: f.Name, Type: t})
	}

	return s, nil
}

func (d *decoder) function(w *wireFunction) (_ *Function, err error) {
	f := &Function{
		Loc:    d.loc(w.Line, w.Col),
		Name:   w.Name,
		IsTest: w.Test,
		Native: w.Native,
	}

	switch w.Visibility {
	case "", "internal":
		f.Visibility = Internal
	case "public":
		f.Visibility = Public
	case "friend":
		f.Visibility = Friend
	case "script", "entry":
		f.Visibility = Script
	default:
		return nil, d.errorf(f.Loc, "unknown visibility %q", w.Visibility)
	}

	f.Signature.TypeParams = w.TypeParams

	for _, p := range w.Params {
		t, err := d.singleType(p.Type, f.Loc)
		if err != nil {
			return nil, errors.Wrap(err, "param %v", p.Name)
		}

		f.Signature.Params = append(f.Signature.Params, Param{Name: p.Name, Type: t})
	}

	ret := w.Return
	if ret == "" {
		ret = "()"
	}

	f.Signature.Return, err = d.typ(ret, f.Loc)
	if err != nil {
		return nil, errors.Wrap(err, "return type")
	}

	if f.Native {
		return f, nil
	}

	for _, l := range w.Locals {
		t, err := d.singleType(l.Type, f.Loc)
		if err != nil {
			return nil, errors.Wrap(err, "local %v", l.Name)
		}

		f.Locals = append(f.Locals, Local{Name: l.Name, Type: t})
	}

	f.Body, err = d.block(w.Body)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (d *decoder) block(ws []*wireNode) (Block, error) {
	b := make(Block, 0, len(ws))

	for _, w := range ws {
		s, err := d.statement(w)
		if err != nil {
			return nil, err
		}

		b = append(b, s)
	}

	return b, nil
}

func (d *decoder) statement(w *wireNode) (_ Statement, err error) {
	if w == nil {
		return nil, errors.New("%v: empty statement", d.doc)
	}

	l := d.loc(w.Line, w.Col)

	switch w.Kind {
	case "if":
		s := &IfElse{Loc: l}

		if s.Cond, err = d.exp(w.Cond); err != nil {
			return nil, err
		}
		if s.If, err = d.block(w.Then); err != nil {
			return nil, err
		}
		if s.Else, err = d.block(w.Else); err != nil {
			return nil, err
		}

		return s, nil
	case "while":
		s := &While{Loc: l}

		if s.Pre, err = d.block(w.Pre); err != nil {
			return nil, err
		}
		if s.Cond, err = d.exp(w.Cond); err != nil {
			return nil, err
		}
		if s.Body, err = d.block(w.Body); err != nil {
			return nil, err
		}

		return s, nil
	case "loop":
		s := &Loop{Loc: l, HasBreak: w.HasBreak}

		if s.Body, err = d.block(w.Body); err != nil {
			return nil, err
		}

		return s, nil
	case "assign":
		s := &Assign{Loc: l}

		for _, lw := range w.LValues {
			lv, err := d.lvalue(lw)
			if err != nil {
				return nil, err
			}

			s.LValues = append(s.LValues, lv)
		}

		if s.Exp, err = d.exp(w.Exp); err != nil {
			return nil, err
		}

		return s, nil
	case "mutate":
		s := &Mutate{Loc: l}

		if s.Target, err = d.exp(w.Target); err != nil {
			return nil, err
		}
		if s.Exp, err = d.exp(w.Exp); err != nil {
			return nil, err
		}

		return s, nil
	case "abort":
		s := &Abort{Loc: l}

		if s.Code, err = d.exp(w.Exp); err != nil {
			return nil, err
		}

		return s, nil
	case "return":
		s := &Return{Loc: l, Exp: &UnitExp{Loc: l}}

		if w.Exp != nil {
			if s.Exp, err = d.exp(w.Exp); err != nil {
				return nil, err
			}
		}

		return s, nil
	case "break":
		return &Break{Loc: l}, nil
	case "continue":
		return &Continue{Loc: l}, nil
	case "pop":
		s := &IgnoreAndPop{Loc: l, PopNum: w.PopNum}

		if s.Exp, err = d.exp(w.Exp); err != nil {
			return nil, err
		}

		return s, nil
	case "jump":
		s := &Jump{Loc: l, Target: w.Label}

		if w.Cond != nil {
			if s.Cond, err = d.exp(w.Cond); err != nil {
				return nil, err
			}
		}

		return s, nil
	default:
		return nil, d.errorf(l, "unknown statement kind %q", w.Kind)
	}
}

func (d *decoder) lvalue(w *wireNode) (LValue, error) {
	if w == nil {
		return nil, errors.New("%v: empty lvalue", d.doc)
	}

	l := d.loc(w.Line, w.Col)

	switch w.Kind {
	case "ignore":
		return &IgnoreLValue{Loc: l}, nil
	case "var":
		lv := &VarLValue{Loc: l, Name: w.Name}

		if w.Type != "" {
			t, err := d.singleType(w.Type, l)
			if err != nil {
				return nil, err
			}

			lv.Type = t
		}

		return lv, nil
	case "unpack":
		st, err := d.structType(w.Struct, l)
		if err != nil {
			return nil, err
		}

		lv := &UnpackLValue{Loc: l, Struct: st}

		for _, f := range w.Fields {
			inner, err := d.lvalue(f.LValue)
			if err != nil {
				return nil, errors.Wrap(err, "field %v", f.Name)
			}

			lv.Fields = append(lv.Fields, FieldLValue{Name: f.Name, LValue: inner})
		}

		return lv, nil
	default:
		return nil, d.errorf(l, "unknown lvalue kind %q", w.Kind)
	}
}

func (d *decoder) exp(w *wireNode) (_ Exp, err error) {
	if w == nil {
		return nil, errors.New("%v: missing expression", d.doc)
	}

	l := d.loc(w.Line, w.Col)

	var t Type = &UnitType{}
	if w.Type != "" {
		if t, err = d.typ(w.Type, l); err != nil {
			return nil, err
		}
	}

	switch w.Kind {
	case "unit":
		return &UnitExp{Loc: l}, nil
	case "value":
		e := &ValueExp{Loc: l, Type: t, Lit: w.Lit}

		st, ok := t.(*SingleType)
		if !ok {
			return nil, d.errorf(l, "value %q needs a type", w.Lit)
		}

		b, ok := AsBuiltin(st.Base)
		if !ok {
			return nil, d.errorf(l, "value %q of non-builtin type %v", w.Lit, st)
		}

		e.Kind = b.Name

		if e.Kind == BuiltinAddress {
			e.Lit = d.address(e.Lit).Hex
		}

		return e, nil
	case "move":
		return &MoveExp{Loc: l, Type: t, Name: w.Name}, nil
	case "copy":
		return &CopyExp{Loc: l, Type: t, Name: w.Name}, nil
	case "borrow_local":
		return &BorrowLocalExp{Loc: l, Type: t, Mut: w.Mut, Name: w.Name}, nil
	case "constant":
		return &ConstantExp{Loc: l, Type: t, Name: w.Name}, nil
	case "call":
		e := &ModuleCallExp{Loc: l, Type: t, Name: w.Name}

		if e.Module, err = d.moduleIdent(w.Module); err != nil {
			return nil, err
		}
		if e.TypeArgs, err = d.baseTypes(w.TypeArgs, l); err != nil {
			return nil, err
		}
		if e.Args, err = d.exps(w.Args); err != nil {
			return nil, err
		}

		return e, nil
	case "builtin":
		f, ok := ParseBuiltinFunc(w.Name)
		if !ok {
			return nil, d.errorf(l, "unknown builtin %q", w.Name)
		}

		e := &BuiltinCallExp{Loc: l, Type: t, Func: f}

		if w.TypeArg != "" {
			if e.TypeArg, err = d.baseType(w.TypeArg, l); err != nil {
				return nil, err
			}
		}
		if e.Args, err = d.exps(w.Args); err != nil {
			return nil, err
		}

		return e, nil
	case "vector":
		e := &VectorExp{Loc: l, Type: t}

		if e.Elem, err = d.baseType(w.Elem, l); err != nil {
			return nil, err
		}
		if e.Elems, err = d.exps(w.Args); err != nil {
			return nil, err
		}

		return e, nil
	case "deref":
		e := &DereferenceExp{Loc: l, Type: t}
		e.Exp, err = d.exp(w.Exp)

		return e, err
	case "borrow":
		e := &BorrowExp{Loc: l, Type: t, Mut: w.Mut, Field: w.Field}
		e.Exp, err = d.exp(w.Exp)

		return e, err
	case "unary":
		e := &UnaryExp{Loc: l, Type: t, Op: w.Op}
		e.Exp, err = d.exp(w.Exp)

		return e, err
	case "binop":
		e := &BinopExp{Loc: l, Type: t, Op: w.Op}

		if e.Left, err = d.exp(w.Left); err != nil {
			return nil, err
		}
		if e.Right, err = d.exp(w.Right); err != nil {
			return nil, err
		}

		return e, nil
	case "pack":
		e := &PackExp{Loc: l, Type: t}

		if e.Struct, err = d.structType(w.Struct, l); err != nil {
			return nil, err
		}

		for _, f := range w.Fields {
			fe, err := d.exp(f.Exp)
			if err != nil {
				return nil, errors.Wrap(err, "field %v", f.Name)
			}

			e.Fields = append(e.Fields, FieldExp{Name: f.Name, Exp: fe})
		}

		return e, nil
	case "list":
		e := &ExpListExp{Loc: l, Type: t}
		e.Exps, err = d.exps(w.Args)

		return e, err
	case "cast":
		to, ok := ParseBuiltin(w.To)
		if !ok || !to.IsInteger() {
			return nil, d.errorf(l, "bad cast target %q", w.To)
		}

		e := &CastExp{Loc: l, Type: t, To: to}
		e.Exp, err = d.exp(w.Exp)

		return e, err
	default:
		return nil, d.errorf(l, "unknown expression kind %q", w.Kind)
	}
}

func (d *decoder) exps(ws []*wireNode) ([]Exp, error) {
	var es []Exp

	for _, w := range ws {
		e, err := d.exp(w)
		if err != nil {
			return nil, err
		}

		es = append(es, e)
	}

	return es, nil
}

func (d *decoder) parser(s string, l Loc) (*typeParser, error) {
	p := &typeParser{addr: d.address, loc: l}

	if err := p.init(s); err != nil {
		return nil, d.errorf(l, "%v", err)
	}

	return p, nil
}

func (d *decoder) typ(s string, l Loc) (Type, error) {
	p, err := d.parser(s, l)
	if err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err == nil {
		err = p.done()
	}
	if err != nil {
		return nil, d.errorf(l, "%v", err)
	}

	return t, nil
}

func (d *decoder) singleType(s string, l Loc) (*SingleType, error) {
	t, err := d.typ(s, l)
	if err != nil {
		return nil, err
	}

	st, ok := t.(*SingleType)
	if !ok {
		return nil, d.errorf(l, "type %q: expected a single type", s)
	}

	return st, nil
}

func (d *decoder) baseType(s string, l Loc) (BaseType, error) {
	st, err := d.singleType(s, l)
	if err != nil {
		return nil, err
	}

	if st.Ref {
		return nil, d.errorf(l, "type %q: reference not allowed here", s)
	}

	return st.Base, nil
}

func (d *decoder) baseTypes(ss []string, l Loc) ([]BaseType, error) {
	var ts []BaseType

	for _, s := range ss {
		t, err := d.baseType(s, l)
		if err != nil {
			return nil, err
		}

		ts = append(ts, t)
	}

	return ts, nil
}

func (d *decoder) structType(s string, l Loc) (*StructType, error) {
	t, err := d.baseType(s, l)
	if err != nil {
		return nil, err
	}

	st, ok := t.(*StructType)
	if !ok {
		return nil, d.errorf(l, "type %q: expected a struct", s)
	}

	return st, nil
}

func (d *decoder) moduleIdent(s string) (ModuleIdent, error) {
	addr, module, ok := strings.Cut(s, "::")
	if !ok || addr == "" || module == "" {
		return ModuleIdent{}, errors.New("%v: bad module reference %q", d.doc, s)
	}

	return ModuleIdent{Address: d.address(addr), Module: module}, nil
}

func (d *decoder) address(name string) Address {
	if hex, ok := d.addresses[name]; ok {
		return Address{Name: name, Hex: hex}
	}

	return Address{Name: name, Hex: name}
}

func (d *decoder) loc(line, col int) Loc {
	return Loc{File: d.file, Line: line, Column: col}
}

func (d *decoder) errorf(l Loc, format string, args ...interface{}) error {
	return diagnostic.Errorf(l.File, l.Line, l.Column, format, args...)
}
