package ir

// Exp is the interface for all expression nodes.
type Exp interface {
	Pos() Loc
	ExpType() Type
	expNode()
}

// BuiltinFunc is a global storage or reference builtin.
type BuiltinFunc int

const (
	MoveTo BuiltinFunc = iota
	MoveFrom
	BorrowGlobal
	BorrowGlobalMut
	Exists
	Freeze
)

var builtinFuncNames = [...]string{
	MoveTo:          "move_to",
	MoveFrom:        "move_from",
	BorrowGlobal:    "borrow_global",
	BorrowGlobalMut: "borrow_global_mut",
	Exists:          "exists",
	Freeze:          "freeze",
}

func (f BuiltinFunc) String() string {
	if f >= 0 && int(f) < len(builtinFuncNames) {
		return builtinFuncNames[f]
	}

	return "unknown"
}

// ParseBuiltinFunc returns the builtin function with the given source name.
func ParseBuiltinFunc(s string) (BuiltinFunc, bool) {
	for i, n := range builtinFuncNames {
		if n == s {
			return BuiltinFunc(i), true
		}
	}

	return 0, false
}

type (
	// UnitExp is the unit value.
	UnitExp struct {
		Loc Loc
	}

	// ValueExp is a literal. Lit is the source text of the value:
	// true/false, a decimal integer, an address name or hex, or 0x-prefixed bytes.
	ValueExp struct {
		Loc  Loc
		Type Type
		Kind Builtin // BuiltinVector means a byte string
		Lit  string
	}

	// MoveExp moves a local.
	MoveExp struct {
		Loc  Loc
		Type Type
		Name string
	}

	// CopyExp copies a local.
	CopyExp struct {
		Loc  Loc
		Type Type
		Name string
	}

	// BorrowLocalExp takes a reference to a local.
	BorrowLocalExp struct {
		Loc  Loc
		Type Type
		Mut  bool
		Name string
	}

	// ConstantExp refers to a constant of the current module.
	ConstantExp struct {
		Loc  Loc
		Type Type
		Name string
	}

	// ModuleCallExp calls a module function.
	ModuleCallExp struct {
		Loc      Loc
		Type     Type
		Module   ModuleIdent
		Name     string
		TypeArgs []BaseType
		Args     []Exp
	}

	// BuiltinCallExp calls a global storage builtin or freeze.
	BuiltinCallExp struct {
		Loc     Loc
		Type    Type
		Func    BuiltinFunc
		TypeArg BaseType // nil for Freeze
		Args    []Exp
	}

	// VectorExp is a vector literal.
	VectorExp struct {
		Loc   Loc
		Type  Type
		Elem  BaseType
		Elems []Exp
	}

	// DereferenceExp reads through a reference.
	DereferenceExp struct {
		Loc  Loc
		Type Type
		Exp  Exp
	}

	// BorrowExp borrows Field of the struct referenced by Exp.
	BorrowExp struct {
		Loc   Loc
		Type  Type
		Mut   bool
		Exp   Exp
		Field string
	}

	// UnaryExp applies a unary operator. Only "!" exists.
	UnaryExp struct {
		Loc  Loc
		Type Type
		Op   string
		Exp  Exp
	}

	// BinopExp applies a binary operator.
	BinopExp struct {
		Loc   Loc
		Type  Type
		Left  Exp
		Op    string
		Right Exp
	}

	// PackExp constructs a struct value.
	PackExp struct {
		Loc    Loc
		Type   Type
		Struct *StructType
		Fields []FieldExp
	}

	// FieldExp is one field initializer of a PackExp.
	FieldExp struct {
		Name string
		Exp  Exp
	}

	// ExpListExp is a tuple of values.
	ExpListExp struct {
		Loc  Loc
		Type Type
		Exps []Exp
	}

	// CastExp converts an integer to another integer type.
	CastExp struct {
		Loc  Loc
		Type Type
		Exp  Exp
		To   Builtin
	}
)

func (e *UnitExp) Pos() Loc        { return e.Loc }
func (e *ValueExp) Pos() Loc       { return e.Loc }
func (e *MoveExp) Pos() Loc        { return e.Loc }
func (e *CopyExp) Pos() Loc        { return e.Loc }
func (e *BorrowLocalExp) Pos() Loc { return e.Loc }
func (e *ConstantExp) Pos() Loc    { return e.Loc }
func (e *ModuleCallExp) Pos() Loc  { return e.Loc }
func (e *BuiltinCallExp) Pos() Loc { return e.Loc }
func (e *VectorExp) Pos() Loc      { return e.Loc }
func (e *DereferenceExp) Pos() Loc { return e.Loc }
func (e *BorrowExp) Pos() Loc      { return e.Loc }
func (e *UnaryExp) Pos() Loc       { return e.Loc }
func (e *BinopExp) Pos() Loc       { return e.Loc }
func (e *PackExp) Pos() Loc        { return e.Loc }
func (e *ExpListExp) Pos() Loc     { return e.Loc }
func (e *CastExp) Pos() Loc        { return e.Loc }

func (e *UnitExp) ExpType() Type        { return &UnitType{} }
func (e *ValueExp) ExpType() Type       { return e.Type }
func (e *MoveExp) ExpType() Type        { return e.Type }
func (e *CopyExp) ExpType() Type        { return e.Type }
func (e *BorrowLocalExp) ExpType() Type { return e.Type }
func (e *ConstantExp) ExpType() Type    { return e.Type }
func (e *ModuleCallExp) ExpType() Type  { return e.Type }
func (e *BuiltinCallExp) ExpType() Type { return e.Type }
func (e *VectorExp) ExpType() Type      { return e.Type }
func (e *DereferenceExp) ExpType() Type { return e.Type }
func (e *BorrowExp) ExpType() Type      { return e.Type }
func (e *UnaryExp) ExpType() Type       { return e.Type }
func (e *BinopExp) ExpType() Type       { return e.Type }
func (e *PackExp) ExpType() Type        { return e.Type }
func (e *ExpListExp) ExpType() Type     { return e.Type }
func (e *CastExp) ExpType() Type        { return e.Type }

func (*UnitExp) expNode()        {}
func (*ValueExp) expNode()       {}
func (*MoveExp) expNode()        {}
func (*CopyExp) expNode()        {}
func (*BorrowLocalExp) expNode() {}
func (*ConstantExp) expNode()    {}
func (*ModuleCallExp) expNode()  {}
func (*BuiltinCallExp) expNode() {}
func (*VectorExp) expNode()      {}
func (*DereferenceExp) expNode() {}
func (*BorrowExp) expNode()      {}
func (*UnaryExp) expNode()       {}
func (*BinopExp) expNode()       {}
func (*PackExp) expNode()        {}
func (*ExpListExp) expNode()     {}
func (*CastExp) expNode()        {}

// IsUnit reports whether e is the unit value.
func IsUnit(e Exp) bool {
	_, ok := e.(*UnitExp)
	return ok
}
