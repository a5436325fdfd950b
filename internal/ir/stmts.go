package ir

// Block is an ordered sequence of statements.
type Block []Statement

// --- Statements ---

type (
	// Statement is the interface for all statement nodes.
	Statement interface {
		Pos() Loc
		stmtNode()
	}

	// Command is a statement without nested blocks.
	Command interface {
		Statement
		commandNode()
	}

	// IfElse is a two-way conditional. Else may be empty.
	IfElse struct {
		Loc  Loc
		Cond Exp
		If   Block
		Else Block
	}

	// While runs Pre and tests Cond before every iteration of Body.
	// Pre is non-empty when computing the condition has side effects.
	While struct {
		Loc  Loc
		Pre  Block
		Cond Exp
		Body Block
	}

	// Loop is an unconditional loop. HasBreak is informational.
	Loop struct {
		Loc      Loc
		HasBreak bool
		Body     Block
	}
)

// --- Commands ---

type (
	// Assign binds the value of Exp to LValues.
	Assign struct {
		Loc     Loc
		LValues []LValue
		Exp     Exp
	}

	// Mutate writes Exp through the reference Target.
	Mutate struct {
		Loc    Loc
		Target Exp
		Exp    Exp
	}

	// Abort aborts execution with Code.
	Abort struct {
		Loc  Loc
		Code Exp
	}

	// Return returns Exp, which is UnitExp for functions without results.
	Return struct {
		Loc Loc
		Exp Exp
	}

	Break struct {
		Loc Loc
	}

	Continue struct {
		Loc Loc
	}

	// IgnoreAndPop evaluates Exp for its effects only.
	IgnoreAndPop struct {
		Loc    Loc
		PopNum int
		Exp    Exp
	}

	// Jump is a raw control transfer left over from lowering.
	Jump struct {
		Loc    Loc
		Target int
		Cond   Exp // nil for unconditional jumps
	}
)

func (s *IfElse) Pos() Loc       { return s.Loc }
func (s *While) Pos() Loc        { return s.Loc }
func (s *Loop) Pos() Loc         { return s.Loc }
func (s *Assign) Pos() Loc       { return s.Loc }
func (s *Mutate) Pos() Loc       { return s.Loc }
func (s *Abort) Pos() Loc        { return s.Loc }
func (s *Return) Pos() Loc       { return s.Loc }
func (s *Break) Pos() Loc        { return s.Loc }
func (s *Continue) Pos() Loc     { return s.Loc }
func (s *IgnoreAndPop) Pos() Loc { return s.Loc }
func (s *Jump) Pos() Loc         { return s.Loc }

func (*IfElse) stmtNode()       {}
func (*While) stmtNode()        {}
func (*Loop) stmtNode()         {}
func (*Assign) stmtNode()       {}
func (*Mutate) stmtNode()       {}
func (*Abort) stmtNode()        {}
func (*Return) stmtNode()       {}
func (*Break) stmtNode()        {}
func (*Continue) stmtNode()     {}
func (*IgnoreAndPop) stmtNode() {}
func (*Jump) stmtNode()         {}

func (*Assign) commandNode()       {}
func (*Mutate) commandNode()       {}
func (*Abort) commandNode()        {}
func (*Return) commandNode()       {}
func (*Break) commandNode()        {}
func (*Continue) commandNode()     {}
func (*IgnoreAndPop) commandNode() {}
func (*Jump) commandNode()         {}

// --- L-values ---

type (
	// LValue is the target of an Assign.
	LValue interface {
		Pos() Loc
		lvalueNode()
	}

	// IgnoreLValue discards the value.
	IgnoreLValue struct {
		Loc Loc
	}

	// VarLValue binds the value to a local.
	VarLValue struct {
		Loc  Loc
		Name string
		Type *SingleType
	}

	// UnpackLValue destructures a struct value into its fields.
	UnpackLValue struct {
		Loc    Loc
		Struct *StructType
		Fields []FieldLValue
	}

	// FieldLValue is one destructured field.
	FieldLValue struct {
		Name   string
		LValue LValue
	}
)

func (l *IgnoreLValue) Pos() Loc { return l.Loc }
func (l *VarLValue) Pos() Loc    { return l.Loc }
func (l *UnpackLValue) Pos() Loc { return l.Loc }

func (*IgnoreLValue) lvalueNode() {}
func (*VarLValue) lvalueNode()    {}
func (*UnpackLValue) lvalueNode() {}
