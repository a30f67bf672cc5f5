package ast

import "math/big"

// Expr is the interface all expression nodes implement. Nodes are fully
// self-contained and immutable once built.
type Expr interface {
	Kind() string
	exprNode()
}

// Stmt is the interface all statement nodes implement.
type Stmt interface {
	Kind() string
	stmtNode()
}

// ScriptHandler is a parsed closure body: parameter names plus statements.
// It is created when a function/arrow/callback source is parsed and consumed
// when the evaluator builds a runtime function bound to a captured environment.
type ScriptHandler struct {
	Params []string
	Stmts  []Stmt
}

// BinaryOp identifies a binary operator. Add is not listed here: chains of +
// collapse into the n-ary AddExpr node instead.
type BinaryOp int

const (
	OpEqStrict BinaryOp = iota // ===
	OpNeqStrict
	OpEq // ==
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpIn
	OpInstanceOf
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShl  // <<
	OpShr  // >>
	OpUShr // >>>
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpAnd     // && (short-circuit)
	OpOr      // || (short-circuit)
	OpNullish // ?? (short-circuit)
)

func (op BinaryOp) String() string {
	switch op {
	case OpEqStrict:
		return "==="
	case OpNeqStrict:
		return "!=="
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpIn:
		return "in"
	case OpInstanceOf:
		return "instanceof"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpBitAnd:
		return "&"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpUShr:
		return ">>>"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpNullish:
		return "??"
	}
	return "?"
}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot
	OpBitNot
	OpTypeOf
	OpVoid
	OpDelete
	OpAwait
	OpYield
	OpYieldStar
)

// ---------- Literals ----------

type StringLit struct{ Value string }

type BoolLit struct{ Value bool }

type NullLit struct{}

type UndefinedLit struct{}

// NumberLit is an integer-representable numeric literal.
type NumberLit struct{ Value int64 }

// FloatLit is a numeric literal that needs floating representation,
// decided at parse time.
type FloatLit struct{ Value float64 }

type BigIntLit struct{ Value *big.Int }

type RegexLit struct {
	Pattern string
	Flags   string
}

// ---------- Composite expressions ----------

type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// AddExpr is the collapsed form of a + chain: all operands of consecutive +
// operators in one node, so the string-concat-or-numeric-add rule applies
// uniformly across the whole chain.
type AddExpr struct{ Operands []Expr }

type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

type CommaExpr struct{ Exprs []Expr }

type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

type ArrayLit struct{ Elems []Expr } // elements may be SpreadExpr

type ObjectLit struct{ Props []ObjectProp }

type ObjectProp struct {
	Key      string
	Computed Expr // non-nil for [expr]: value keys
	Value    Expr
	Spread   bool // {...x}
}

type SpreadExpr struct{ Operand Expr }

// VarExpr references an identifier in the environment.
type VarExpr struct{ Name string }

// MemberExpr reads a property: target.prop or target[index].
type MemberExpr struct {
	Target Expr
	Prop   string
	Index  Expr // non-nil for computed access
}

// CallExpr calls an arbitrary callee expression.
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

// FunctionCall calls a named binding from the environment.
type FunctionCall struct {
	Name string
	Args []Expr
}

// MemberCall calls a method on a target value. Instance-own properties shadow
// built-in method dispatch at evaluation time.
type MemberCall struct {
	Target Expr
	Method string
	Args   []Expr
}

// FuncLit wraps a parsed function/arrow source.
type FuncLit struct {
	Handler *ScriptHandler
	Arrow   bool
	Async   bool
}

// NewCall is the generic `new Name(...)` form for user constructors; the
// recognized builtin constructors below take precedence over it.
type NewCall struct {
	Name string
	Args []Expr
}

// ---------- Recognized builtin call shapes ----------
//
// Each of these is produced by one parser recognizer and consumed by one
// evaluator arm. Argument sub-expressions are already parsed.

type MathCall struct {
	Method string
	Args   []Expr
}

type MathConst struct{ Name string } // Math.PI, Math.E, ...

type DateNow struct{}

type NewDate struct{ Args []Expr }

type NewRegExp struct{ Args []Expr }

type NewMap struct{ Args []Expr }

type NewSet struct{ Args []Expr }

type NewPromise struct{ Executor Expr }

type NewURL struct{ Args []Expr }

type NewURLSearchParams struct{ Args []Expr }

type NewFormData struct{}

type NewArrayBuffer struct{ Size Expr }

type NewTypedArray struct {
	Name string // Uint8Array, Int32Array, Float64Array, ...
	Args []Expr
}

type NewBlob struct{ Args []Expr }

type NewIntlNumberFormat struct{ Args []Expr }

type NewIntlDateTimeFormat struct{ Args []Expr }

type NewIntlCollator struct{ Args []Expr }

type JSONParse struct{ Arg Expr }

type JSONStringify struct{ Args []Expr }

type ObjectKeys struct{ Arg Expr }

type ObjectValues struct{ Arg Expr }

type ObjectEntries struct{ Arg Expr }

type ObjectAssign struct{ Args []Expr }

type ArrayIsArray struct{ Arg Expr }

type ArrayFrom struct{ Args []Expr }

type ArrayOf struct{ Args []Expr }

type PromiseResolve struct{ Arg Expr }

type PromiseReject struct{ Arg Expr }

type PromiseAll struct{ Arg Expr }

type PromiseRace struct{ Arg Expr }

type SetTimeout struct {
	Callback Expr
	Delay    Expr
	Args     []Expr
}

type SetInterval struct {
	Callback Expr
	Delay    Expr
	Args     []Expr
}

type ClearTimeout struct{ ID Expr }

type ClearInterval struct{ ID Expr }

type QueueMicrotask struct{ Callback Expr }

type RequestAnimationFrame struct{ Callback Expr }

type ConsoleCall struct {
	Level string // "log", "warn", "error", "info"
	Args  []Expr
}

type ParseIntCall struct{ Args []Expr }

type ParseFloatCall struct{ Arg Expr }

type IsNaNCall struct{ Arg Expr }

type IsFiniteCall struct{ Arg Expr }

// NumberCtor is Number(x): its coercion intentionally differs from unary +
// at documented edge cases.
type NumberCtor struct{ Arg Expr }

type StringCtor struct{ Arg Expr }

type BooleanCtor struct{ Arg Expr }

type SymbolCall struct{ Arg Expr }

type EncodeURIComponent struct{ Arg Expr }

type DecodeURIComponent struct{ Arg Expr }

type EncodeURI struct{ Arg Expr }

type DecodeURI struct{ Arg Expr }

type BtoaCall struct{ Arg Expr }

type AtobCall struct{ Arg Expr }

// StorageCall covers localStorage/sessionStorage member calls and the
// .length accessor.
type StorageCall struct {
	Area   string // "localStorage" or "sessionStorage"
	Method string // "getItem", "setItem", "removeItem", "clear", "key", "length"
	Args   []Expr
}

// DocumentCall covers document.* accessors (getElementById and friends).
type DocumentCall struct {
	Method string
	Args   []Expr
}

// ---------- Statements (handler bodies) ----------

type DeclStmt struct {
	Keyword string // "var", "let", "const"
	Name    string
	Init    Expr // may be nil
}

type AssignStmt struct {
	Target Expr   // VarExpr or MemberExpr
	Op     string // "=", "+=", "-=", "*=", "/=", "%="
	Value  Expr
}

type ExprStmt struct{ X Expr }

type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // may be nil
}

type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

type ForStmt struct {
	Init Stmt // may be nil
	Cond Expr // may be nil
	Post Stmt // may be nil
	Body []Stmt
}

type ReturnStmt struct{ Value Expr } // Value may be nil

type BlockStmt struct{ Stmts []Stmt }
