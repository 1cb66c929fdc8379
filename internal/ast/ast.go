// Package ast is the minimal surface tree the Namer/Typer annotate and
// the transformer (internal/transformer) consumes (SPEC_FULL.md §10
// supplement #1). It is restricted to the constructs the core IR and its
// lowering rules need to exercise: function/effect/handler/match/while/
// val/var/region declarations — not a full-language frontend.
//
// Grounded on the teacher's internal/ast/ast_core.go and
// ast_expressions.go: a closed Node hierarchy split into
// Statement/Expression via private marker methods, each node carrying a
// Pos for diagnostics. Identity matters here more than in the teacher's
// tree: two structurally-equal surface nodes (e.g. two literal `0`s) must
// remain distinguishable annotation keys (spec §4.1 "Key identity"), so
// every node is used exclusively by pointer, never by value.
package ast

import "github.com/effect-lang/effc/internal/core"

// Node is the common base of every surface tree node — every Node is a
// potential annotations-store key (spec §4.1).
type Node interface {
	isNode()
	Position() core.Pos
}

// Stmt is a surface statement.
type Stmt interface {
	Node
	isStmt()
}

// Expr is a surface expression.
type Expr interface {
	Node
	isExpr()
}

// Pattern is a surface match pattern.
type Pattern interface {
	Node
	isPattern()
}

// Type is a surface type annotation (left unelaborated; the Typer writes
// the resolved internal/types.ValueType/BlockType into the annotations
// store under the same node identity, per spec §4.4).
type Type interface {
	Node
	isType()
}

type node struct{ Pos core.Pos }

func (n node) Position() core.Pos { return n.Pos }
func (node) isNode()               {}

// --- Declarations / statements ------------------------------------------

// Program is the root of a parsed file.
type Program struct {
	node
	Decls []Stmt
}

func (*Program) isStmt() {}

// FunDecl declares a function: `def name(params): ret / effects = body`.
type FunDecl struct {
	node
	Name    string
	TParams []string
	Params  []Param
	Ret     Type
	Effects []string
	Body    Stmt
}

func (*FunDecl) isStmt() {}

// Param is a single function/handler parameter.
type Param struct {
	Name  string
	Type  Type
	Block bool // true for a block-typed (capability) parameter
}

// EffectDecl declares a user effect: `effect Name[T...] { op... }`.
type EffectDecl struct {
	node
	Name string
	Ops  []OpSig
}

func (*EffectDecl) isStmt() {}

// OpSig is one operation signature of an EffectDecl/InterfaceDecl.
type OpSig struct {
	Name   string
	Params []Param
	Ret    Type
}

// InterfaceDecl declares an interface: operations with no implicit
// performed effect (spec §9 open question #1).
type InterfaceDecl struct {
	node
	Name string
	Ops  []OpSig
}

func (*InterfaceDecl) isStmt() {}

// DataDecl declares a sum type.
type DataDecl struct {
	node
	Name         string
	Constructors []DataCtor
}

func (*DataDecl) isStmt() {}

// DataCtor is one constructor of a DataDecl.
type DataCtor struct {
	Name   string
	Fields []string
}

// RecordDecl declares a single-constructor record (the constructor
// duality case, spec §4.2).
type RecordDecl struct {
	node
	Name   string
	Fields []string
}

func (*RecordDecl) isStmt() {}

// ValDecl is an immutable binding: `val x = e`.
type ValDecl struct {
	node
	Name string
	Init Expr
}

func (*ValDecl) isStmt() {}

// VarDecl is a mutable binding backed by a runtime state cell:
// `var x = e` (optionally `in region`).
type VarDecl struct {
	node
	Name   string
	Init   Expr
	Region string // "" for the enclosing default region
}

func (*VarDecl) isStmt() {}

// ExprStmt lifts an expression into statement position.
type ExprStmt struct {
	node
	Expr Expr
}

func (*ExprStmt) isStmt() {}

// Block is a sequence of statements (the body of a function/handler/
// loop), terminated implicitly by its last statement's value.
type Block struct {
	node
	Stmts []Stmt
}

func (*Block) isStmt() {}

// --- Expressions ---------------------------------------------------------

// Ident references a value or block by surface name; the Namer resolves
// Symbol onto this node (spec §4.4).
type Ident struct {
	node
	Name string
}

func (*Ident) isExpr() {}

// IntLit/StringLit/BoolLit are literal constants.
type IntLit struct {
	node
	Value int64
}

func (*IntLit) isExpr() {}

type StringLit struct {
	node
	Value string
}

func (*StringLit) isExpr() {}

type BoolLit struct {
	node
	Value bool
}

func (*BoolLit) isExpr() {}

// Call is a function/method/constructor application.
type Call struct {
	node
	Callee Expr
	TArgs  []Type
	Args   []Expr
}

func (*Call) isExpr() {}

// MethodCall is `receiver.method(args)` — a call through a capability or
// module value (spec §4.5: "Method call on a receiver").
type MethodCall struct {
	node
	Receiver Expr
	Method   string
	Args     []Expr
}

func (*MethodCall) isExpr() {}

// If is a surface conditional expression.
type If struct {
	node
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) isExpr() {}

// While is a surface loop (spec §4.5 desugars this to a recursive block).
type While struct {
	node
	Cond Expr
	Body Stmt
}

func (*While) isExpr() {}

// MatchClause is one `case pattern => body` arm of a Match.
type MatchClause struct {
	Pattern Pattern
	Body    Stmt
}

// Match is a surface pattern match.
type Match struct {
	node
	Scrutinee Expr
	Clauses   []MatchClause
}

func (*Match) isExpr() {}

// HandlerImpl is one `def opName(params) = body` clause inside a
// TryHandle's `with` block.
type HandlerImpl struct {
	Operation string
	Params    []Param
	Body      Stmt
}

// TryHandle installs handlers around prog (spec §4.5's TryHandle).
type TryHandle struct {
	node
	Prog     Stmt
	Effect   string
	Handlers []HandlerImpl
}

func (*TryHandle) isExpr() {}

// RegionExpr introduces a fresh lexical region scoped to Body.
type RegionExpr struct {
	node
	Name string
	Body Stmt
}

func (*RegionExpr) isExpr() {}

// Assign is `id :- e`, a mutable var update.
type Assign struct {
	node
	Name  string
	Value Expr
}

func (*Assign) isExpr() {}

// HoleExpr marks intentionally unreachable/unimplemented code.
type HoleExpr struct{ node }

func (*HoleExpr) isExpr() {}

// --- Patterns -------------------------------------------------------------

// WildcardPattern matches anything and binds nothing (`_`).
type WildcardPattern struct{ node }

func (*WildcardPattern) isPattern() {}

// IdentPattern binds the scrutinee to a fresh name.
type IdentPattern struct {
	node
	Name string
}

func (*IdentPattern) isPattern() {}

// CtorPattern matches a data constructor tag, recursing into Fields.
type CtorPattern struct {
	node
	Constructor string
	Fields      []Pattern
}

func (*CtorPattern) isPattern() {}

// --- Types ----------------------------------------------------------------

// NamedType is a type reference by surface name, possibly applied to
// type arguments.
type NamedType struct {
	node
	Name string
	Args []Type
}

func (*NamedType) isType() {}
