package ast

import "github.com/effect-lang/effc/internal/core"

// Constructor functions for every concrete node, used by internal/parser
// to stamp a Pos on each node it builds. ast.node's embedding is
// unexported (see ast.go's "Identity matters here" note on why nodes are
// pointer-identity keys), so a sibling package cannot fill it in with a
// keyed struct literal; these New* functions are the seam.

func NewProgram(pos core.Pos, decls []Stmt) *Program {
	return &Program{node: node{pos}, Decls: decls}
}

func NewFunDecl(pos core.Pos, name string, tparams []string, params []Param, ret Type, effects []string, body Stmt) *FunDecl {
	return &FunDecl{node: node{pos}, Name: name, TParams: tparams, Params: params, Ret: ret, Effects: effects, Body: body}
}

func NewEffectDecl(pos core.Pos, name string, ops []OpSig) *EffectDecl {
	return &EffectDecl{node: node{pos}, Name: name, Ops: ops}
}

func NewInterfaceDecl(pos core.Pos, name string, ops []OpSig) *InterfaceDecl {
	return &InterfaceDecl{node: node{pos}, Name: name, Ops: ops}
}

func NewDataDecl(pos core.Pos, name string, ctors []DataCtor) *DataDecl {
	return &DataDecl{node: node{pos}, Name: name, Constructors: ctors}
}

func NewRecordDecl(pos core.Pos, name string, fields []string) *RecordDecl {
	return &RecordDecl{node: node{pos}, Name: name, Fields: fields}
}

func NewValDecl(pos core.Pos, name string, init Expr) *ValDecl {
	return &ValDecl{node: node{pos}, Name: name, Init: init}
}

func NewVarDecl(pos core.Pos, name string, init Expr, region string) *VarDecl {
	return &VarDecl{node: node{pos}, Name: name, Init: init, Region: region}
}

func NewExprStmt(pos core.Pos, e Expr) *ExprStmt {
	return &ExprStmt{node: node{pos}, Expr: e}
}

func NewBlock(pos core.Pos, stmts []Stmt) *Block {
	return &Block{node: node{pos}, Stmts: stmts}
}

func NewIdent(pos core.Pos, name string) *Ident {
	return &Ident{node: node{pos}, Name: name}
}

func NewIntLit(pos core.Pos, value int64) *IntLit {
	return &IntLit{node: node{pos}, Value: value}
}

func NewStringLit(pos core.Pos, value string) *StringLit {
	return &StringLit{node: node{pos}, Value: value}
}

func NewBoolLit(pos core.Pos, value bool) *BoolLit {
	return &BoolLit{node: node{pos}, Value: value}
}

func NewCall(pos core.Pos, callee Expr, targs []Type, args []Expr) *Call {
	return &Call{node: node{pos}, Callee: callee, TArgs: targs, Args: args}
}

func NewMethodCall(pos core.Pos, receiver Expr, method string, args []Expr) *MethodCall {
	return &MethodCall{node: node{pos}, Receiver: receiver, Method: method, Args: args}
}

func NewIf(pos core.Pos, cond Expr, then, els Stmt) *If {
	return &If{node: node{pos}, Cond: cond, Then: then, Else: els}
}

func NewWhile(pos core.Pos, cond Expr, body Stmt) *While {
	return &While{node: node{pos}, Cond: cond, Body: body}
}

func NewMatch(pos core.Pos, scrutinee Expr, clauses []MatchClause) *Match {
	return &Match{node: node{pos}, Scrutinee: scrutinee, Clauses: clauses}
}

func NewTryHandle(pos core.Pos, prog Stmt, effect string, handlers []HandlerImpl) *TryHandle {
	return &TryHandle{node: node{pos}, Prog: prog, Effect: effect, Handlers: handlers}
}

func NewRegionExpr(pos core.Pos, name string, body Stmt) *RegionExpr {
	return &RegionExpr{node: node{pos}, Name: name, Body: body}
}

func NewAssign(pos core.Pos, name string, value Expr) *Assign {
	return &Assign{node: node{pos}, Name: name, Value: value}
}

func NewHoleExpr(pos core.Pos) *HoleExpr {
	return &HoleExpr{node: node{pos}}
}

func NewWildcardPattern(pos core.Pos) *WildcardPattern {
	return &WildcardPattern{node: node{pos}}
}

func NewIdentPattern(pos core.Pos, name string) *IdentPattern {
	return &IdentPattern{node: node{pos}, Name: name}
}

func NewCtorPattern(pos core.Pos, ctor string, fields []Pattern) *CtorPattern {
	return &CtorPattern{node: node{pos}, Constructor: ctor, Fields: fields}
}

func NewNamedType(pos core.Pos, name string, args []Type) *NamedType {
	return &NamedType{node: node{pos}, Name: name, Args: args}
}
