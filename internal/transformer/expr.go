package transformer

import (
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/symtab"
)

// bind introduces a fresh value temporary referencing the result of s and
// pushes s into the binding buffer (spec §4.5's generic "bind(...)"
// operation, used by If/Match/TryHandle/Region/ordinary-call lowering).
func (tr *Transformer) bind(s core.Stmt) core.Pure {
	name := tr.freshName("t")
	tr.bindStmt(name.String(), s)
	return &core.ValueVar{Name: name}
}

// transformExpr lowers e to a core expression, which may be Pure or
// side-effecting (DirectApp/Run) depending on e's shape.
func (tr *Transformer) transformExpr(e ast.Expr) core.Expr {
	switch ex := e.(type) {
	case *ast.IntLit:
		return &core.Literal{Value: ex.Value}
	case *ast.StringLit:
		return &core.Literal{Value: ex.Value}
	case *ast.BoolLit:
		return &core.Literal{Value: ex.Value}
	case *ast.Ident:
		return tr.transformIdent(ex)
	case *ast.Call:
		return tr.transformCall(ex)
	case *ast.MethodCall:
		return tr.transformMethodCall(ex)
	case *ast.If:
		return tr.bind(tr.transformIfStmt(ex))
	case *ast.While:
		return tr.transformWhile(ex)
	case *ast.Match:
		return tr.bind(tr.transformMatchStmt(ex))
	case *ast.TryHandle:
		return tr.bind(tr.transformTryStmt(ex))
	case *ast.RegionExpr:
		return tr.bind(tr.transformRegionStmt(ex))
	case *ast.Assign:
		return tr.transformAssign(ex)
	case *ast.HoleExpr:
		return tr.bind(&core.Hole{})
	default:
		return unit()
	}
}

// transformExprValue lowers e and, if the result isn't already Pure,
// binds it through a Let so callers that require a Pure operand (call
// arguments, conditions, scrutinees) always get one.
func (tr *Transformer) transformExprValue(e ast.Expr) core.Pure {
	ce := tr.transformExpr(e)
	if p, ok := ce.(core.Pure); ok {
		return p
	}
	name := tr.freshName("t")
	tr.bindExpr(name.String(), ce)
	return &core.ValueVar{Name: name}
}

// transformExprStmt lowers e in statement position: if rest is nil, e's
// value is the tail value of the enclosing block (Return); otherwise e is
// evaluated for effect and its value discarded before continuing to rest.
func (tr *Transformer) transformExprStmt(e ast.Expr, rest core.Stmt) core.Stmt {
	val := tr.transformExprValue(e)
	if rest == nil {
		return &core.Return{Value: val}
	}
	return &core.Val{Name: names.New("_"), Binding: &core.Return{Value: val}, Body: rest}
}

// transformFunDef implements the FunDef statement rule: Def(sym,
// BlockLit(params, transform(body)), rest).
func (tr *Transformer) transformFunDef(d *ast.FunDecl, rest core.Stmt) core.Stmt {
	sym, _ := tr.symbolOf(ast.Node(d))
	name := symbolName(sym, d.Name)
	params := make([]names.Name, len(d.Params))
	for i, p := range d.Params {
		params[i] = names.New(p.Name)
	}
	block := &core.BlockLit{Params: params, Body: tr.TransformBody(d.Body)}
	return &core.Def{Name: name, Block: block, Body: tr.continuation(rest)}
}

// transformIdent implements the surface-variable expression rule: a
// value symbol becomes ValueVar; a mutable var binder becomes a
// DirectApp reading its state cell; a block symbol in expression
// position is boxed.
func (tr *Transformer) transformIdent(ex *ast.Ident) core.Expr {
	sym, ok := tr.symbolOf(ast.Node(ex))
	if !ok {
		return &core.ValueVar{Name: names.New(ex.Name)}
	}
	switch s := sym.(type) {
	case *symtab.VarBinder:
		return &core.DirectApp{
			Block: &core.Member{Receiver: &core.BlockVar{Name: s.Name()}, Op: names.New("state.get")},
		}
	case symtab.BlockSymbol:
		return &core.Box{Block: &core.BlockVar{Name: s.Name()}}
	default:
		return &core.ValueVar{Name: sym.Name()}
	}
}

func (tr *Transformer) calleeSymbol(e ast.Expr) (symtab.Symbol, bool) {
	if id, ok := e.(*ast.Ident); ok {
		return tr.symbolOf(ast.Node(id))
	}
	return nil, false
}

func calleeFallbackName(e ast.Expr) names.Name {
	if id, ok := e.(*ast.Ident); ok {
		return names.New(id.Name)
	}
	return names.New("$callee")
}

func (tr *Transformer) allArgsPureOrIO(args []ast.Expr) bool {
	for _, a := range args {
		if !tr.pureOrIO(a) {
			return false
		}
	}
	return true
}

// transformCall dispatches call lowering by the callee symbol (spec
// §4.5's Call rules).
func (tr *Transformer) transformCall(ex *ast.Call) core.Expr {
	calleeSym, _ := tr.calleeSymbol(ex.Callee)

	targs := make([]string, len(ex.TArgs))
	for i, t := range ex.TArgs {
		if nt, ok := t.(*ast.NamedType); ok {
			targs[i] = nt.Name
		}
	}

	switch sym := calleeSym.(type) {
	case *symtab.ConstructorBlockSym:
		// Data constructor -> PureApp; block args forbidden here.
		args := make([]core.Pure, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = tr.transformExprValue(a)
		}
		return &core.PureApp{Callee: sym.Name(), TArgs: targs, Args: args}

	case *symtab.Function:
		exprArgs := make([]core.Expr, len(ex.Args))
		for i, a := range ex.Args {
			exprArgs[i] = tr.transformExprValue(a)
		}
		calleeBlock := &core.BlockVar{Name: sym.Name()}
		if tr.pureOrIOSymbol(sym) && tr.allArgsPureOrIO(ex.Args) {
			return &core.Run{Stmt: &core.App{Block: calleeBlock, TArgs: targs, Args: exprArgs}}
		}
		return tr.bind(&core.App{Block: calleeBlock, TArgs: targs, Args: exprArgs})

	default:
		exprArgs := make([]core.Expr, len(ex.Args))
		for i, a := range ex.Args {
			exprArgs[i] = tr.transformExprValue(a)
		}
		if calleeSym != nil {
			if _, ok := calleeSym.(symtab.ValueSymbol); ok {
				// Call through a boxed closure held in a value: unbox, then bind.
				unboxed := &core.Unbox{Value: &core.ValueVar{Name: calleeSym.Name()}}
				return tr.bind(&core.App{Block: unboxed, TArgs: targs, Args: exprArgs})
			}
		}
		name := calleeFallbackName(ex.Callee)
		if calleeSym != nil {
			name = calleeSym.Name()
		}
		return tr.bind(&core.App{Block: &core.BlockVar{Name: name}, TArgs: targs, Args: exprArgs})
	}
}

// transformReceiverBlock lowers a method call's receiver into a Block.
func (tr *Transformer) transformReceiverBlock(e ast.Expr) core.Block {
	if id, ok := e.(*ast.Ident); ok {
		if sym, ok2 := tr.symbolOf(ast.Node(id)); ok2 {
			return &core.BlockVar{Name: sym.Name()}
		}
		return &core.BlockVar{Name: names.New(id.Name)}
	}
	return &core.Unbox{Value: tr.transformExprValue(e)}
}

// transformMethodCall implements "Method call on a receiver:
// Member(receiver, method); apply DirectApp for the built-in get/put on
// state cells, else bind(App(...))."
func (tr *Transformer) transformMethodCall(ex *ast.MethodCall) core.Expr {
	member := &core.Member{Receiver: tr.transformReceiverBlock(ex.Receiver), Op: names.New(ex.Method)}
	args := make([]core.Expr, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = tr.transformExprValue(a)
	}
	if ex.Method == "get" || ex.Method == "put" {
		return &core.DirectApp{Block: member, Args: args}
	}
	return tr.bind(&core.App{Block: member, Args: args})
}

// transformIfStmt builds the core If for an ast.If, used directly by
// statement-position dispatch and bound via tr.bind for expression
// position.
func (tr *Transformer) transformIfStmt(ex *ast.If) core.Stmt {
	cond := tr.transformExprValue(ex.Cond)
	thenStmt := tr.TransformBody(ex.Then)
	elseStmt := core.Stmt(&core.Return{Value: unit()})
	if ex.Else != nil {
		elseStmt = tr.TransformBody(ex.Else)
	}
	return &core.If{Cond: cond, Then: thenStmt, Else: elseStmt}
}

// transformWhile desugars a while loop into a fresh recursive block
// (spec §4.5): synthesize `loop`, define it as BlockLit([], if cond then
// {val _ = body; loop()} else Return(())), register it with bind, then
// bind(loop()). A statically pure condition is suspicious enough to
// warn about rather than reject.
func (tr *Transformer) transformWhile(ex *ast.While) core.Expr {
	loopName := tr.freshName("loop")

	m := tr.mark()
	cond := tr.transformExprValue(ex.Cond)
	bodyStmt := tr.TransformBody(ex.Body)
	thenStmt := &core.Val{
		Name:    names.New("_"),
		Binding: bodyStmt,
		Body:    &core.App{Block: &core.BlockVar{Name: loopName}},
	}
	ifStmt := tr.reify(m, &core.If{Cond: cond, Then: thenStmt, Else: &core.Return{Value: unit()}})

	if tr.isPure(ex.Cond) {
		tr.Warnings = append(tr.Warnings, "while-loop condition "+loopName.String()+" has no effects")
	}

	tr.bindBlock(loopName.String(), &core.BlockLit{Body: ifStmt})
	return tr.bind(&core.App{Block: &core.BlockVar{Name: loopName}})
}

// transformTryStmt implements TryHandle lowering (spec §4.5): one
// BlockParam per handler capability, handler clauses ordered by the
// effect's own operation declaration order rather than surface order.
func (tr *Transformer) transformTryStmt(ex *ast.TryHandle) core.Stmt {
	capName := tr.freshName("cap")
	progBlock := &core.BlockLit{Params: []names.Name{capName}, Body: tr.TransformBody(ex.Prog)}

	clauses := make([]core.HandlerClause, 0, len(ex.Handlers))
	for _, h := range tr.orderedHandlers(ex) {
		params := make([]names.Name, len(h.Params))
		for i, p := range h.Params {
			params[i] = names.New(p.Name)
		}
		clauses = append(clauses, core.HandlerClause{
			Operation: names.New(h.Operation),
			Resume:    names.New("resume"),
			Body:      &core.BlockLit{Params: params, Body: tr.TransformBody(h.Body)},
		})
	}
	return &core.Try{Body: progBlock, Handlers: clauses}
}

// orderedHandlers reorders ex.Handlers to match the declared effect's
// operation order, falling back to surface order if the effect symbol
// can't be resolved or the handler set doesn't cover every operation.
func (tr *Transformer) orderedHandlers(ex *ast.TryHandle) []ast.HandlerImpl {
	effSym, ok := tr.Module.Typ(ex.Effect)
	if !ok {
		return ex.Handlers
	}
	ue, ok := effSym.(*symtab.UserEffectSym)
	if !ok {
		return ex.Handlers
	}
	ordered := make([]ast.HandlerImpl, 0, len(ex.Handlers))
	for _, op := range ue.Ops {
		opName := op.Name().Local()
		for _, h := range ex.Handlers {
			if h.Operation == opName {
				ordered = append(ordered, h)
				break
			}
		}
	}
	if len(ordered) != len(ex.Handlers) {
		return ex.Handlers
	}
	return ordered
}

// transformRegionStmt implements "Region(name, body) -> Region(BlockLit([cap],
// transform(body))) where cap is the region's block parameter".
func (tr *Transformer) transformRegionStmt(ex *ast.RegionExpr) core.Stmt {
	capName := names.New(ex.Name)
	return &core.Region{Body: &core.BlockLit{Params: []names.Name{capName}, Body: tr.TransformBody(ex.Body)}}
}

// transformAssign implements "Assign(id, e) -> DirectApp(Member(BlockVar(id),
// state.put), [], [e])".
func (tr *Transformer) transformAssign(ex *ast.Assign) core.Expr {
	val := tr.transformExprValue(ex.Value)
	return &core.DirectApp{
		Block: &core.Member{Receiver: &core.BlockVar{Name: names.New(ex.Name)}, Op: names.New("state.put")},
		Args:  []core.Expr{val},
	}
}
