package notebook

// Expr is a Wolfram Language expression: a symbol, a string, an
// integer, or a normal expression head[args...]. The serializer builds
// the whole notebook as one Expr tree and renders it in one pass, so
// re-serializing the same cell tree is byte-identical by construction.
type Expr struct {
	kind exprKind
	sym  string
	str  string
	num  int64
	args []Expr
}

type exprKind int

const (
	exprSymbol exprKind = iota
	exprString
	exprInteger
	exprNormal
)

// Sym returns a symbol expression, e.g. Sym("Cell").
func Sym(name string) Expr {
	return Expr{kind: exprSymbol, sym: name}
}

// Str returns a string literal expression.
func Str(s string) Expr {
	return Expr{kind: exprString, str: s}
}

// Int returns an integer literal expression.
func Int(n int64) Expr {
	return Expr{kind: exprInteger, num: n}
}

// Normal returns head[args...].
func Normal(head string, args ...Expr) Expr {
	return Expr{kind: exprNormal, sym: head, args: args}
}

// ListOf returns List[args...], rendered with brace syntax {a, b}.
func ListOf(args ...Expr) Expr {
	return Normal("List", args...)
}

// RuleOf returns Rule[lhs, rhs], rendered with arrow syntax lhs->rhs.
func RuleOf(lhs, rhs Expr) Expr {
	return Normal("Rule", lhs, rhs)
}

func (e Expr) isList() bool { return e.kind == exprNormal && e.sym == "List" }
func (e Expr) isRule() bool { return e.kind == exprNormal && e.sym == "Rule" && len(e.args) == 2 }
