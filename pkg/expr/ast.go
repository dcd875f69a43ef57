package expr

import "github.com/codeready-toolchain/governed-agent/internal/value"

// node is the interface implemented by every AST node. eval never returns
// an error to its caller; any internal failure resolves to value.Undefined
// so that evaluation "never throws" per the language's runtime semantics.
type node interface {
	eval(facts value.Facts) value.Value
}

type orNode struct{ left, right node }

func (n *orNode) eval(facts value.Facts) value.Value {
	if n.left.eval(facts).Truthy() {
		return value.Bool(true)
	}
	return value.Bool(n.right.eval(facts).Truthy())
}

type andNode struct{ left, right node }

func (n *andNode) eval(facts value.Facts) value.Value {
	if !n.left.eval(facts).Truthy() {
		return value.Bool(false)
	}
	return value.Bool(n.right.eval(facts).Truthy())
}

type notNode struct{ operand node }

func (n *notNode) eval(facts value.Facts) value.Value {
	return value.Bool(!n.operand.eval(facts).Truthy())
}

type cmpOp int

const (
	cmpGT cmpOp = iota
	cmpGE
	cmpLT
	cmpLE
	cmpEqStrict
	cmpEq
	cmpNeStrict
	cmpNe
)

type cmpNode struct {
	op          cmpOp
	left, right node
}

func (n *cmpNode) eval(facts value.Facts) value.Value {
	l := n.left.eval(facts)
	r := n.right.eval(facts)
	return value.Bool(compare(n.op, l, r))
}

type literalNode struct{ v value.Value }

func (n *literalNode) eval(value.Facts) value.Value { return n.v }

type identNode struct{ path string }

func (n *identNode) eval(facts value.Facts) value.Value { return facts.Get(n.path) }
