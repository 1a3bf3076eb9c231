package config

import (
	"strconv"
	"strings"
)

// Expression is a parsed, reusable accessor over a Value tree, built from
// a dotted/indexed key such as "items[0].name". An expression is
// immutable once parsed; reads are side-effect-free and Set is the only
// traversal that mutates its target.
type Expression struct {
	steps []step
}

type stepKind int

const (
	stepKey stepKind = iota
	stepIndex
)

type step struct {
	kind  stepKind
	name  string
	index int
}

// ParsePath parses a key into an Expression. The grammar: a run of
// characters other than '.', '[' and ']' is a key step, '.' separates two
// key runs, and "[N]" with decimal digits is an index step that must
// directly follow a key or another index. Callers are expected to
// lower-case the key first; the store-level entry points do so.
func ParsePath(text string) (Expression, error) {
	if text == "" {
		return Expression{}, &ParseError{Fragment: text}
	}

	var steps []step
	rest := text
	for rest != "" {
		switch rest[0] {
		case '.':
			// A dot must separate two key runs: no leading, trailing
			// or doubled dots, and no dot directly before a bracket.
			if len(steps) == 0 {
				return Expression{}, &ParseError{Fragment: text}
			}
			rest = rest[1:]
			if rest == "" || rest[0] == '.' || rest[0] == '[' || rest[0] == ']' {
				return Expression{}, &ParseError{Fragment: "." + rest}
			}
		case '[':
			if len(steps) == 0 {
				return Expression{}, &ParseError{Fragment: text}
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Expression{}, &ParseError{Fragment: rest}
			}
			idx, err := strconv.ParseUint(rest[1:end], 10, 31)
			if err != nil {
				return Expression{}, &ParseError{Fragment: rest[:end+1]}
			}
			steps = append(steps, step{kind: stepIndex, index: int(idx)})
			rest = rest[end+1:]
			if rest != "" && rest[0] != '.' && rest[0] != '[' {
				return Expression{}, &ParseError{Fragment: rest}
			}
		case ']':
			return Expression{}, &ParseError{Fragment: rest}
		default:
			j := strings.IndexAny(rest, ".[]")
			if j < 0 {
				j = len(rest)
			}
			steps = append(steps, step{kind: stepKey, name: rest[:j]})
			rest = rest[j:]
		}
	}

	return Expression{steps: steps}, nil
}

// String returns the canonical text of the expression. Two expressions
// are structurally equal exactly when their canonical texts are equal,
// which is what the store keys its layers by.
func (e Expression) String() string {
	var b strings.Builder
	for i, s := range e.steps {
		switch s.kind {
		case stepKey:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.name)
		case stepIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Get walks the expression against root without mutating it. The walk
// stops at the first missing key, out-of-range index or shape mismatch
// and reports ok=false; the returned value shares children with root.
func (e Expression) Get(root Value) (Value, bool) {
	cur := root
	for _, s := range e.steps {
		switch s.kind {
		case stepKey:
			if cur.kind != KindTable {
				return Value{}, false
			}
			v, ok := cur.tab[s.name]
			if !ok {
				return Value{}, false
			}
			cur = v
		case stepIndex:
			if cur.kind != KindArray || s.index >= len(cur.arr) {
				return Value{}, false
			}
			cur = cur.arr[s.index]
		}
	}
	return cur, true
}

// Set walks the expression against root and assigns v at the final step,
// creating intermediate structure on demand: missing tables are inserted,
// arrays are extended with Nil placeholders up to the requested index,
// and an existing value of the wrong shape is overwritten before
// descending. Set never fails.
func (e Expression) Set(root *Value, v Value) {
	setSteps(e.steps, root, v)
}

func setSteps(steps []step, node *Value, v Value) {
	if len(steps) == 0 {
		*node = v
		return
	}
	s := steps[0]
	switch s.kind {
	case stepKey:
		if node.kind != KindTable || node.tab == nil {
			*node = emptyTable()
		}
		child := node.tab[s.name]
		setSteps(steps[1:], &child, v)
		node.tab[s.name] = child
	case stepIndex:
		if node.kind != KindArray {
			*node = Value{kind: KindArray}
		}
		// Sparse writes pad with Nil, never reorder, never shrink.
		for len(node.arr) <= s.index {
			node.arr = append(node.arr, Value{})
		}
		setSteps(steps[1:], &node.arr[s.index], v)
	}
}
