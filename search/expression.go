// Package search implements the tagged-variant expression tree and
// evaluation engine for nanovc-go queries (spec §4.9): a small set of
// expression kinds dispatched on a Kind tag rather than a class
// hierarchy, per spec §9's explicit design note.
package search

import (
	"fmt"
	"reflect"

	"github.com/nanovc/nanovc-go/nvcerr"
	"github.com/nanovc/nanovc-go/repo"
)

// Kind tags the variant an Expression holds.
type Kind int

const (
	KindConstant Kind = iota
	KindParameter
	KindEqual
	KindAllRepoCommits
	KindTip
)

// String names k the way Evaluate reports it in a QueryError.
func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindParameter:
		return "Parameter"
	case KindEqual:
		return "Equal"
	case KindAllRepoCommits:
		return "AllRepoCommits"
	case KindTip:
		return "Tip"
	default:
		return "Unknown"
	}
}

// Expression is a node in a search query's expression tree. Exactly
// one of its fields is meaningful, selected by Kind — a tagged union
// rather than a type hierarchy (spec §9).
type Expression struct {
	Kind Kind

	// ConstantValue and ConstantType back KindConstant.
	ConstantValue any
	ConstantType  reflect.Type

	// ParameterName and ParameterType back KindParameter.
	ParameterName string
	ParameterType reflect.Type

	// Left and Right back KindEqual.
	Left, Right *Expression

	// Inner backs KindTip, whose operand must evaluate to a list.
	Inner *Expression
}

// Constant builds a KindConstant expression that always evaluates to
// value, typed as t.
func Constant(value any, t reflect.Type) *Expression {
	return &Expression{Kind: KindConstant, ConstantValue: value, ConstantType: t}
}

// Parameter builds a KindParameter expression that looks up name in
// the evaluation's parameter map, typed as t.
func Parameter(name string, t reflect.Type) *Expression {
	return &Expression{Kind: KindParameter, ParameterName: name, ParameterType: t}
}

// Equal builds a KindEqual expression comparing left and right for
// structural equality.
func Equal(left, right *Expression) *Expression {
	return &Expression{Kind: KindEqual, Left: left, Right: right}
}

// AllRepoCommits builds a KindAllRepoCommits expression that evaluates
// to every commit in the repo, in creation order.
func AllRepoCommits() *Expression {
	return &Expression{Kind: KindAllRepoCommits}
}

// Tip builds a KindTip expression that evaluates to the last element
// of inner's list result, or nil if inner is empty or not a list.
func Tip(inner *Expression) *Expression {
	return &Expression{Kind: KindTip, Inner: inner}
}

// Params is the parameter map a search query is evaluated against.
type Params map[string]any

// Evaluate dispatches on e.Kind and returns the expression's value
// against r and params. A single-commit result is returned as
// *repo.Commit; a list result as []*repo.Commit; a scalar result (e.g.
// from EqualExpression) as bool. Parameter type mismatches and
// out-of-range operands evaluate to nil rather than erroring (spec
// §4.9, §4.11) — evaluation itself never fails for a well-formed tree.
// Evaluate only returns a non-nil error for a tree that could not have
// come from the constructors above — an Expression with a Kind outside
// the defined set, a genuine programmer error rather than an ordinary
// absent-value case — reported as an *nvcerr.QueryError.
func Evaluate(e *Expression, r *repo.Repo, params Params) (any, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Kind {
	case KindConstant:
		return e.ConstantValue, nil

	case KindParameter:
		v, ok := params[e.ParameterName]
		if !ok {
			return nil, nil
		}
		if e.ParameterType != nil && reflect.TypeOf(v) != e.ParameterType {
			return nil, nil
		}
		return v, nil

	case KindEqual:
		left, err := Evaluate(e.Left, r, params)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(e.Right, r, params)
		if err != nil {
			return nil, err
		}
		return structuralEqual(left, right), nil

	case KindAllRepoCommits:
		return r.AllCommits(), nil

	case KindTip:
		inner, err := Evaluate(e.Inner, r, params)
		if err != nil {
			return nil, err
		}
		commits, ok := inner.([]*repo.Commit)
		if !ok || len(commits) == 0 {
			return nil, nil
		}
		return commits[len(commits)-1], nil

	default:
		return nil, nvcerr.NewQueryError(e.Kind.String(), fmt.Sprintf("unrecognized expression kind %d", int(e.Kind)), nil)
	}
}

// structuralEqual compares two evaluation results for EqualExpression.
// Byte slices compare by content; everything else by reflect.DeepEqual
// after confirming the dynamic types match (a type mismatch is not an
// equality, not an error).
func structuralEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if ab, ok := a.([]byte); ok {
		bb := b.([]byte)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}
