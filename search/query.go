package search

import "github.com/nanovc/nanovc-go/repo"

// Definition holds a prepared search query (spec §4.9): an optional
// single-commit expression, an optional list expression, and the
// parameter map they were bound against.
type Definition struct {
	CommitExpression *Expression
	ListExpression   *Expression
	Params           Params
}

// Prepare returns a Definition binding commitExpr/listExpr (either may
// be nil) to params, ready to execute with Execute. Preparation itself
// does no evaluation — it exists as a distinct step because
// RepoEngine.prepareSearchQuery (spec §4.8) is a separate operation
// from RepoEngine.search.
func Prepare(commitExpr, listExpr *Expression, params Params) *Definition {
	return &Definition{CommitExpression: commitExpr, ListExpression: listExpr, Params: params}
}

// Results carries back a search's evaluated outcome: Commit is
// populated when the Definition set a commit expression that evaluated
// to a commit, and List when it set a list expression that evaluated to
// a list; both are populated when both expressions produced a value.
type Results struct {
	Commit *repo.Commit
	List   []*repo.Commit
}

// Execute evaluates def's expressions against r and returns the
// combined Results. It returns an error only when an expression is
// malformed (see Evaluate); an absent or wrongly typed result is not
// an error and simply leaves the corresponding Results field unset.
func Execute(def *Definition, r *repo.Repo) (*Results, error) {
	results := &Results{}

	if def.CommitExpression != nil {
		v, err := Evaluate(def.CommitExpression, r, def.Params)
		if err != nil {
			return nil, err
		}
		if c, ok := v.(*repo.Commit); ok {
			results.Commit = c
		}
	}

	if def.ListExpression != nil {
		v, err := Evaluate(def.ListExpression, r, def.Params)
		if err != nil {
			return nil, err
		}
		if list, ok := v.([]*repo.Commit); ok {
			results.List = list
		}
	}

	return results, nil
}
