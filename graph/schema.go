package graph

import (
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var Schema string

const maxQueryDepth = 10

// NewSchema привязывает резолверы к схеме. Несовпадение полей и методов
// обнаруживается здесь, а не во время запроса.
func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(Schema, resolver, graphql.MaxDepth(maxQueryDepth))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}

// LintSchema проверяет SDL независимым парсером
func LintSchema() (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: Schema})
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %v", err)
	}
	return schema, nil
}
