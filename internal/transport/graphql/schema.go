// Package graphql serves the read side of the grievance engine over
// GraphQL: case detail, caseworker dashboards, escalation history and
// recent activity. Queries are parsed and validated with gqlparser and
// executed against hand-written resolvers; responses use gqlgen's
// marshalers and error presenter. Per-case relations go through the
// request's DataLoaders so list queries cost one SQL call per relation.
package graphql

import (
	_ "embed"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSDL string

// Schema parses the embedded SDL. It panics on a malformed schema, which
// can only happen at build time.
func Schema() *ast.Schema {
	return gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})
}
