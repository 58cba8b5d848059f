package modql

import (
	"testing"

	"github.com/modql/modql/internal/language"
	"github.com/stretchr/testify/require"
)

// The bundler never validates the text it concatenates, but the output of a
// well-formed module tree must be acceptable to a real SDL parser.
func TestBundleProducesParsableSDL(t *testing.T) {
	accounts := &Record{
		Schema:    "type User {\n  id: ID!\n  name: String\n}",
		Queries:   "user(id: ID!): User",
		Mutations: "createUser(name: String!): User",
	}
	posts := &Record{
		Schema:        "type Post {\n  id: ID!\n  author: User\n}",
		Queries:       "post(id: ID!): Post",
		Subscriptions: "postAdded: Post",
		Modules:       []Module{accounts},
	}

	result := Bundle([]Module{posts}, nil)

	schema, err := language.LoadSchema("bundle", result.TypeDefs)
	require.NoError(t, err)
	require.NotNil(t, schema.Query)
	require.NotNil(t, schema.Mutation)
	require.NotNil(t, schema.Subscription)
	require.Contains(t, schema.Types, "User")
	require.Contains(t, schema.Types, "Post")
}
