package graph

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/VitaminP8/flock/internal/auth"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintSchema(t *testing.T) {
	schema, err := LintSchema()
	require.NoError(t, err)

	resolverType := reflect.TypeOf(&Resolver{})
	hasMethod := func(field string) bool {
		for i := 0; i < resolverType.NumMethod(); i++ {
			if strings.EqualFold(resolverType.Method(i).Name, field) {
				return true
			}
		}
		return false
	}

	for _, root := range []string{"Query", "Mutation", "Subscription"} {
		def := schema.Types[root]
		require.NotNil(t, def, root)
		for _, field := range def.Fields {
			if strings.HasPrefix(field.Name, "__") {
				continue
			}
			assert.True(t, hasMethod(field.Name), "%s.%s has no resolver", root, field.Name)
		}
	}
}

func newTestSchema(t *testing.T) (*graphql.Schema, *testEnv) {
	t.Helper()
	env := setupTestResolver(t)
	schema, err := NewSchema(env.r)
	require.NoError(t, err)
	return schema, env
}

func exec(t *testing.T, schema *graphql.Schema, ctx context.Context, query string, vars map[string]interface{}) (map[string]interface{}, *graphql.Response) {
	t.Helper()
	resp := schema.Exec(ctx, query, "", vars)
	var data map[string]interface{}
	if len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, &data))
	}
	return data, resp
}

func TestSchema_EndToEnd(t *testing.T) {
	schema, env := newTestSchema(t)
	ctx := context.Background()

	data, resp := exec(t, schema, ctx, `
		mutation($input: CreateUserInput!) {
			createUser(input: $input) { id name email posts { id } followers { id } }
		}`, map[string]interface{}{
		"input": map[string]interface{}{"name": "alice", "email": "alice@mail.com", "password": "secret"},
	})
	require.Empty(t, resp.Errors)
	created := data["createUser"].(map[string]interface{})
	assert.Equal(t, "alice@mail.com", created["email"])
	assert.Equal(t, []interface{}{}, created["posts"])

	data, resp = exec(t, schema, ctx, `
		mutation {
			signInUser(input: {email: "alice@mail.com", password: "secret"}) { token user { id } }
		}`, nil)
	require.Empty(t, resp.Errors)
	payload := data["signInUser"].(map[string]interface{})
	token := payload["token"].(string)
	userID, ok := env.r.Tokens.ResolveToken(token)
	require.True(t, ok)
	assert.Equal(t, created["id"], string(userID))

	authed := auth.WithUserID(ctx, userID)

	data, resp = exec(t, schema, authed, `
		mutation { createPost(input: {tweet: "hello world"}) { id tweet createdBy { name } comments { id } } }`, nil)
	require.Empty(t, resp.Errors)
	post := data["createPost"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"name": "alice"}, post["createdBy"])

	_, resp = exec(t, schema, authed, `
		mutation($postId: ID!) { createComment(input: {postId: $postId, comment: "nice one"}) { id post { id } } }`,
		map[string]interface{}{"postId": post["id"]})
	require.Empty(t, resp.Errors)

	data, resp = exec(t, schema, ctx, `
		query { posts { tweet createdAt comments { comment createdBy { email } } } }`, nil)
	require.Empty(t, resp.Errors)
	posts := data["posts"].([]interface{})
	require.Len(t, posts, 1)
	first := posts[0].(map[string]interface{})
	assert.NotEmpty(t, first["createdAt"])
	comments := first["comments"].([]interface{})
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].(map[string]interface{})["comment"])

	data, resp = exec(t, schema, authed, `query { me { name posts { tweet } comments { comment } } }`, nil)
	require.Empty(t, resp.Errors)
	me := data["me"].(map[string]interface{})
	assert.Len(t, me["posts"], 1)
	assert.Len(t, me["comments"], 1)
}

func TestSchema_ErrorExtensions(t *testing.T) {
	schema, env := newTestSchema(t)
	alice := env.signUp(t, "alice", "alice@mail.com")

	t.Run("Unauthenticated mutation", func(t *testing.T) {
		_, resp := exec(t, schema, context.Background(), `mutation { createPost(input: {tweet: "hello"}) { id } }`, nil)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "User not authenticated", resp.Errors[0].Message)
		assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
	})

	t.Run("Missing post", func(t *testing.T) {
		_, resp := exec(t, schema, auth.WithUserID(context.Background(), alice.ID),
			`mutation { deletePost(postId: "missing") }`, nil)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "Post not found", resp.Errors[0].Message)
		assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["code"])
	})

	t.Run("Anonymous me is null", func(t *testing.T) {
		data, resp := exec(t, schema, context.Background(), `query { me { id } }`, nil)
		require.Empty(t, resp.Errors)
		assert.Nil(t, data["me"])
	})

	t.Run("Password is not exposed", func(t *testing.T) {
		_, resp := exec(t, schema, context.Background(), `query($id: ID!) { user(id: $id) { password } }`,
			map[string]interface{}{"id": string(alice.ID)})
		assert.NotEmpty(t, resp.Errors)
	})

	t.Run("Depth limit", func(t *testing.T) {
		_, resp := exec(t, schema, context.Background(), `query($id: ID!) {
			user(id: $id) { followers { followers { followers { followers { followers {
				followers { followers { followers { followers { followers { id } } } } }
			} } } } } }
		}`, map[string]interface{}{"id": string(alice.ID)})
		assert.NotEmpty(t, resp.Errors)
	})
}
