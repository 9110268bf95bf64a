package server

import (
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/VitaminP8/flock/internal/auth"
	"github.com/gorilla/mux"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
)

// NewRouter собирает HTTP маршруты сервера:
// /query - GraphQL поверх HTTP и websocket (подписки),
// / - Playground, /health - проверка живости.
func NewRouter(schema *graphql.Schema, tokens *auth.TokenManager) *mux.Router {
	r := mux.NewRouter()

	graphQLHandler := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})
	// AuthMiddleware кладет userID из JWT в context, анонимные запросы пропускает
	r.Handle("/query", auth.AuthMiddleware(tokens, graphQLHandler))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	r.Handle("/", playground.Handler("GraphQL Playground", "/query")).Methods(http.MethodGet)

	return r
}
