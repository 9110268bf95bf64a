package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitaminP8/flock/graph"
	"github.com/VitaminP8/flock/internal/auth"
	"github.com/VitaminP8/flock/internal/config"
	"github.com/VitaminP8/flock/internal/server"
	"github.com/VitaminP8/flock/internal/subscription"
	"github.com/spf13/cobra"
)

var (
	storageType string
	port        string
)

var rootCmd = &cobra.Command{
	Use:   "flock",
	Short: "GraphQL server for posts, comments and follows",
	RunE:  runServer,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables (postgres, sqlite) or indexes (mongo)",
	RunE:  runMigrate,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Validate and print the GraphQL schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := graph.LintSchema(); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.Schema)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageType, "storage", storageMemory, "Тип хранилища: memory, mongo, postgres или sqlite")
	rootCmd.Flags().StringVar(&port, "port", "", "Порт HTTP сервера (по умолчанию PORT или 4001)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	// загружаем .env из нашего config.go
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if port != "" {
		cfg.Port = port
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := graph.LintSchema(); err != nil {
		return err
	}

	// Ожидание SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, storageType, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	// Инициализация резолвера
	resolver := &graph.Resolver{
		PostStore:           st.posts,
		CommentStore:        st.comments,
		UserStore:           st.users,
		Tokens:              tokens,
		SubscriptionManager: subscription.NewSubscriptionManager(),
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	return server.Run(ctx, ":"+cfg.Port, server.NewRouter(schema, tokens))
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if storageType == storageMemory {
		return fmt.Errorf("in-memory хранилище не требует миграций")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// openStores применяет миграции и индексы при открытии
	st, err := openStores(cmd.Context(), storageType, cfg)
	if err != nil {
		return err
	}
	st.close()

	log.Printf("Миграции для %s применены", storageType)
	return nil
}
