package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"

	"chatdesk/internal/config"
	"chatdesk/internal/model/auth"
	"chatdesk/internal/pkg/id"
	"chatdesk/internal/pkg/logger"
	"chatdesk/internal/pkg/mongodb"
	"chatdesk/internal/pkg/password"
	authrepo "chatdesk/internal/repository/auth"
)

// Seeds or repairs the admin account. Run with:
//
//	INIT_ADMIN_EMAIL=... INIT_ADMIN_PASSWORD=... go run scripts/init_admin.go
func main() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.chatdesk")

	viper.SetEnvPrefix("CHATDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
		os.Exit(1)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	client, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	ctx := context.Background()
	userRepo := authrepo.NewUserRepo(client.Database())

	email := os.Getenv("INIT_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	email = strings.ToLower(email)
	passwordPlain := os.Getenv("INIT_ADMIN_PASSWORD")
	if passwordPlain == "" {
		passwordPlain = "admin123"
	}
	fullName := os.Getenv("INIT_ADMIN_NAME")
	if fullName == "" {
		fullName = "Administrator"
	}

	user, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to query user")
	}

	if user == nil {
		log.Info().Str("email", email).Msg("admin user not found, will create")
		if err := createAdmin(ctx, userRepo, fullName, email, passwordPlain); err != nil {
			log.Fatal().Err(err).Msg("create admin user failed")
		}
	} else {
		// Exists: promote to admin and mark verified.
		log.Info().Str("email", email).Msg("admin user exists, will update role")
		update := bson.M{
			"role":        auth.RoleAdmin,
			"is_verified": true,
		}
		if err := userRepo.UpdateFields(ctx, user.ID, update); err != nil {
			log.Fatal().Err(err).Msg("update admin user failed")
		}
	}

	fmt.Printf("Admin initialized: email=%s role=admin\n", email)
}

func createAdmin(ctx context.Context, repo *authrepo.UserRepo, fullName, email, pwd string) error {
	hashed, err := password.Hash(pwd)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &auth.User{
		ID:         id.New(),
		FullName:   fullName,
		Email:      email,
		Password:   hashed,
		Role:       auth.RoleAdmin,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return repo.Create(ctx, user)
}
