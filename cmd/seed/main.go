package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/agrosphere-api/config"
	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDB)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	hash, err := helpers.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	admin := &entity.User{
		Email:     cfg.SeedAdminEmail,
		Role:      entity.RoleAdmin,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
		Profile:   map[string]any{"name": "AgroSphere Admin"},
	}
	created, err := mongodb.NewUserRepository(db).Create(ctx, admin)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if !created {
		fmt.Printf("admin already present: email=%s\n", admin.Email)
		return
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", admin.ID.Hex(), admin.Email)
}
