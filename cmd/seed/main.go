package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oksasatya/vibhive/config"
	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/internal/infrastructure/mongodb"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/helpers"
)

const demoPassword = "password123"

type demoUser struct {
	username string
	fullName string
	email    string
}

var demoUsers = []demoUser{
	{"alice", "Alice Demo", "alice@example.com"},
	{"bob", "Bob Demo", "bob@example.com"},
}

func main() {
	cfg := config.MustLoad()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.Mongo.URI, cfg.Mongo.MaxPoolSize, cfg.Mongo.MinPoolSize, cfg.Mongo.Timeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.RunMigrations(client, cfg.Mongo.Database, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	db := client.Database(cfg.Mongo.Database)
	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)
	likes := mongodb.NewLikeRepository(db)
	follows := mongodb.NewFollowRepository(db)

	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	seeded := make([]*entity.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		u, err := users.GetByUsername(ctx, d.username)
		if errors.Is(err, apperror.ErrNotFound) {
			u = &entity.User{
				FullName: d.fullName,
				Username: d.username,
				Email:    d.email,
				Password: hash,
				Avatar:   "https://api.dicebear.com/7.x/identicon/svg?seed=" + d.username,
				Location: entity.DefaultLocation,
			}
			err = users.Create(ctx, u)
		}
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", d.username, err)
		}
		seeded = append(seeded, u)
		fmt.Printf("seeded user: id=%s username=%s password=%s\n", u.ID.Hex(), u.Username, demoPassword)
	}
	alice, bob := seeded[0], seeded[1]

	if ok, err := follows.IsFollowing(ctx, bob.ID, alice.ID); err != nil {
		log.Fatalf("failed to check follow: %v", err)
	} else if !ok {
		if _, err := follows.Toggle(ctx, bob.ID, alice.ID); err != nil {
			log.Fatalf("failed to seed follow: %v", err)
		}
	}
	fmt.Println("bob follows alice")

	post := &entity.Post{
		Content: "Hello from the seed script",
		Tags:    []string{"hello", "seed"},
		Images:  []entity.Image{{URL: "https://picsum.photos/seed/vibhive/800/600"}},
		Owner:   alice.ID,
	}
	if err := posts.Create(ctx, post); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	if _, err := likes.Toggle(ctx, post.ID, bob.ID); err != nil {
		log.Fatalf("failed to seed like: %v", err)
	}
	fmt.Printf("seeded post %s liked by bob\n", post.ID.Hex())
}
