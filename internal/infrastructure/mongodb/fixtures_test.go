package mongodb

import "github.com/oksasatya/vibhive/internal/domain/entity"

var userFixture = entity.User{
	FullName: "Alice Doe",
	Username: "alice",
	Email:    "alice@example.com",
	Password: "$2a$10$hash",
	Location: entity.DefaultLocation,
}
