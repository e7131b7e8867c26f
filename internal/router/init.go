package router

import (
	"github.com/oksasatya/vibhive/internal/application"
	"github.com/oksasatya/vibhive/internal/container"
	"github.com/oksasatya/vibhive/internal/infrastructure/mongodb"
	"github.com/oksasatya/vibhive/internal/infrastructure/search"
	handlers "github.com/oksasatya/vibhive/internal/interface/http"
	"github.com/oksasatya/vibhive/internal/router/modules"
	"github.com/oksasatya/vibhive/pkg/mailer/templates"
)

// Services groups the application services built from the container.
type Services struct {
	Users   *application.UserService
	Posts   *application.PostService
	Likes   *application.LikeService
	Follows *application.FollowService
}

// BuildServices wires repositories and optional collaborators (search,
// email queue) into the application services.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetDatabase()

	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)
	likes := mongodb.NewLikeRepository(db)
	follows := mongodb.NewFollowRepository(db)

	userSvc := application.NewUserService(users, follows, container.GetImages(), container.GetJWT(), logger)
	userSvc.Brand = templates.Brand{
		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		LogoURL:     cfg.LogoURL,
		SupportURL:  cfg.SupportURL,
		AppURL:      cfg.AppURL,
	}
	if es := container.GetES(); es != nil {
		userSvc.Search = search.NewUserIndex(es, cfg.ESUsersIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		userSvc.Jobs = pub
	}

	return Services{
		Users:   userSvc,
		Posts:   application.NewPostService(posts, likes, users, container.GetImages(), logger, cfg.MaxPostImages),
		Likes:   application.NewLikeService(likes, posts),
		Follows: application.NewFollowService(follows, users),
	}
}

// InitModules builds every feature module and adds it to the registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()
	auth := modules.NewAuthGuard(container.GetJWT(), svc.Users.Users)

	r.Add(
		modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger, cfg.CookieDomain, cfg.CookieSecure, cfg.MaxUploadBytes), auth),
		modules.NewPostModule(handlers.NewPostHandler(svc.Posts, logger, cfg.MaxUploadBytes), auth),
		modules.NewLikeModule(handlers.NewLikeHandler(svc.Likes), auth),
		modules.NewFollowModule(handlers.NewFollowHandler(svc.Follows), auth),
		modules.NewHealthModule(handlers.NewHealthHandler(mongodb.Health{Client: container.GetMongo()})),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
