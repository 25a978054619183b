package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/kafka"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redisv9.Client,
	mongoConn *mongoDB.Database,
	esClient *elasticsearch.TypedClient,
) (*ApplicationContainer, error) {
	cache := redis.NewCache(rdb)
	tokenManager := security.NewTokenManager(cfg.JWT)

	// Repositories
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	postActionRepo := repository.NewPostActionRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	overviewRepo := repository.NewOverviewRepo(db)
	notificationRepo := mongo.NewNotificationRepo(mongoConn)
	postESRepo := es.NewPostRepo(esClient, cfg.Elastic.Indices.PostIndex)
	if err := es.EnsurePostIndex(context.Background(), esClient, cfg.Elastic.Indices.PostIndex); err != nil {
		return nil, err
	}

	// Services
	notificationService := service.NewNotificationService(notificationRepo, userRepo)

	commentOpts := []service.CommentOption{service.WithMaxLength(cfg.Comment.MaxLength)}
	if cfg.Comment.PromoteOrphans {
		commentOpts = append(commentOpts, service.WithOrphanPromotion())
	}
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, notificationService, cache, commentOpts...)
	postService := service.NewPostService(postRepo, postActionRepo, commentRepo, userRepo, commentService, notificationService)
	moderationService := service.NewModerationService(commentRepo, postRepo, userRepo, commentService, postService, notificationService, cfg.Comment.PromoteOrphans)
	userService := service.NewUserService(userRepo, postESRepo, tokenManager, cache)
	userFollowService := service.NewUserFollowService(userFollowRepo, userRepo, notificationService)
	adminUserService := service.NewAdminUserService(
		userRepo, postRepo, commentRepo, postActionRepo, userFollowRepo,
		notificationRepo, postESRepo, postService, commentService, notificationService,
	)
	overviewService := service.NewOverviewService(overviewRepo, userRepo, commentRepo, cache)
	authorService := service.NewAuthorService(userRepo, postRepo, userFollowRepo)
	exploreService := service.NewExploreService(postESRepo, userRepo, userFollowRepo)
	userOverviewService := service.NewUserOverviewService(overviewRepo, userRepo, userFollowRepo, cache)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		UserFollowHandler:   handler.NewUserFollowHandler(userFollowService),
		PostHandler:         handler.NewPostHandler(postService),
		AuthorHandler:       handler.NewAuthorHandler(authorService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		AdminHandler:        handler.NewAdminHandler(adminUserService, moderationService, overviewService),
		UserOverviewHandler: handler.NewUserOverviewHandler(userOverviewService),
		ExploreHandler:      handler.NewExploreHandler(exploreService),
	}
	guards := api.NewGuards(tokenManager, cache, userService)
	router := api.SetupRouter(cfg, handlers, guards)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, postRepo, postESRepo, cache)
		if err != nil {
			return nil, err
		}
	}

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewBanExpiryJob(adminUserService, cache),
		job.NewOrphanCommentJob(commentService, cache),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
