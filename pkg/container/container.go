package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"blogicum-backend/internal/config"
	infraCache "blogicum-backend/internal/infrastructure/cache"
	"blogicum-backend/internal/infrastructure/database"
	"blogicum-backend/internal/infrastructure/queue"
	"blogicum-backend/internal/infrastructure/storage"
	"blogicum-backend/pkg/cache"
	"blogicum-backend/pkg/jwt"

	"blogicum-backend/internal/domains/category"
	categoryHandler "blogicum-backend/internal/domains/category/handler"
	categoryRepo "blogicum-backend/internal/domains/category/repository"
	categoryService "blogicum-backend/internal/domains/category/service"

	"blogicum-backend/internal/domains/location"
	locationHandler "blogicum-backend/internal/domains/location/handler"
	locationRepo "blogicum-backend/internal/domains/location/repository"
	locationService "blogicum-backend/internal/domains/location/service"

	"blogicum-backend/internal/domains/comment"
	commentHandler "blogicum-backend/internal/domains/comment/handler"
	commentRepo "blogicum-backend/internal/domains/comment/repository"
	commentService "blogicum-backend/internal/domains/comment/service"

	postHandler "blogicum-backend/internal/domains/post/handler"
	postRepo "blogicum-backend/internal/domains/post/repository"
	postService "blogicum-backend/internal/domains/post/service"

	"blogicum-backend/internal/domains/user"
	userHandler "blogicum-backend/internal/domains/user/handler"
	userRepo "blogicum-backend/internal/domains/user/repository"
	userService "blogicum-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application.
// API server và worker dùng chung container này.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config         *config.Config
	DB             *database.PostgresDB
	Redis          *infraCache.RedisClient
	Cache          cache.Cache
	JWTManager     *jwt.Manager
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	AsynqClient    *queue.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     user.Repository
	CategoryRepo category.Repository
	LocationRepo location.Repository
	PostRepo     postRepo.RepositoryInterface
	CommentRepo  comment.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService      user.Service
	CategoryService  category.Service
	LocationService  location.Service
	PostService      postService.ServiceInterface
	PostImageService postService.ImageServiceInterface
	CommentService   comment.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
	LocationHandler *locationHandler.LocationHandler
	PostHandler     *postHandler.PostHandler
	CommentHandler  *commentHandler.CommentHandler
}

// NewContainer tạo toàn bộ dependency graph theo thứ tự:
// Config → Infrastructure → Repositories → Services → Handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("✅ Config loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// ========================================
	// STEP 2: DATABASE + MIGRATIONS
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.Migrate(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info().Msg("✅ Database connected and migrated")

	// ========================================
	// STEP 3: REDIS (cache + token revocation)
	// ========================================
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		// Redis lỗi không chặn startup: cache + token denylist chỉ sống trong process này
		log.Warn().Err(err).Msg("⚠️  Redis connection failed, falling back to in-memory cache")
		c.Cache = cache.NewMemoryCache()
	} else {
		c.Cache = infraCache.NewRedisCache(c.Redis.Client)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL())

	// ========================================
	// STEP 4: OBJECT STORAGE + QUEUE
	// ========================================
	minio, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init minio: %w", err)
	}
	c.Storage = minio
	c.ImageProcessor = storage.NewImageProcessor(cfg.Blog.MaxImageBytes)
	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("✅ Storage and queue ready")

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.LocationRepo = locationRepo.NewPostgresRepository(pool)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache, c.Config.Blog.CategoryTTL)
	c.LocationService = locationService.NewLocationService(c.LocationRepo)

	// Post phụ thuộc chéo: users (profile), categories, locations
	c.PostService = postService.NewPostService(
		c.PostRepo,
		c.UserService,
		c.CategoryService,
		c.LocationService,
		c.Storage,
		c.ImageProcessor,
		c.AsynqClient,
		c.Config.Blog.PageSize,
	)
	c.PostImageService = postService.NewImageService(c.PostRepo, c.Storage, c.ImageProcessor)

	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.PostService)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.LocationHandler = locationHandler.NewLocationHandler(c.LocationService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService, c.CommentService, c.Config.Blog.MaxImageBytes)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close database")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
