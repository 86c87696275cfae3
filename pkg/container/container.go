package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"campaignhub-backend/internal/config"
	infraCache "campaignhub-backend/internal/infrastructure/cache"
	"campaignhub-backend/internal/infrastructure/database"
	"campaignhub-backend/pkg/cache"
	"campaignhub-backend/pkg/jwt"

	campaignHandler "campaignhub-backend/internal/domains/campaign/handler"
	campaignRepo "campaignhub-backend/internal/domains/campaign/repository"
	campaignService "campaignhub-backend/internal/domains/campaign/service"
	userHandler "campaignhub-backend/internal/domains/user/handler"
	userRepo "campaignhub-backend/internal/domains/user/repository"
	userService "campaignhub-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	CampaignRepo    campaignRepo.CampaignRepository
	UpdateRepo      campaignRepo.UpdateRepository
	EditHistoryRepo campaignRepo.EditHistoryRepository
	StatsRepo       campaignRepo.StatsRepository
	UserRepo        userRepo.UserRepository

	// Services
	CampaignService campaignService.CampaignService
	UpdateService   campaignService.UpdateService
	StatsService    campaignService.StatsService
	UserService     userService.UserService

	// Handlers
	CampaignHandler *campaignHandler.CampaignHandler
	UserHandler     *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole graph in dependency order:
// config -> infrastructure -> repositories -> services -> handlers.
// Getting the order wrong panics on a nil dependency, so keep it.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE & JWT
	// ========================================
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Redis holds refresh sessions only; the API stays up
		// without it, logins just won't survive a restart
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// ========================================
	// STEP 4: INITIALIZE REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 5: INITIALIZE SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 6: INITIALIZE HANDLERS
	// ========================================
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CampaignRepo = campaignRepo.NewPostgresCampaignRepository(pool)
	c.UpdateRepo = campaignRepo.NewPostgresUpdateRepository(pool)
	c.EditHistoryRepo = campaignRepo.NewPostgresEditHistoryRepository(pool)
	c.StatsRepo = campaignRepo.NewPostgresStatsRepository(pool)
	c.UserRepo = userRepo.NewUserRepository(pool)
}

func (c *Container) initServices() {
	c.CampaignService = campaignService.NewCampaignService(c.CampaignRepo, c.EditHistoryRepo)
	c.UpdateService = campaignService.NewUpdateService(c.CampaignRepo, c.UpdateRepo)
	c.StatsService = campaignService.NewStatsService(c.StatsRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache)
}

func (c *Container) initHandlers() {
	c.CampaignHandler = campaignHandler.NewCampaignHandler(c.CampaignService, c.UpdateService, c.StatsService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup closes infrastructure connections in reverse init order
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Redis close failed: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Container cleanup complete")
}
