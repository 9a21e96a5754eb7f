package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"comicvault-backend/internal/config"
	infraCache "comicvault-backend/internal/infrastructure/cache"
	"comicvault-backend/internal/infrastructure/database"
	"comicvault-backend/internal/infrastructure/storage"
	"comicvault-backend/pkg/cache"
	"comicvault-backend/pkg/jwt"

	comicGateway "comicvault-backend/internal/domains/comic/gateway"
	barcodeGateway "comicvault-backend/internal/domains/comic/gateway/barcode"
	metronGateway "comicvault-backend/internal/domains/comic/gateway/metron"
	comicHandler "comicvault-backend/internal/domains/comic/handler"
	comicService "comicvault-backend/internal/domains/comic/service"

	collectionHandler "comicvault-backend/internal/domains/collection/handler"
	collectionRepo "comicvault-backend/internal/domains/collection/repository"
	collectionService "comicvault-backend/internal/domains/collection/service"

	userHandler "comicvault-backend/internal/domains/user/handler"
	userRepo "comicvault-backend/internal/domains/user/repository"
	userService "comicvault-backend/internal/domains/user/service"

	"comicvault-backend/internal/domains/scan/relay"
	"comicvault-backend/internal/domains/scan/session"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// Root của dependency graph, dùng chung cho API và worker.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Lifecycle: Singleton (1 instance duy nhất trong app lifetime)

	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage // nil nếu MinIO không available
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// ========================================
	// GATEWAY LAYER (EXTERNAL SERVICES)
	// ========================================

	BarcodeGateway  comicGateway.BarcodeGateway
	MetadataGateway comicGateway.MetadataGateway

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	CollectionRepo collectionRepo.RepositoryInterface
	UserRepo       userRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	ComicService      comicService.ServiceInterface
	CollectionService collectionService.ServiceInterface
	UserService       userService.ServiceInterface

	// ========================================
	// SCAN RELAY
	// ========================================

	ScanStore session.Store
	ScanRelay *relay.Relay

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	ComicHandler      *comicHandler.Handler
	CollectionHandler *collectionHandler.Handler
	UserHandler       *userHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph.
//
// Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Cache, Storage, Asynq) - phụ thuộc Config
// 3. Gateways + Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Gateways/Repositories
// 5. Handlers - phụ thuộc Services
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

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
	// STEP 3: INITIALIZE CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// Redis failure không critical - cache layer degrade về DB
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: INITIALIZE OBJECT STORAGE
	// ========================================
	log.Println("📦 Connecting to MinIO...")

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		// API không cần storage (chỉ worker archive ảnh) - degrade
		log.Printf("⚠️  MinIO connection failed (non-critical): %v", err)
	} else {
		c.Storage = minioStorage
		log.Println("✅ MinIO connected")
	}

	// ========================================
	// STEP 5: ASYNQ CLIENT + JWT
	// ========================================
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// ========================================
	// STEP 6: GATEWAYS + REPOSITORIES
	// ========================================
	log.Println("🌐 Initializing gateways and repositories...")

	if err := c.initGateways(); err != nil {
		return nil, fmt.Errorf("failed to init gateways: %w", err)
	}
	c.initRepositories()
	log.Println("✅ Gateways and repositories initialized")

	// ========================================
	// STEP 7: SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 8: HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initGateways() error {
	c.BarcodeGateway = barcodeGateway.NewClient(c.Config.Barcode)

	metadata, err := metronGateway.NewClient(c.Config.Metron)
	if err != nil {
		return err
	}
	c.MetadataGateway = metadata

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CollectionRepo = collectionRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.ComicService = comicService.NewService(
		c.BarcodeGateway,
		c.MetadataGateway,
		c.AsynqClient,
	)

	c.CollectionService = collectionService.NewService(
		c.CollectionRepo,
		c.Cache,
	)

	c.UserService = userService.NewService(
		c.UserRepo,
		c.JWTManager,
	)

	c.ScanStore = session.NewMemoryStore()
	c.ScanRelay = relay.NewRelay(c.ScanStore, c.Config.Scan.SessionTTL)
}

func (c *Container) initHandlers() {
	c.ComicHandler = comicHandler.NewHandler(c.ComicService)
	c.CollectionHandler = collectionHandler.NewHandler(c.CollectionService)
	c.UserHandler = userHandler.NewHandler(c.UserService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup dọn dẹp resources khi shutdown.
// Gọi trong graceful shutdown của server.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.ScanRelay != nil {
		c.ScanRelay.Shutdown()
		log.Println("✅ Scan relay stopped")
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Asynq client close failed: %v", err)
		} else {
			log.Println("✅ Asynq client closed")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Redis close failed: %v", err)
		} else {
			log.Println("✅ Redis connection closed")
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	log.Println("🧹 Cleanup completed")
}
