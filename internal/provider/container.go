package provider

import (
	"github.com/shopcart-api/internal/cache"
	"github.com/shopcart-api/internal/config"
	"github.com/shopcart-api/internal/logger"
	"github.com/shopcart-api/internal/models"
	"github.com/shopcart-api/internal/queue"
	"github.com/shopcart-api/internal/repository"
	"github.com/shopcart-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ItemRepo     repository.ItemRepository
	CartRepo     repository.CartRepository

	// Services
	UserAuthService *service.UserAuthService
	CategoryService *service.CategoryService
	ItemService     *service.ItemService
	CartService     *service.CartService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ItemRepo = repository.NewItemRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ItemService = service.NewItemService(c.ItemRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ItemRepo)
}
