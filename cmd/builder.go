package cmd

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api"
	apiadmin "github.com/Fubuki233/WebAppDev-Ca-sub001/api/admin"
	apiauth "github.com/Fubuki233/WebAppDev-Ca-sub001/api/auth"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/health"
	apiorder "github.com/Fubuki233/WebAppDev-Ca-sub001/api/order"
	apiproduct "github.com/Fubuki233/WebAppDev-Ca-sub001/api/product"
	apiwishlist "github.com/Fubuki233/WebAppDev-Ca-sub001/api/wishlist"
	adminapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/admin"
	authapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/auth"
	orderapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/order"
	productapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/product"
	wishlistapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/config"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mocks"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/retry"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// orderPrefixes are the path prefixes addressing a single order.
var orderPrefixes = []string{"/order/", "/api/orders/"}

// repositories is the persistence layer picked by database.type.
type repositories struct {
	customers   customer.Repository
	employees   employee.Repository
	roles       employee.RoleRepository
	permissions employee.PermissionRepository
	products    product.Repository
	orders      order.Repository
	wishlists   wishlist.Repository
	uow         shared.UnitOfWork
}

// AppBuilder assembles the application from configuration.
type AppBuilder struct {
	cfg         *config.Config
	checkers    []health.Checker
	closers     []func() error
	workers     []func(ctx context.Context)
	memoryStore *session.MemoryStore
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// Build wires persistence, sessions, services and the router.
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	repos, err := b.initDatabase()
	if err != nil {
		b.close()
		return nil, err
	}

	store, err := b.initSessionStore(ctx)
	if err != nil {
		b.close()
		return nil, err
	}
	sessions := session.NewManager(store, session.Options{
		CookieName: b.cfg.Session.CookieName,
		TTL:        b.cfg.Session.TTL,
		Secure:     b.cfg.Session.Secure,
	})

	hasher := authapp.NewBcryptHasher(bcrypt.DefaultCost)
	authService := authapp.NewService(repos.customers, repos.employees, repos.roles, hasher)
	orderService := orderapp.NewService(repos.orders, repos.products, repos.uow)
	productService := productapp.NewService(repos.products, repos.uow)
	wishlistService := wishlistapp.NewService(repos.wishlists, repos.products)
	adminService := adminapp.NewService(repos.employees, repos.roles, repos.permissions, repos.products, repos.orders, hasher, repos.uow)

	if err := b.seed(ctx, adminService, productService); err != nil {
		b.close()
		return nil, err
	}

	policy := access.DefaultPolicy(b.cfg.Access.LoginURL, b.cfg.Access.LogoutPath)
	logPolicy(policy)
	engine := access.NewEngine(policy, authService, authService)
	guard := access.NewOrderGuard(repos.orders, b.cfg.Access.CartURL, orderPrefixes, "pay", "cancel")

	router := api.NewRouter(b.cfg, api.Dependencies{
		Sessions:   sessions,
		Access:     engine,
		OrderGuard: guard,
		Health:     health.NewController(b.cfg, b.checkers...),
		Auth:       apiauth.NewController(authService, sessions),
		Orders:     apiorder.NewController(orderService),
		Products:   apiproduct.NewController(productService),
		Wishlist:   apiwishlist.NewController(wishlistService),
		Admin:      apiadmin.NewController(adminService),
	})
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config:  b.cfg,
		router:  router,
		server:  server,
		closers: b.closers,
		workers: b.workers,
	}, nil
}

func logPolicy(policy *access.Policy) {
	routes := policy.BypassRoutes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	public := make([]string, len(routes))
	for i, r := range routes {
		public[i] = r.Method + " " + r.Path
	}
	logger.Info("Access policy loaded", zap.Strings("bypass", public))
}

func (b *AppBuilder) initDatabase() (*repositories, error) {
	retryConfig := retry.FromAppConfig(b.cfg)

	if b.cfg.Database.Type == "mock" {
		logger.Info("Using in-memory persistence layer")
		m := mocks.NewRepositories()
		return &repositories{
			customers:   m.Customers,
			employees:   m.Employees,
			roles:       m.Roles,
			permissions: m.Permissions,
			products:    m.Products,
			orders:      m.Orders,
			wishlists:   m.Wishlists,
			uow:         mocks.NewMockUnitOfWork(retryConfig),
		}, nil
	}

	logger.Info("Using MySQL/GORM persistence layer",
		zap.String("host", b.cfg.Database.Host),
		zap.String("database", b.cfg.Database.Database))

	mysqlConfig := mysql.FromAppConfig(b.cfg.Database)
	db, err := mysqlConfig.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	b.closers = append(b.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	if err := mysql.AutoMigrate(db); err != nil {
		return nil, err
	}
	logger.Info("Connected to MySQL successfully")

	b.checkers = append(b.checkers, health.Checker{
		Name:  "database",
		Check: func(ctx context.Context) error { return mysql.Ping(ctx, db) },
	})
	return mysqlRepositories(db, retryConfig), nil
}

func mysqlRepositories(db *gorm.DB, retryConfig retry.Config) *repositories {
	return &repositories{
		customers:   mysql.NewCustomerRepository(db),
		employees:   mysql.NewEmployeeRepository(db),
		roles:       mysql.NewRoleRepository(db),
		permissions: mysql.NewPermissionRepository(db),
		products:    mysql.NewProductRepository(db),
		orders:      mysql.NewOrderRepository(db),
		wishlists:   mysql.NewWishlistRepository(db),
		uow:         mysql.NewUnitOfWork(db, retryConfig),
	}
}

func (b *AppBuilder) initSessionStore(ctx context.Context) (session.Store, error) {
	if b.cfg.Session.Store == "memory" {
		interval := purgeInterval(b.cfg.Session.TTL)
		logger.Info("Using in-memory session store",
			zap.Duration("ttl", b.cfg.Session.TTL),
			zap.Duration("purge_interval", interval))

		b.memoryStore = session.NewMemoryStore(b.cfg.Session.TTL)
		b.workers = append(b.workers, func(ctx context.Context) {
			b.memoryStore.RunPurger(ctx, interval)
		})
		return b.memoryStore, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     b.cfg.Redis.Addr,
		Password: b.cfg.Redis.Password,
		DB:       b.cfg.Redis.DB,
	})
	b.closers = append(b.closers, client.Close)

	store := session.NewRedisStore(client, b.cfg.Session.KeyPrefix, b.cfg.Session.TTL)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach redis at %s: %w", b.cfg.Redis.Addr, err)
	}
	logger.Info("Using Redis session store", zap.String("addr", b.cfg.Redis.Addr))

	b.checkers = append(b.checkers, health.Checker{Name: "sessions", Check: store.Ping})
	return store, nil
}

// purgeInterval is half the session TTL, at most one minute.
func purgeInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval <= 0 {
		interval = time.Second
	}
	return interval
}

func (b *AppBuilder) seed(ctx context.Context, admins *adminapp.Service, products *productapp.Service) error {
	if !b.cfg.Seed.Enabled {
		return nil
	}
	err := admins.EnsureBootstrap(ctx, adminapp.BootstrapRequest{
		AdminName:     b.cfg.Seed.AdminName,
		AdminEmail:    b.cfg.Seed.AdminEmail,
		AdminPassword: b.cfg.Seed.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to bootstrap administrator: %w", err)
	}

	if b.cfg.Database.Type != "mock" {
		return nil
	}
	for _, req := range demoCatalogue {
		if _, err := products.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", req.SKU, err)
		}
	}
	logger.Info("Seeded demo catalogue", zap.Int("products", len(demoCatalogue)))
	return nil
}

func (b *AppBuilder) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("Failed to release resource", zap.Error(err))
		}
	}
	b.closers = nil
}

// demoCatalogue fills the in-memory store so a fresh instance is usable.
var demoCatalogue = []productapp.ProductRequest{
	{SKU: "KIT-KETTLE-01", Name: "Electric Kettle", Description: "1.7L stainless steel kettle", Price: 2990, Currency: "SGD", Stock: 25},
	{SKU: "KIT-TOASTER-02", Name: "Two-Slice Toaster", Description: "Six browning levels", Price: 3450, Currency: "SGD", Stock: 12},
	{SKU: "HOM-LAMP-01", Name: "Desk Lamp", Description: "Dimmable LED lamp", Price: 1990, Currency: "SGD", Stock: 40},
	{SKU: "HOM-MUG-04", Name: "Ceramic Mug", Description: "350ml, dishwasher safe", Price: 890, Currency: "SGD", Stock: 100},
}
