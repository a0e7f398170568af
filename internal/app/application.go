package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"aman-backend/internal/config"
	"aman-backend/internal/handlers"
	"aman-backend/internal/middleware"
	"aman-backend/internal/models"
	"aman-backend/internal/repository"
	"aman-backend/internal/seed"
	"aman-backend/internal/service"
	"aman-backend/pkg/cache"
	"aman-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server

	sweeperDone chan struct{}
}

type repositoryContainer struct {
	Section   repository.SectionRepository
	Service   repository.ServiceRepository
	User      repository.UserRepository
	Project   repository.ProjectRepository
	Quotation repository.QuotationRepository
}

type serviceContainer struct {
	Auth        *service.AuthService
	Section     *service.SectionService
	EditSession *service.EditSessionService
	Catalog     *service.CatalogService
	User        *service.UserService
	Project     *service.ProjectService
	Quotation   *service.QuotationService
	Upload      *service.UploadService
}

type handlerContainer struct {
	Auth        *handlers.AuthHandler
	Section     *handlers.SectionHandler
	EditSession *handlers.EditSessionHandler
	Catalog     *handlers.CatalogHandler
	User        *handlers.UserHandler
	Project     *handlers.ProjectHandler
	Quotation   *handlers.QuotationHandler
	Upload      *handlers.UploadHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{
		cfg:         cfg,
		sweeperDone: make(chan struct{}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()
	app.initServices()

	seed.EnsureDefaultSections(app.repositories.Section)

	app.initHandlers()
	app.initRouter()

	app.services.EditSession.RunSweeper(app.sweeperDone)

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	close(a.sweeperDone)

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Section{},
		&models.Service{},
		&models.Project{},
		&models.ModificationRequest{},
		&models.QuotationRequest{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_sections_page ON sections(page)",
		"CREATE INDEX IF NOT EXISTS idx_sections_order ON sections(\"order\" ASC)",
		"CREATE INDEX IF NOT EXISTS idx_services_active ON services(active) WHERE active = true",
		"CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_modification_requests_status ON modification_requests(status)",
		"CREATE INDEX IF NOT EXISTS idx_quotation_requests_status ON quotation_requests(status)",
		"CREATE INDEX IF NOT EXISTS idx_quotation_requests_created_at ON quotation_requests(created_at DESC)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		logger.Warn("Cache unavailable, continuing without it", map[string]interface{}{"error": err.Error()})
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Section:   repository.NewSectionRepository(a.db),
		Service:   repository.NewServiceRepository(a.db),
		User:      repository.NewUserRepository(a.db),
		Project:   repository.NewProjectRepository(a.db),
		Quotation: repository.NewQuotationRepository(a.db),
	}
}

func (a *Application) initServices() {
	sectionService := service.NewSectionService(a.repositories.Section, a.cache)

	a.services = serviceContainer{
		Auth:        service.NewAuthService(a.repositories.User, a.cfg.JWTSecret, time.Duration(a.cfg.LoginCodeTTLMinutes)*time.Minute),
		Section:     sectionService,
		EditSession: service.NewEditSessionService(sectionService, time.Duration(a.cfg.EditSessionTTLMinutes)*time.Minute),
		Catalog:     service.NewCatalogService(a.repositories.Service, a.cache),
		User:        service.NewUserService(a.repositories.User),
		Project:     service.NewProjectService(a.repositories.Project),
		Quotation:   service.NewQuotationService(a.repositories.Quotation, a.repositories.Service),
		Upload:      service.NewUploadService(a.cfg.UploadDir, a.cfg.MaxUploadSize),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Auth:        handlers.NewAuthHandler(a.services.Auth, a.services.User),
		Section:     handlers.NewSectionHandler(a.services.Section),
		EditSession: handlers.NewEditSessionHandler(a.services.EditSession),
		Catalog:     handlers.NewCatalogHandler(a.services.Catalog),
		User:        handlers.NewUserHandler(a.services.User),
		Project:     handlers.NewProjectHandler(a.services.Project),
		Quotation:   handlers.NewQuotationHandler(a.services.Quotation),
		Upload:      handlers.NewUploadHandler(a.services.Upload),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(middleware.MetricsMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Static("/uploads", a.cfg.UploadDir)

	publicLimiter := middleware.NewRateLimiter(a.cfg.RateLimitRequests, time.Duration(a.cfg.RateLimitWindow)*time.Second)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(publicLimiter.Middleware())
		{
			public.GET("/pages/:page/sections", a.handlers.Section.ListByPage)
			public.GET("/pages/:page/sections/:slot", a.handlers.Section.GetByPageSlot)
			public.GET("/services", a.handlers.Catalog.ListPublic)
			public.GET("/services/:slug", a.handlers.Catalog.GetBySlug)
			public.GET("/quotations/budget-bands", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"budget_bands": service.BudgetBands()})
			})
			public.POST("/quotations", a.handlers.Quotation.Submit)

			public.POST("/login", a.handlers.Auth.Login)
			public.POST("/login/code", a.handlers.Auth.LoginWithCode)
		}

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		{
			authed.GET("/me", a.handlers.Auth.Me)
		}

		client := v1.Group("/client")
		client.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		client.Use(middleware.RequireRole("client"))
		{
			client.GET("/projects", a.handlers.Project.MyProjects)
			client.GET("/projects/:id", a.handlers.Project.MyProject)
			client.POST("/projects/:id/modifications", a.handlers.Project.SubmitModification)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/sections", a.handlers.Section.List)
			admin.GET("/sections/:id", a.handlers.Section.Get)
			admin.PUT("/sections/:id", a.handlers.Section.Update)

			admin.POST("/sections/:id/edit-session", a.handlers.EditSession.Open)
			session := admin.Group("/edit-sessions/:session")
			{
				session.GET("", a.handlers.EditSession.Get)
				session.PUT("/fields", a.handlers.EditSession.SetScalar)
				session.PUT("/images", a.handlers.EditSession.SetImages)
				session.POST("/features/draft", a.handlers.EditSession.StartDraft)
				session.PUT("/features/draft", a.handlers.EditSession.UpdateDraftField)
				session.POST("/features/draft/commit", a.handlers.EditSession.CommitDraft)
				session.DELETE("/features/draft", a.handlers.EditSession.DiscardDraft)
				session.POST("/features/select", a.handlers.EditSession.SelectEntry)
				session.PUT("/features/field", a.handlers.EditSession.UpdateEntryField)
				session.POST("/features/remove", a.handlers.EditSession.RemoveEntry)
				session.POST("/features/move", a.handlers.EditSession.MoveEntry)
				session.POST("/save", a.handlers.EditSession.Save)
				session.DELETE("", a.handlers.EditSession.Close)
			}

			admin.GET("/services", a.handlers.Catalog.ListAdmin)
			admin.POST("/services", a.handlers.Catalog.Create)
			admin.PUT("/services/:id", a.handlers.Catalog.Update)
			admin.DELETE("/services/:id", a.handlers.Catalog.Delete)

			admin.GET("/users", a.handlers.User.List)
			admin.GET("/users/:id", a.handlers.User.Get)
			admin.POST("/users", a.handlers.User.Create)
			admin.PUT("/users/:id", a.handlers.User.Update)
			admin.DELETE("/users/:id", a.handlers.User.Delete)
			admin.POST("/users/login-code", a.handlers.Auth.IssueLoginCode)

			admin.GET("/projects", a.handlers.Project.List)
			admin.GET("/projects/:id", a.handlers.Project.Get)
			admin.POST("/projects", a.handlers.Project.Create)
			admin.PUT("/projects/:id/phases/:phase", a.handlers.Project.UpdatePhase)
			admin.PUT("/projects/:id/status", a.handlers.Project.UpdateStatus)
			admin.DELETE("/projects/:id", a.handlers.Project.Delete)
			admin.GET("/modifications", a.handlers.Project.PendingModifications)
			admin.PUT("/modifications/:id", a.handlers.Project.ReviewModification)

			admin.GET("/quotations", a.handlers.Quotation.List)
			admin.GET("/quotations/:id", a.handlers.Quotation.Get)
			admin.PUT("/quotations/:id/status", a.handlers.Quotation.UpdateStatus)

			admin.POST("/upload", a.handlers.Upload.Upload)
			admin.POST("/upload/multiple", a.handlers.Upload.UploadMultiple)
			admin.DELETE("/upload", a.handlers.Upload.Delete)
		}
	}

	a.router = router
}
