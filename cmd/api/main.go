package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appauthor "github.com/xiebiao/library/internal/application/author"
	appbook "github.com/xiebiao/library/internal/application/book"
	apptx "github.com/xiebiao/library/internal/application/transaction"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire配置，可用wire gen生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化事件发布（未启用MQ时降级为本地日志）
	var eventPublisher apptx.EventPublisher = apptx.NoopPublisher{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer publisher.Close()
		eventPublisher = apptx.NewAMQPPublisher(publisher)
	}

	// 6. 依赖注入（手动组装）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	txRepo := mysql.NewTransactionRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	availabilityService := book.NewAvailabilityService(bookRepo, txRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	createAdminUseCase := appuser.NewCreateAdminUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	getUserUseCase := appuser.NewGetUserUseCase(userRepo)
	updateUserUseCase := appuser.NewUpdateUserUseCase(userRepo, userService)
	listUsersUseCase := appuser.NewListUsersUseCase(userRepo)
	deleteUserUseCase := appuser.NewDeleteUserUseCase(userRepo)

	authorUseCase := appauthor.NewManageAuthorUseCase(authorRepo, bookRepo)
	bookUseCase := appbook.NewManageBookUseCase(bookRepo, authorRepo, txRepo)
	availabilityUseCase := appbook.NewAvailabilityUseCase(availabilityService, bookRepo)

	borrowUseCase := apptx.NewBorrowBookUseCase(bookRepo, txRepo, txManager, eventPublisher)
	returnUseCase := apptx.NewReturnBookUseCase(txRepo, bookRepo, eventPublisher)
	queryTxUseCase := apptx.NewQueryTransactionsUseCase(txRepo)
	correctTxUseCase := apptx.NewCorrectTransactionUseCase(txRepo, txManager)

	// 接口层
	userHandler := handler.NewUserHandler(
		registerUseCase, createAdminUseCase, loginUseCase, logoutUseCase,
		getUserUseCase, updateUserUseCase, listUsersUseCase, deleteUserUseCase,
	)
	authorHandler := handler.NewAuthorHandler(authorUseCase)
	bookHandler := handler.NewBookHandler(bookUseCase, availabilityUseCase)
	txHandler := handler.NewTransactionHandler(borrowUseCase, returnUseCase, queryTxUseCase, correctTxUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 8. 注册路由
	registerRoutes(r, userHandler, authorHandler, bookHandler, txHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/healthz\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	authorHandler *handler.AuthorHandler,
	bookHandler *handler.BookHandler,
	txHandler *handler.TransactionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "healthy"})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（生产环境建议禁用或加访问控制）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块（公开接口）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 用户模块
		users := v1.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", userHandler.GetMe)
			users.GET("/:id", userHandler.Get)
			users.PATCH("/:id", userHandler.Update)

			// 仅管理员
			users.GET("", authMiddleware.RequireAdmin(), userHandler.List)
			users.POST("", authMiddleware.RequireAdmin(), userHandler.Create)
			users.DELETE("/:id", authMiddleware.RequireAdmin(), userHandler.Delete)
		}

		// 作者模块（查询公开，管理需要管理员）
		authors := v1.Group("/authors")
		{
			authors.GET("", authorHandler.List)
			authors.GET("/:id", authorHandler.Get)

			admin := authors.Group("")
			admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			{
				admin.POST("", authorHandler.Create)
				admin.PATCH("/:id", authorHandler.Update)
				admin.DELETE("/:id", authorHandler.Delete)
			}
		}

		// 图书模块（查询公开，管理需要管理员）
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)
			books.GET("/:id/availability", bookHandler.Availability)

			admin := books.Group("")
			admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			{
				admin.POST("", bookHandler.Create)
				admin.PATCH("/:id", bookHandler.Update)
				admin.DELETE("/:id", bookHandler.Delete)
			}
		}

		// 按ISBN查询可借情况（公开）
		v1.GET("/isbn/:isbn/availability", bookHandler.AvailabilityByISBN)

		// 借阅模块（全部需要登录）
		transactions := v1.Group("/transactions")
		transactions.Use(authMiddleware.RequireAuth())
		{
			transactions.POST("/borrow", txHandler.Borrow)
			transactions.POST("/:id/return", txHandler.Return)
			transactions.GET("", txHandler.List)
			transactions.GET("/:id", txHandler.Get)

			// 台账修正（仅管理员）
			transactions.PATCH("/:id", authMiddleware.RequireAdmin(), txHandler.Correct)
			transactions.DELETE("/:id", authMiddleware.RequireAdmin(), txHandler.Delete)
		}
	}
}
