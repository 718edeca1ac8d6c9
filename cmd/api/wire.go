//go:build wireinject
// +build wireinject

// wire.go Wire依赖注入配置
// 说明：main.go中的手动组装与这里等价；运行 `wire gen ./cmd/api` 可生成wire_gen.go
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appauthor "github.com/xiebiao/library/internal/application/author"
	appbook "github.com/xiebiao/library/internal/application/book"
	apptx "github.com/xiebiao/library/internal/application/transaction"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/transaction"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/mq"
)

// infrastructureSet 基础设施层Provider
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层Provider
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewAuthorRepository,
	mysql.NewBookRepository,
	mysql.NewTransactionRepository,
	mysql.NewTxManager,
	provideTransactor,
)

// domainSet 领域层Provider
var domainSet = wire.NewSet(
	user.NewService,
	provideAvailabilityService,
)

// applicationSet 应用层Provider
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewCreateAdminUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewGetUserUseCase,
	appuser.NewUpdateUserUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewDeleteUserUseCase,
	appauthor.NewManageAuthorUseCase,
	appbook.NewManageBookUseCase,
	appbook.NewAvailabilityUseCase,
	apptx.NewBorrowBookUseCase,
	apptx.NewReturnBookUseCase,
	apptx.NewQueryTransactionsUseCase,
	apptx.NewCorrectTransactionUseCase,
	provideEventPublisher,
)

// middlewareSet 中间件Provider
var middlewareSet = wire.NewSet(
	provideJWTManager,
	redis.NewSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet 接口层Provider
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewAuthorHandler,
	handler.NewBookHandler,
	handler.NewTransactionHandler,
)

// provideJWTManager 从配置构造JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideAvailabilityService 借阅台账充当可借数量推导的计数来源
func provideAvailabilityService(bookRepo book.Repository, txRepo transaction.Repository) *book.AvailabilityService {
	return book.NewAvailabilityService(bookRepo, txRepo)
}

// provideTransactor 事务管理器绑定到应用层接口
func provideTransactor(tm *mysql.TxManager) apptx.Transactor {
	return tm
}

// provideEventPublisher 未启用MQ时降级为本地日志
func provideEventPublisher(cfg *config.Config) (apptx.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return apptx.NoopPublisher{}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return nil, err
	}
	return apptx.NewAMQPPublisher(publisher), nil
}

// provideGinEngine 构造Gin引擎并注册路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authorHandler *handler.AuthorHandler,
	bookHandler *handler.BookHandler,
	txHandler *handler.TransactionHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, userHandler, authorHandler, bookHandler, txHandler, authMiddleware)
	return r
}

// InitializeApp 组装整个应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
