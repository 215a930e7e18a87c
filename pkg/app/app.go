// Package app 提供应用程序的初始化和启动.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/assetvault/pkg/api"
	"github.com/yeisme/assetvault/pkg/configs"
	"github.com/yeisme/assetvault/pkg/internal/storage"
	"github.com/yeisme/assetvault/pkg/log"
	"github.com/yeisme/assetvault/pkg/mail"
	"github.com/yeisme/assetvault/pkg/metrics"
	"github.com/yeisme/assetvault/pkg/middleware"
	"github.com/yeisme/assetvault/pkg/token"
)

// App 聚合运行一个实例所需的全部组件.
type App struct {
	Engine  *gin.Engine
	Storage *storage.Manager
	config  *configs.AppConfig
}

// NewApp 初始化配置、日志、监控、存储和路由.
func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	log.Init()

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx, config)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.PrometheusMiddleware(),
	)

	metrics.RegisterMetricsRoutes(config.Metrics, engine)

	tokens := token.NewManager(config.Auth.JWTSecret, config.Auth.GetTokenTTL(), config.Auth.Issuer)

	api.RegisterRoutes(engine, manager, config, tokens)

	// 邮件通知订阅事件总线
	notifier := mail.NewNotifier(mail.NewSender(config.Mail), config.Mail.DashboardURL)
	if err := notifier.Start(ctx, manager.GetMQClient()); err != nil {
		l.Warn().Err(err).Msg("邮件通知器启动失败，继续运行")
	}

	return &App{
		Engine:  engine,
		Storage: manager,
		config:  config,
	}
}

// Run 启动 HTTP 服务并在收到 SIGINT/SIGTERM 时优雅退出.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
	}

	ctx, stop := signal.NotifyContext(contextPkg.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Logger().Info().Str("addr", srv.Addr).Msg("HTTP 服务启动")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := contextPkg.WithTimeout(contextPkg.Background(), a.config.Server.GetTimeoutDuration())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		return a.Storage.Close()
	})

	return g.Wait()
}
