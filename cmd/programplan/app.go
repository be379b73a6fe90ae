package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Peezy0/Accel1/internal/config"
	"github.com/Peezy0/Accel1/internal/flow"
	"github.com/Peezy0/Accel1/internal/forms"
	"github.com/Peezy0/Accel1/internal/graph"
	"github.com/Peezy0/Accel1/internal/metrics"
	"github.com/Peezy0/Accel1/internal/models"
	"github.com/Peezy0/Accel1/internal/oss"
	"github.com/Peezy0/Accel1/internal/routers"
	"github.com/Peezy0/Accel1/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// application 一次进程运行所需的全部依赖
type application struct {
	cfg       *config.Config
	db        *gorm.DB
	graph     *graph.Neo4jClient
	plan      *services.PlanService
	export    *services.ExportService
	metrics   *metrics.Collector
	logCloser io.Closer
}

// bootstrapOptions 不同子命令的启动差异
type bootstrapOptions struct {
	// resetProficiencies 为 false 时不清空能力表，只读命令使用
	resetProficiencies bool
	// external 是否连接图数据库和对象存储
	external bool
}

// bootstrap 初始化日志、数据库和可选的外部服务
func bootstrap(ctx context.Context, cfg *config.Config, opts bootstrapOptions) (*application, error) {
	logger, closer, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	app := &application{
		cfg:       cfg,
		metrics:   metrics.NewCollector(),
		logCloser: closer,
	}

	// 初始化数据库
	app.db, err = models.OpenDB(cfg)
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("数据库初始化失败: %w", err)
	}

	// 建表，按配置清空能力表
	if err := models.ResetSchema(app.db, opts.resetProficiencies); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("数据库表迁移失败: %w", err)
	}

	var mirror services.CurriculumMirror
	if opts.external && cfg.GraphDatabase.Enabled {
		client, err := graph.NewNeo4jClient(ctx, cfg.GraphDatabase.Neo4j)
		if err != nil {
			slog.Warn("图数据库不可用，跳过课程图谱同步", "error", err)
		} else {
			app.graph = client
			mirror = graph.NewCurriculumGraphService(client)
			slog.Info("图数据库连接成功", "uri", cfg.GraphDatabase.Neo4j.URI)
		}
	}
	app.plan = services.NewPlanService(app.db, mirror, app.metrics)

	if opts.external && cfg.OSS.Enabled {
		app.export = newExportService(ctx, cfg.OSS, app.plan)
	}

	return app, nil
}

// newExportService 连接对象存储并确保存储桶存在，失败时返回 nil
func newExportService(ctx context.Context, cfg config.OSSConfig, plan *services.PlanService) *services.ExportService {
	client, err := oss.NewOSSClient(cfg)
	if err != nil {
		slog.Warn("对象存储初始化失败，导出功能不可用", "error", err)
		return nil
	}
	if err := client.CreateBucket(ctx, cfg.BucketName); err != nil {
		slog.Warn("创建存储桶失败，导出功能不可用", "bucket", cfg.BucketName, "error", err)
		return nil
	}
	slog.Info("对象存储已就绪", "address", cfg.Address, "bucket", cfg.BucketName)
	return services.NewExportService(plan, client, cfg.BucketName, cfg.ExportPrefix, time.Duration(cfg.LinkTTL)*time.Second)
}

// router 创建 HTTP 路由，shutdown 在主菜单关闭时调用
func (a *application) router(shutdown func()) *gin.Engine {
	gin.SetMode(a.cfg.Server.Mode)
	r := gin.Default()

	registry := forms.NewRegistry(a.plan)
	routers.RoutersInit(r, routers.Deps{
		Plan:      a.plan,
		Sessions:  flow.NewStore(),
		Navigator: flow.NewNavigator(a.plan, registry, shutdown),
		Export:    a.export,
		Metrics:   a.metrics,
	})
	return r
}

// close 释放所有连接
func (a *application) close(ctx context.Context) {
	if a.graph != nil {
		if err := a.graph.Close(ctx); err != nil {
			slog.Warn("关闭图数据库连接失败", "error", err)
		}
	}
	if a.db != nil {
		if err := models.CloseDB(a.db); err != nil {
			slog.Warn("关闭数据库失败", "error", err)
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
