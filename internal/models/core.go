package models

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Peezy0/Accel1/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB 根据配置建立数据库连接
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	dsn, err := cfg.GetDatabaseDSN()
	if err != nil {
		return nil, err
	}

	// 根据配置选择数据库类型
	switch cfg.Database.Type {
	case "mysql":
		dialector = mysql.Open(dsn)
		slog.Info("使用MySQL数据库", "host", cfg.Database.MySQL.Host, "dbname", cfg.Database.MySQL.DBName)
	case "sqlite":
		// 确保SQLite数据库目录存在
		if err := ensureDir(filepath.Dir(dsn)); err != nil {
			return nil, fmt.Errorf("创建SQLite数据库目录失败: %w", err)
		}
		dialector = sqlite.Open(dsn)
		slog.Info("使用SQLite数据库", "path", dsn)
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Database.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.Log.Level)),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库实例失败: %w", err)
	}
	if cfg.Database.Type == "mysql" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// 单文件数据库只允许一个写连接
		sqlDB.SetMaxOpenConns(1)
	}

	slog.Info("数据库连接成功")
	return db, nil
}

// CloseDB 关闭底层连接
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogLevel 将日志级别映射为 gorm 的日志级别
func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// ensureDir 确保目录存在
func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
