package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	GraphDatabase GraphDatabaseConfig `mapstructure:"graph_database"`
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	OSS           OSSConfig           `mapstructure:"oss"`
}

// OSSConfig 对象存储配置（用于导出历史记录快照）
type OSSConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Address       string `mapstructure:"address"`
	PublicAddress string `mapstructure:"public_address"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	BucketName    string `mapstructure:"bucket_name"`
	ExportPrefix  string `mapstructure:"export_prefix"`
	LinkTTL       int    `mapstructure:"link_ttl"` // 预签名链接有效期（秒）
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type   string       `mapstructure:"type"`
	MySQL  MySQLConfig  `mapstructure:"mysql"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`

	// ResetProficiencies 启动时是否清空能力表（沿用旧版行为，默认开启）
	ResetProficiencies bool `mapstructure:"reset_proficiencies"`
}

// MySQLConfig MySQL配置
type MySQLConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	DBName    string `mapstructure:"dbname"`
	Charset   string `mapstructure:"charset"`
	ParseTime bool   `mapstructure:"parseTime"`
	Loc       string `mapstructure:"loc"`
}

// SQLiteConfig SQLite配置
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// GraphDatabaseConfig 图数据库配置
type GraphDatabaseConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Neo4j   Neo4jConfig `mapstructure:"neo4j"`
}

// Neo4jConfig Neo4j配置
type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var GlobalConfig *Config

// InitConfig 初始化配置
// configPath 为空或文件不存在时只使用默认值和环境变量
func InitConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	GlobalConfig = cfg
	return nil
}

// Load 读取配置文件并返回新的配置对象，不修改全局配置
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 设置默认值
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
			slog.Warn("配置文件不存在，使用默认配置", "path", configPath)
		} else {
			slog.Info("配置文件加载成功", "path", configPath)
		}
	}

	// 解析配置到结构体
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return cfg, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// 数据库默认配置
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.reset_proficiencies", true)
	v.SetDefault("database.mysql.host", "localhost")
	v.SetDefault("database.mysql.port", 3306)
	v.SetDefault("database.mysql.charset", "utf8mb4")
	v.SetDefault("database.mysql.parseTime", true)
	v.SetDefault("database.mysql.loc", "Local")
	v.SetDefault("database.sqlite.path", "./projectbase.db")

	// 服务器默认配置
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")

	// 对象存储默认配置
	v.SetDefault("oss.enabled", false)
	v.SetDefault("oss.bucket_name", "program-plans")
	v.SetDefault("oss.export_prefix", "past-work/")
	v.SetDefault("oss.link_ttl", 3600)

	// 图数据库默认配置
	v.SetDefault("graph_database.enabled", false)
	v.SetDefault("graph_database.neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("graph_database.neo4j.username", "neo4j")
	v.SetDefault("graph_database.neo4j.password", "password")
	v.SetDefault("graph_database.neo4j.database", "neo4j")
}

// GetDatabaseDSN 根据配置类型获取数据库连接字符串
func (c *Config) GetDatabaseDSN() (string, error) {
	switch c.Database.Type {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
			c.Database.MySQL.Username,
			c.Database.MySQL.Password,
			c.Database.MySQL.Host,
			c.Database.MySQL.Port,
			c.Database.MySQL.DBName,
			c.Database.MySQL.Charset,
			c.Database.MySQL.ParseTime,
			c.Database.MySQL.Loc,
		), nil
	case "sqlite":
		return c.Database.SQLite.Path, nil
	default:
		return "", fmt.Errorf("不支持的数据库类型: %s", c.Database.Type)
	}
}

// GetServerAddr 获取服务器地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
