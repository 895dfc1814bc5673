package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/rasoi-next/internal/app"
	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiYellow = "\033[33m"
)

func main() {
	// 解析命令行参数
	var mode string
	var envFile string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.StringVar(&envFile, "env", ".env", "环境变量文件路径")
	flag.Parse()

	printStartupBanner(mode)

	// .env 不存在时直接使用进程环境变量
	envLoaded := godotenv.Load(envFile) == nil

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if envLoaded {
		logger.Infow("env_file_loaded", "file", envFile)
	}

	checkSecret(stdLog.Fatalf, stdLog.Printf, cfg.Server.Mode, "jwt.secret", cfg.JWT.SecretKey)
	checkSecret(stdLog.Fatalf, stdLog.Printf, cfg.Server.Mode, "user_jwt.secret", cfg.UserJWT.SecretKey)

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认店主账号
	defaultAdminUser := os.Getenv("RASOI_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("RASOI_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("警告: 未设置 RASOI_DEFAULT_ADMIN_PASSWORD，已跳过默认店主初始化")
	} else if err := models.InitDefaultAdmin(defaultAdminUser, defaultAdminPass); err != nil {
		stdLog.Printf("警告: 初始化默认店主失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

// checkSecret 生产环境拒绝弱密钥，其它环境仅告警
func checkSecret(fatalf, printf func(string, ...interface{}), mode, name, secret string) {
	if !isWeakSecret(secret) {
		return
	}
	if mode == "release" {
		fatalf("%s 过弱或仍为默认值，请在生产环境中配置强随机密钥", name)
		return
	}
	printf("警告: %s 过弱或仍为默认值，建议在生产环境中更换", name)
}

func printStartupBanner(mode string) {
	fmt.Println(ansiYellow + ansiBold + "Rasoi Kitchen API" + ansiReset)
	fmt.Println(ansiDim + "mode: " + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
