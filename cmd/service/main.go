package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/strenvy/strenvy/internal"
	"github.com/strenvy/strenvy/internal/config"
	"github.com/strenvy/strenvy/internal/logging"
)

func main() {
	env := flag.String("env", "development", "environment to run in [development, production]")
	configPath := flag.String("config", "config.toml", "path to the toml config file")
	logFileName := flag.String("logs-path", "", "server logs file path (empty for stdout only)")
	logLevel := flag.String("log-level", "trace", "log level [trace, debug, info, warn, error]")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Printf("load config: %s\n", err)
		os.Exit(1)
	}
	if *logFileName == "" {
		*logFileName = cfg.LogsPath
	}
	if *logLevel == "" {
		*logLevel = cfg.LogLevel
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      *logFileName,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         *logLevel,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "strenvy-backend",
	})

	adminUsername := os.Getenv("STRENVY_ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("STRENVY_ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		log.Fatalln("admin username or password hash empty, aborting")
	}

	redisPassword := os.Getenv("STRENVY_REDIS_PASS")
	if redisPassword == "" {
		log.Warnln("redis password not set")
	}

	log.Infof("starting strenvy backend, env: %s", cfg.Environment)

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:            cfg,
		VersionInfo:       versionInfo(),
		AdminUsername:     adminUsername,
		AdminPasswordHash: adminPasswordHash,
		RedisPassword:     redisPassword,
	})
	if err != nil {
		log.Fatalf("create server: %s", err)
	}

	go server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("interrupt signal received [%s], shutting down ...", receivedSig)
	cancel()
	server.GracefulShutdown()
}

func versionInfo() string {
	commitHash, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("get last commit hash: %s", err)
		return "unknown"
	}
	return commitHash
}

func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
