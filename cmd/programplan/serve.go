package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Peezy0/Accel1/internal/config"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// runServe 启动 HTTP 服务，收到信号或主菜单关闭后优雅退出
func runServe(cmd *cobra.Command) error {
	cfg := config.GlobalConfig
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap(ctx, cfg, bootstrapOptions{
		resetProficiencies: cfg.Database.ResetProficiencies,
		external:           true,
	})
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	closeRequested := make(chan struct{})
	var once sync.Once
	shutdown := func() {
		once.Do(func() { close(closeRequested) })
	}

	srv := &http.Server{
		Addr:    cfg.GetServerAddr(),
		Handler: app.router(shutdown),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("服务器启动", "addr", srv.Addr, "mode", cfg.Server.Mode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		slog.Info("收到退出信号")
	case <-closeRequested:
		slog.Info("主菜单请求关闭")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("服务器已停止")
	return nil
}
