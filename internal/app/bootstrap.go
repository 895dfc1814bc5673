package app

import (
	"errors"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/provider"
	"github.com/rasoi-next/internal/router"
	"github.com/rasoi-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, *provider.Container, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, nil, err
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, nil, errors.New("worker mode requires queue.enabled")
	}

	container := provider.NewContainer(cfg)

	var services []Service
	if servesAPI(mode) {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
	}

	switch {
	case cfg.Queue.Enabled && (mode == ModeAll || mode == ModeWorker):
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			container.Close()
			return nil, nil, err
		}
		services = append(services, workerService)
	case container.TimerScheduler != nil && servesAPI(mode):
		// 无队列时订单推进随接口进程运行
		logger.Infow("app_worker_skipped", "reason", "queue_disabled", "scheduler", "timer")
		services = append(services, NewOrderProgressService(container.OrderService, container.TimerScheduler))
	}

	if len(services) == 0 {
		container.Close()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), container, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if _, err := ParseMode(opts.Mode); err != nil {
		return err
	}
	opts = normalizeOptions(opts)

	runner, container, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer container.Close()

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config.Server),
		"mode", opts.Mode,
		"services", runner.Names(),
	)
	return RunWithOptions(runner, opts)
}
