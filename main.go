package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/heliostat/heliostat/internal/config"
	"github.com/heliostat/heliostat/internal/logging"
	"github.com/heliostat/heliostat/internal/proxy"
	"github.com/heliostat/heliostat/internal/server"
	"github.com/heliostat/heliostat/internal/server/routes"
	"github.com/heliostat/heliostat/internal/stats"
	"github.com/heliostat/heliostat/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["logs"] = len(cfg.Logs)
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	registry, err := server.NewLogRegistry(cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "构建日志源注册表失败: %v\n", err)
		return 1
	}

	// 启动遵循“配置 → LogRegistry → 统计注册表 → Fiber server”顺序，
	// 所有监听器共享同一组缓存/统计实例，方便观察 cache/log 指标。
	statsRegistry := stats.NewRegistry()
	promRegistry := prometheus.NewRegistry()
	if err := statsRegistry.Register(promRegistry); err != nil {
		fmt.Fprintf(stdErr, "注册统计指标失败: %v\n", err)
		return 1
	}
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpClient := server.NewUpstreamClient(cfg)
	handler := proxy.NewHandler(httpClient, logger, statsRegistry, version.UserAgent(cfg.ScraperContactEmail))

	fields := logging.BaseFields("startup", opts.configPath)
	fields["logs"] = cfg.LogNames()
	fields["http_port"] = cfg.HTTPPort
	fields["https_port"] = cfg.HTTPSPort
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startServers(cfg, registry, handler, statsRegistry, promRegistry, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("heliostat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.yaml，可被 HELIOSTAT_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("HELIOSTAT_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.yaml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

// startServers 按配置启动 HTTP/HTTPS 监听器；任意一个返回即整体退出。
func startServers(
	cfg *config.Config,
	registry *server.LogRegistry,
	handler server.ProxyHandler,
	statsRegistry *stats.Registry,
	promRegistry *prometheus.Registry,
	logger *logrus.Logger,
) error {
	buildApp := func() (*fiber.App, error) {
		app, err := server.NewApp(server.AppOptions{
			Logger:   logger,
			Registry: registry,
			Proxy:    handler,
		})
		if err != nil {
			return nil, err
		}
		routes.RegisterStatisticsRoute(app, statsRegistry)
		routes.RegisterMetricsRoute(app, promRegistry)
		routes.RegisterTorrentRoutes(app, cfg.TorrentDir)
		return app, nil
	}

	group := new(errgroup.Group)
	started := false

	if cfg.HTTPPort > 0 {
		app, err := buildApp()
		if err != nil {
			return err
		}
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		logger.WithFields(logrus.Fields{
			"action": "listen",
			"addr":   addr,
			"scheme": "http",
		}).Info("Fiber 服务启动")
		group.Go(func() error { return app.Listen(addr) })
		started = true
	}

	if cfg.HTTPSPort > 0 {
		if cfg.HasTLS() {
			app, err := buildApp()
			if err != nil {
				return err
			}
			addr := fmt.Sprintf(":%d", cfg.HTTPSPort)
			logger.WithFields(logrus.Fields{
				"action": "listen",
				"addr":   addr,
				"scheme": "https",
			}).Info("Fiber 服务启动")
			group.Go(func() error {
				return app.Listen(addr, fiber.ListenConfig{
					CertFile:    cfg.TLSCert,
					CertKeyFile: cfg.TLSKey,
				})
			})
			started = true
		} else {
			logger.WithFields(logrus.Fields{
				"action": "listen",
				"port":   cfg.HTTPSPort,
			}).Warn("https_port 已配置但缺少 tls_cert/tls_key，跳过 HTTPS 监听")
		}
	}

	if !started {
		return errors.New("没有任何监听器启动，请检查端口配置")
	}

	return group.Wait()
}
