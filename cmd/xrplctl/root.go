// cmd/xrplctl/root.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/internal/config"
	"github.com/rovshanmuradov/xrpl-sdk/internal/logger"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/cache"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/transaction"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/wallet"
)

type globalFlags struct {
	ConfigPath  string
	WalletKey   string
	MetricsAddr string
	Debug       bool
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:           "xrplctl",
	Short:         "XRP Ledger command line client",
	Long:          "Build, sign and reliably submit XRP Ledger transactions, and query accounts, ledgers and transactions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "config file (yaml, json or toml); XRPL_SDK_* variables override it")
	rootCmd.PersistentFlags().StringVar(&flags.WalletKey, "key", "", "hex private key used for signing (overrides wallet_key)")
	rootCmd.PersistentFlags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the command runs")
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "debug logging")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(walletCmd)
}

// app holds everything a command needs to talk to the ledger.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	client  clients.LedgerClient
	cache   *cache.LookupCache
	metrics *transaction.Metrics
	server  *http.Server
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging || flags.Debug
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	client, err := dialPool(ctx, cfg, log.Logger)
	if err != nil {
		return nil, err
	}
	client.SetMetrics(clients.NewPoolMetrics(reg))

	lookups, err := cache.New(ctx, cache.Config{MaxSizeMB: cfg.CacheSizeMB}, log.Logger)
	if err != nil {
		client.Close()
		return nil, err
	}

	a := &app{cfg: cfg, log: log, client: client, cache: lookups}
	a.metrics = transaction.NewMetrics(reg)
	if flags.MetricsAddr != "" {
		a.serveMetrics(reg)
	}
	return a, nil
}

func dialPool(ctx context.Context, cfg *config.Config, log *zap.Logger) (*clients.Pool, error) {
	var nodes []*clients.Node
	for _, endpoint := range cfg.Endpoints() {
		client, err := clients.Dial(ctx, endpoint, log)
		if err != nil {
			log.Warn("Skipping endpoint", zap.String("url", endpoint), zap.Error(err))
			continue
		}
		nodes = append(nodes, clients.NewNode(endpoint, client))
	}
	if len(nodes) == 0 {
		return nil, clients.ErrNoActiveClients
	}
	return clients.NewPool(log, nodes...), nil
}

func (a *app) serveMetrics(reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.server = &http.Server{Addr: flags.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.LogError("Metrics server failed", err)
		}
	}()
	a.log.Info("Serving metrics", zap.String("addr", flags.MetricsAddr))
}

// options returns the submission options derived from the config.
func (a *app) options() []transaction.Option {
	return []transaction.Option{
		transaction.WithFee(a.cfg.DefaultFee),
		transaction.WithLedgerOffset(uint32(a.cfg.LedgerOffset)),
		transaction.WithPollInterval(a.cfg.PollInterval()),
		transaction.WithMaxAttempts(a.cfg.MaxAttempts),
		transaction.WithTransientRetries(a.cfg.TransientRetries, transaction.DefaultRetryInterval),
		transaction.WithLogger(a.log.Logger),
		transaction.WithMetrics(a.metrics),
		transaction.WithCache(a.cache),
	}
}

func (a *app) wallet() (*wallet.Wallet, error) {
	key := flags.WalletKey
	if key == "" {
		key = a.cfg.WalletKey
	}
	if key == "" {
		return nil, errors.New("no signing key: set --key or wallet_key")
	}
	return wallet.FromPrivateKeyHex(key)
}

func (a *app) Close() {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.server.Shutdown(ctx)
	}
	if err := a.cache.Close(); err != nil {
		a.log.LogError("Failed to close cache", err)
	}
	if err := a.client.Close(); err != nil {
		a.log.LogError("Failed to close client", err)
	}
	_ = a.log.Sync()
}

// withApp runs fn with a connected app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
