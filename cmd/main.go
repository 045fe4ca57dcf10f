package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	widgetconfig "chat-widget/internal/config"
	"chat-widget/internal/controller"
	"chat-widget/internal/integrations/paramstore"
	"chat-widget/internal/integrations/widgetapi"
	"chat-widget/internal/ui/tui"
	"chat-widget/pkg/logging"
)

type options struct {
	configFile string
	baseURL    string
	logFile    string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "chat-widget",
		Short:         "Terminal chat widget for the support assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configFile, "config", "", "YAML config file")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "base URL of the chat endpoints (overrides config)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "log file path (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	// ---- Configuration ----
	cfg, err := widgetconfig.Load(opts.configFile)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	override(&cfg.LogFile, opts.logFile)
	override(&cfg.LogLevel, opts.logLevel)

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "open log")
	}
	defer func() { _ = closer.Close() }()

	// ---- Clients ----
	clientOpts := []widgetapi.Option{
		widgetapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		widgetapi.WithToken(cfg.APIToken),
	}
	var store baseURLSource
	if cfg.ParamPrefix != "" {
		params, err := newParamStore(ctx, cfg.ParamPrefix)
		if err != nil {
			return err
		}
		store = params
		clientOpts = append(clientOpts, widgetapi.WithTokenParameter(params, params.TokenParameter()))
	}
	cfg.BaseURL, err = resolveBaseURL(ctx, cfg, opts.baseURL, store)
	if err != nil {
		return errors.Wrap(err, "resolve base URL")
	}

	api, err := widgetapi.NewClient(cfg.BaseURL, clientOpts...)
	if err != nil {
		return errors.Wrap(err, "create widget api client")
	}

	// ---- Widget ----
	widget := tui.NewWidget()
	ctrl, err := controller.New(api, widget.View(), logger)
	if err != nil {
		return errors.Wrap(err, "create controller")
	}

	logger.Info("chat widget started", "base_url", cfg.BaseURL, "param_prefix", cfg.ParamPrefix)
	if err := tui.Run(ctx, ctrl, widget); err != nil && ctx.Err() == nil {
		logger.Error("terminal ui stopped", "err", err)
		return errors.Wrap(err, "run terminal ui")
	}
	logger.Info("chat widget stopped")
	return nil
}

// baseURLSource is satisfied by *paramstore.Client.
type baseURLSource interface {
	BaseURL(ctx context.Context) (string, error)
}

// resolveBaseURL picks the endpoint base URL: flag, then WIDGET_BASE_URL, then
// SSM when a parameter prefix is configured, then the config file or default.
func resolveBaseURL(ctx context.Context, cfg widgetconfig.Config, flagURL string, store baseURLSource) (string, error) {
	if v := strings.TrimSpace(flagURL); v != "" {
		return v, nil
	}
	if cfg.BaseURLFromEnv || store == nil {
		return cfg.BaseURL, nil
	}
	return store.BaseURL(ctx)
}

func newParamStore(ctx context.Context, prefix string) (*paramstore.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS config")
	}
	client, err := paramstore.New(awsssm.NewFromConfig(awsCfg), prefix)
	if err != nil {
		return nil, errors.Wrap(err, "create SSM client")
	}
	return client, nil
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
