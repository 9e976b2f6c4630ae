// Package cli は chartgen コマンドの実装です。
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/spf13/cobra"

	"github.com/shouni/chart-image-kit/pkg/adapters"
	"github.com/shouni/chart-image-kit/pkg/config"
	"github.com/shouni/chart-image-kit/pkg/generator"
)

// App は chartgen の CLI アプリケーションです。
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	configPath string
	outputDir  string
	format     string
	logLevel   string
	logJSON    bool

	httpClient   httpkit.ClientInterface
	newIOFactory ioFactoryFunc
}

// New は CLI アプリケーションを初期化します。
func New() *App {
	app := &App{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		httpClient:   httpkit.New(defaultHTTPTimeout),
		newIOFactory: newIOFactory,
	}

	app.root = &cobra.Command{
		Use:   "chartgen",
		Short: "Generate synthetic chart images with question/answer metadata",
		Long: `chartgen renders randomized charts (bar, pie, scatter, line, area, bubble,
stacked bars and areas, treemap, histogram, US choropleth), pads them to a square
canvas with a translucent overlay, and writes a JSON sidecar with the answer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(app.stderr, app.logLevel, app.logJSON)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	flags := app.root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Config file (.yaml, .yml or .json)")
	flags.StringVarP(&app.outputDir, "output-dir", "o", "", "Output directory (overrides config)")
	flags.StringVar(&app.format, "format", "", "Image format: png or jpg (overrides config)")
	flags.StringVar(&app.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.BoolVar(&app.logJSON, "log-json", false, "Write logs as JSON")

	app.root.AddCommand(
		app.newGenerateCmd(),
		app.newBatchCmd(),
		app.newNormalizeCmd(),
		app.newTypesCmd(),
	)

	return app
}

// WithOutput は出力先を差し替えます。
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute はシグナルを受けるとキャンセルされるコンテキストで CLI を実行します。
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs は引数を指定して CLI を実行します。
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// settings は設定ファイルとフラグから ChartCore の設定を組み立てます。
func (a *App) settings() (generator.Settings, error) {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.LoadFile(a.configPath)
		if err != nil {
			return generator.Settings{}, err
		}
		cfg = loaded
	}
	if a.outputDir != "" {
		cfg.OutputDir = a.outputDir
	}
	if a.format != "" {
		cfg.ImageFormat = a.format
	}
	if err := cfg.Validate(); err != nil {
		return generator.Settings{}, err
	}
	return cfg.Settings(), nil
}

func (a *App) newCore() (*generator.ChartCore, error) {
	s, err := a.settings()
	if err != nil {
		return nil, err
	}
	return generator.NewChartCore(adapters.NewChartRenderer(), s)
}

// newLogger は指定されたレベルと形式の slog.Logger を作ります。
func newLogger(w io.Writer, level string, asJSON bool) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lv}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
