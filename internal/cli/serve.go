package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/studio/internal/coda"
	"github.com/jmylchreest/studio/internal/colour"
	"github.com/jmylchreest/studio/internal/config"
	"github.com/jmylchreest/studio/internal/image"
	"github.com/jmylchreest/studio/internal/portfolio"
	"github.com/jmylchreest/studio/internal/revalidate"
	"github.com/jmylchreest/studio/internal/security"
	"github.com/jmylchreest/studio/internal/theme"
	"github.com/jmylchreest/studio/internal/web"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website",
	Long: `Run the website and its JSON API.

CODA_API_TOKEN and CODA_DOC_ID must be set in the environment or the
--env-file; the server refuses to start without them.

Examples:
  # Serve on the configured address (STUDIO_ADDR, default :8080)
  studio serve

  # Serve on another port with debug logging
  studio serve --addr :9000 -v`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd.Flags())
}

func addServeFlags(fs *pflag.FlagSet) {
	fs.StringVar(&serveAddr, "addr", "", "listen address; overrides STUDIO_ADDR")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	logger := newLogger(cfg.LogLevel)
	server, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx)
}

// buildServer wires the upstream client, the theme pipeline and the cache
// revision into a web server.
func buildServer(cfg *config.Config, logger hclog.Logger) (*web.Server, error) {
	client, err := newCodaClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	service := portfolio.NewService(client, portfolio.NewMapper(nil), logger.Named("portfolio"))

	loader := image.NewRemoteLoader(hostPolicy(cfg), cfg.HTTPTimeout)
	composer, err := newComposer(cfg.Theme.Algorithm, loader, logger)
	if err != nil {
		return nil, err
	}

	mode, _ := theme.ParseMode(cfg.Theme.DefaultMode)
	rev := revalidate.New(cfg.PurgeURL, cfg.HTTPTimeout, logger.Named("revalidate"))

	return web.NewServer(web.Options{
		Addr:          cfg.Addr,
		AdminPassword: cfg.AdminPassword,
		BriefingURL:   cfg.BriefingURL,
		DefaultMode:   mode,
		Logger:        logger.Named("http"),
	}, service, composer, rev), nil
}

func newCodaClient(cfg *config.Config, logger hclog.Logger) (*coda.Client, error) {
	client, err := coda.New(coda.Options{
		BaseURL: cfg.Coda.BaseURL,
		Token:   cfg.Coda.Token,
		DocID:   cfg.Coda.DocID,
		TableID: cfg.Coda.TableID,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger.Named("coda"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create coda client: %w", err)
	}
	return client, nil
}

func hostPolicy(cfg *config.Config) security.HostPolicy {
	return security.HostPolicy{
		Allowed:      cfg.Theme.AllowedHosts,
		AllowPrivate: cfg.Theme.AllowPrivate,
	}
}

func newComposer(algorithm string, loader image.Loader, logger hclog.Logger) (*theme.Composer, error) {
	extractor, err := colour.NewExtractor(colour.Algorithm(algorithm))
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	return theme.NewComposer(loader, extractor, logger.Named("theme")), nil
}
