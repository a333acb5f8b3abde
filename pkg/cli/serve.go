package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/finops-lab/compliancebot/pkg/cli/config"
	httpctrl "github.com/finops-lab/compliancebot/pkg/controller/http"
	"github.com/finops-lab/compliancebot/pkg/service/extract"
	"github.com/finops-lab/compliancebot/pkg/service/policy"
	"github.com/finops-lab/compliancebot/pkg/service/render"
	"github.com/finops-lab/compliancebot/pkg/usecase"
	"github.com/finops-lab/compliancebot/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var documentDir string
	var templateDir string
	var thinkTimeMin time.Duration
	var thinkTimeSpan time.Duration
	var callTimeout time.Duration
	var repoCfg config.Repository
	var slackCfg config.Slack
	var openaiCfg config.OpenAI

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("COMPLIANCEBOT_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public base URL used in generated document links (e.g., https://your-domain.com)",
			Sources:     cli.EnvVars("COMPLIANCEBOT_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.StringFlag{
			Name:        "document-dir",
			Usage:       "Directory generated PDF documents are written to and served from",
			Value:       "pdf/generated",
			Sources:     cli.EnvVars("COMPLIANCEBOT_DOCUMENT_DIR"),
			Destination: &documentDir,
		},
		&cli.StringFlag{
			Name:        "template-dir",
			Usage:       "Directory of sector policy templates (<sector>.txt)",
			Value:       "templates",
			Sources:     cli.EnvVars("COMPLIANCEBOT_TEMPLATE_DIR"),
			Destination: &templateDir,
		},
		&cli.DurationFlag{
			Name:        "think-time-min",
			Usage:       "Minimum simulated processing pause between workflow messages",
			Value:       usecase.DefaultThinkTimeMin,
			Sources:     cli.EnvVars("COMPLIANCEBOT_THINK_TIME_MIN"),
			Destination: &thinkTimeMin,
		},
		&cli.DurationFlag{
			Name:        "think-time-span",
			Usage:       "Random span added on top of the minimum pause",
			Value:       usecase.DefaultThinkTimeSpan,
			Sources:     cli.EnvVars("COMPLIANCEBOT_THINK_TIME_SPAN"),
			Destination: &thinkTimeSpan,
		},
		&cli.DurationFlag{
			Name:        "call-timeout",
			Usage:       "Timeout for each outbound collaborator call",
			Value:       usecase.DefaultCallTimeout,
			Sources:     cli.EnvVars("COMPLIANCEBOT_CALL_TIMEOUT"),
			Destination: &callTimeout,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack service")
			}

			renderer, err := render.New(documentDir)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize document renderer")
			}

			uc := usecase.New(repo, slackSvc,
				usecase.WithExtractor(extract.New()),
				usecase.WithRenderer(renderer),
				usecase.WithTemplates(policy.NewTemplateLoader(templateDir)),
				usecase.WithRuleExtractor(openaiCfg.Configure()),
				usecase.WithBaseURL(baseURL),
				usecase.WithThinkTime(thinkTimeMin, thinkTimeSpan),
				usecase.WithCallTimeout(callTimeout),
			)

			server, err := httpctrl.New(
				httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(uc), slackCfg.SigningSecret()),
				httpctrl.WithDocumentDir(documentDir),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize HTTP server")
			}

			logger.Info("Starting HTTP server",
				"addr", addr,
				"base_url", baseURL,
				"repository", repoCfg,
				"slack", slackCfg,
				"openai", openaiCfg,
			)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serveCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "HTTP server failed")
				}
			case <-serveCtx.Done():
				logger.Info("Shutting down HTTP server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown HTTP server")
				}
			}

			return nil
		},
	}
}
