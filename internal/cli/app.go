package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/domain"
	"timelog/internal/logging"
	"timelog/internal/validation"
)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	clock       domain.Clock
	out         io.Writer
	renderer    *Renderer
	registry    *CommandRegistry
}

// NewApp creates a new CLI application writing to out. A nil config uses
// the defaults and a nil writer stdout.
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	return NewAppWithClock(businessAPI, cfg, out, domain.SystemClock{})
}

// NewAppWithClock is NewApp with an injected clock.
func NewAppWithClock(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer, clock domain.Clock) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		clock:       clock,
		out:         out,
		renderer:    NewRenderer(out, cfg.Display),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the command named by args[0] with its default options.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	logging.FromContext(ctx).Debug("running command", "command", args[0], "args", args[1:])
	return a.registry.Execute(ctx, args[0], args[1:])
}

// APIFactory opens the storage selected by cfg and returns the business API
// on top of it, with the function releasing the storage.
type APIFactory func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error)

// DefaultAPIFactory opens the configured repository.
func DefaultAPIFactory(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
	repo, err := config.CreateRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	businessAPI := api.NewBusinessAPI(repo, domain.SystemClock{}, validation.NewWorklogValidatorWithConfig(cfg))
	return businessAPI, repo.Close, nil
}
