// Package main is the entry point of the flight finder command.
//
// Usage:
//
//	flightfinder [flags] <departure> <destination> [destination...]
//
// Configuration is read from the environment and an optional .env file.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	// Application layers
	"github.com/flight-search/flight-finder/internal/adapter/cli"
	"github.com/flight-search/flight-finder/internal/adapter/notify"
	"github.com/flight-search/flight-finder/internal/adapter/provider/tequila"
	"github.com/flight-search/flight-finder/internal/config"
	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/cache"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/infrastructure/ratelimit"
	"github.com/flight-search/flight-finder/internal/usecase"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run wires the application and returns the process exit code.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	args, err := cli.Parse(argv, stderr)
	if err != nil {
		return cli.ExitCodeForParseError(err, stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = io.WriteString(stderr, err.Error()+"\n")
		return cli.ExitError
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log := logger.New(cfg.Logging)
	defer log.Close()

	log.Debug().
		Str("env", cfg.App.Env).
		Str("notify_provider", cfg.Notify.Provider).
		Bool("cache", cfg.Cache.Enabled()).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locationCache := setupCache(ctx, cfg, log)
	defer locationCache.Close()

	uc, err := setupUseCase(cfg, args, locationCache, stdin, stdout, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to set up")
		return cli.ExitError
	}

	return cli.NewSearchHandler(uc, stdout, stderr, log).Run(ctx, args)
}

// setupCache connects to Redis when configured. A connection failure is
// logged and the run continues without a cache.
func setupCache(ctx context.Context, cfg *config.Config, log *logger.Logger) cache.LocationCache {
	if !cfg.Cache.Enabled() {
		return cache.NewNoOpCache()
	}

	redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      cfg.Cache.TTL,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, continuing without location cache")
		return cache.NewNoOpCache()
	}
	return redisCache
}

// setupUseCase builds the Tequila client, the notifier and the pipeline.
func setupUseCase(
	cfg *config.Config,
	args *cli.SearchArgs,
	locationCache cache.LocationCache,
	stdin io.Reader,
	stdout io.Writer,
	log *logger.Logger,
) (usecase.FlightSearchUseCase, error) {
	client := tequila.NewClient(
		tequila.Config{
			BaseURL: cfg.Tequila.BaseURL,
			APIKey:  cfg.Tequila.APIKey,
			Timeout: cfg.Tequila.Timeout,
		},
		tequila.WithCache(locationCache),
		tequila.WithLimiter(ratelimit.NewEndpointLimiter(ratelimit.Config{
			RequestsPerSecond: cfg.Tequila.RateLimit,
			BurstSize:         cfg.Tequila.RateBurst,
		})),
		tequila.WithLogger(log),
	)

	sender, err := notify.NewSender(cfg.Notify, log)
	if err != nil {
		return nil, err
	}

	var confirmer domain.Confirmer = cli.NewPromptConfirmer(stdin, stdout)
	if args.Yes {
		confirmer = cli.AutoConfirmer{}
	}

	return usecase.NewFlightSearchUseCase(usecase.Dependencies{
		Resolver:  client,
		Searcher:  client,
		Notifier:  notify.NewNotifier(sender, cfg.Notify.MaxAttempts, log),
		Confirmer: confirmer,
		Output:    stdout,
		Logger:    log,
	}, &usecase.Config{
		SearchTimeout: cfg.Tequila.SearchTimeout,
		Params: usecase.ParamOptions{
			Currency: cfg.Tequila.Currency,
			Limit:    cfg.Tequila.Limit,
		},
	}), nil
}
