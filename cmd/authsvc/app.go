package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/environment"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/pkg/requestid"
	"github.com/dmitrymomot/authgate/pkg/tokenstore"
)

var errInvalidRecord = errors.New("record must be TOKEN=VALUE with a non-empty token")

func newApp() *cli.App {
	return &cli.App{
		Name:   "authsvc",
		Usage:  "Session token lookup service",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP service (default)",
				Action: serve,
			},
			{
				Name:      "seed",
				Usage:     "Write token records to Redis for local development",
				ArgsUsage: "TOKEN=VALUE [TOKEN=VALUE...]",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "ttl",
						Aliases: []string{"t"},
						Usage:   "Record TTL (0 keeps records until deleted)",
					},
				},
				Action: seed,
			},
			{
				Name:      "lookup",
				Usage:     "Resolve a token and print its stored value",
				ArgsUsage: "TOKEN",
				Action:    lookup,
			},
		},
	}
}

// runtime holds the process-wide collaborators shared by every command.
type runtime struct {
	env    environment.Environment
	log    *slog.Logger
	redis  *goredis.Client
	server httpserver.Config
}

func bootstrap(ctx context.Context) (*runtime, error) {
	var (
		logCfg   logger.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
	)
	if err := config.Load(&logCfg); err != nil {
		return nil, err
	}
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}
	if err := config.Load(&httpCfg); err != nil {
		return nil, err
	}

	log, err := logger.NewFromConfig(logCfg, logger.WithContextExtractors(requestid.LoggerExtractor()))
	if err != nil {
		return nil, err
	}
	logger.SetAsDefault(log)

	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "redis connection failed", logger.Error(err))
		return nil, err
	}

	return &runtime{
		env:    environment.Parse(logCfg.Env),
		log:    log,
		redis:  client,
		server: httpCfg,
	}, nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.redis.Close()

	gw := tokenstore.New(tokenstore.NewRedisGetter(rt.redis), tokenstore.WithLogger(rt.log))
	router := newRouter(gw, rt.env, rt.log, httpserver.Probe(redis.Healthcheck(rt.redis)))

	srv := httpserver.NewFromConfig(rt.server, httpserver.WithLogger(rt.log))
	return srv.Run(ctx, router)
}

func seed(c *cli.Context) error {
	records, err := parseRecords(c.Args().Slice())
	if err != nil {
		return err
	}

	rt, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer rt.redis.Close()

	store := redis.NewStorage(rt.redis)
	ttl := c.Duration("ttl")
	for _, rec := range records {
		if err := store.Set(c.Context, rec.token, []byte(rec.value), ttl); err != nil {
			return fmt.Errorf("seed %s: %w", rec.token, err)
		}
		rt.log.InfoContext(c.Context, "token seeded", logger.TokenHint(rec.token), slog.Duration("ttl", ttl))
	}
	return nil
}

func lookup(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}

	rt, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer rt.redis.Close()

	ctx, cancel := context.WithTimeout(c.Context, 5*time.Second)
	defer cancel()

	gw := tokenstore.New(tokenstore.NewRedisGetter(rt.redis), tokenstore.WithLogger(rt.log))
	value, found, err := gw.FindToken(ctx, c.Args().First())
	if err != nil {
		return err
	}
	if !found {
		return cli.Exit("token not found", 2)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(value))
	return err
}

type record struct {
	token string
	value string
}

func parseRecords(args []string) ([]record, error) {
	if len(args) == 0 {
		return nil, errInvalidRecord
	}
	out := make([]record, 0, len(args))
	for _, arg := range args {
		token, value, ok := strings.Cut(arg, "=")
		if !ok || token == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidRecord, arg)
		}
		out = append(out, record{token: token, value: value})
	}
	return out, nil
}
