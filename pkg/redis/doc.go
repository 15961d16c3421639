// Package redis owns the process-wide Redis connection used by the
// authentication service.
//
// Connect parses REDIS_URL and pings with retries, Healthcheck plugs the
// client into readiness probes, and Storage writes token records for tooling
// such as the seed command. The connection is created once in main and
// shared; request-path lookups read through tokenstore.RedisGetter.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
package redis
