// Package redis builds the go-redis client used for folio's shared render cache.
//
// Redis is optional: when REDIS_URL is empty, folio caches rendered HTML in
// process memory instead.
//
//	client, err := redis.Open(ctx, cfg.Redis, logger)
//	if err != nil {
//	    return err
//	}
//	health.WithCheck("redis", redis.Healthcheck(client))
//	runtime.OnShutdown(redis.Shutdown(client))
//
// [Open] pings the server and retries with linear backoff before giving up, so
// a folio instance started next to a cold Redis container does not fail on boot.
package redis
