// Package worker implements the arithmetic worker lifecycle and Redis Streams
// integration.
//
// The worker consumes evaluation requests from a Redis stream consumer group,
// evaluates the expression tree carried by each request, stores the result
// and publishes it back to the orchestrator.
//
// A request message carries a single "data" field:
//
//	{"request_id": "r-1", "mode": "verify",
//	 "expression": {"op": "div", "left": {"value": -7}, "right": {"value": 2}}}
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	eng := engine.NewEngine(engine.Options{DefaultMode: engine.ModeNative}, logger)
//	store := worker.NewResultStore(redisClient, cfg.ResultTTL, logger)
//
//	w := worker.NewWorker(cfg, redisClient, eng, store, logger)
//	if err := w.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
// The worker handles:
//   - Redis Streams subscription and consumer group management
//   - Request decoding with a node limit
//   - Result storage and publishing
//   - Error classification and reporting on "<result stream>.errors"
//   - Graceful shutdown
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8083, redisClient, eng, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
