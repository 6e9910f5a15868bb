// Package httpserver provides the HTTP surface of the simulation service.
//
// The BaseServer carries the concerns every deployment needs regardless of
// its routes: health endpoints, drain/undrain readiness control for load
// balancers, structured request logging, an optional metrics listener and
// graceful shutdown. Components contribute their endpoints by implementing
// RouteRegistrar.
//
// # Server Lifecycle
//
//  1. Initialization: configure the server with HTTP settings and route registrars
//  2. Startup: run HTTP and metrics servers in background goroutines
//  3. Operation: handle requests with logging and monitoring
//  4. Readiness control: drain/undrain for load balancers (/drain, /undrain)
//  5. Graceful shutdown: wait for in-flight requests to complete
//
// # Endpoints
//
// Every server built on BaseServer serves /livez, /readyz, /drain and
// /undrain, plus optional pprof under /debug. The RunsHandler adds the
// simulation API:
//
//   - POST /api/runs       execute a batch of trials and return the record
//   - GET  /api/runs       list persisted runs (summaries only)
//   - GET  /api/runs/{id}  one run with its per-trial results
//
// # Usage Example
//
//	store := services.NewInMemoryStore()
//	runner := services.NewRunner(store, log)
//	handler := httpserver.NewRunsHandler(runner, store, log)
//
//	srv, err := httpserver.New(cfg, handler)
//	if err != nil {
//	    return err
//	}
//	srv.RunInBackground()
//	defer srv.Shutdown()
package httpserver
