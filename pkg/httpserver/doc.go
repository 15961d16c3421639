// Package httpserver runs the service's HTTP listener with context-driven
// graceful shutdown and provides liveness/readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
package httpserver
