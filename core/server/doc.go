// Package server wraps http.Server with graceful shutdown, environment
// configuration, and hardened TLS defaults.
//
// The simplest entry point serves until the context is canceled, then
// drains in-flight requests:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	if err := server.Run(ctx, ":8080", mux); err != nil {
//		log.Fatal(err)
//	}
//
// # Lifecycle
//
// Start blocks and does not close the listener on context cancellation;
// Stop drains in-flight requests up to the configured shutdown timeout.
// The Run method packages both for coordinated use, e.g. with errgroup:
//
//	srv := server.New(cfg.Addr,
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
//	if err := g.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// # Configuration
//
// Config carries SERVER_* environment variables for address, timeouts, and
// an optional certificate/key pair:
//
//	var cfg server.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	if err := server.StartFromConfig(ctx, cfg, mux); err != nil {
//		log.Fatal(err)
//	}
//
// # TLS
//
// NewTLSConfig starts from Mozilla Intermediate settings and applies
// validated options:
//
//	tlsCfg, err := server.NewTLSConfig(
//		server.WithTLSCertificate("cert.pem", "key.pem"),
//		server.WithTLSMinVersion(tls.VersionTLS13),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	srv := server.New(":8443", server.WithTLS(tlsCfg))
package server
