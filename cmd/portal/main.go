package main

import (
	"log"
	"net/http"
	"os"

	"shopx-support-console/internal/auth"
	"shopx-support-console/internal/config"
	"shopx-support-console/internal/endpoint"
	"shopx-support-console/internal/proxy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	upstream := cfg.GraphQL.UpstreamURL
	if upstream == "" {
		upstream = endpoint.Upstream(os.Getenv)
	}

	logger := log.New(os.Stderr, "portal: ", log.LstdFlags)

	mux := http.NewServeMux()
	mux.Handle("/api/support-graphql", proxy.NewHandler(upstream, logger))
	mux.Handle("/api/auth/login", auth.NewLoginHandler(upstream, logger))
	mux.Handle("/api/auth/logout", auth.NewLogoutHandler(upstream, cfg.Production(), logger))

	sessionMw := auth.SessionMiddleware{}

	logger.Printf("support console listening on %s (upstream %s)", cfg.HTTP.Addr, upstream)
	log.Fatal(http.ListenAndServe(cfg.HTTP.Addr, sessionMw.Wrap(mux)))
}
