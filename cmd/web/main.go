package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/golang/glog"

	"marketbuyer/internal/app/webserver"
	"marketbuyer/internal/config"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		glog.Exitf("config: %v", err)
	}

	srv, err := webserver.New(context.Background(), cfg)
	if err != nil {
		glog.Exitf("market setup: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("http server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	glog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		glog.Errorf("shutdown error: %v", err)
	} else {
		glog.Info("server stopped gracefully")
	}
}
