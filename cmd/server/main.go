package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/youruser/overlay/internal/api"
	"github.com/youruser/overlay/internal/batch"
	"github.com/youruser/overlay/internal/config"
)

func main() {
	v := config.New()
	if err := config.LoadConfig(v, os.Getenv("OVERLAY_CONFIG")); err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if port := os.Getenv("PORT"); port != "" {
		v.Set("addr", ":"+port)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	opts, err := batch.NewOptions(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to load fonts")
	}
	defer opts.Close()
	if opts.Font == nil {
		log.Warn("no font configured, text overlays will be rejected")
	}
	if cfg.AllowRemote {
		log.Info("remote overlay URLs enabled for public addresses")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.Logger(log.StandardLogger()))
	api.RegisterRoutes(r, api.NewHandler(cfg, opts, log.StandardLogger()))

	log.WithField("addr", cfg.Addr).Info("starting overlay render server")
	if err := r.Run(cfg.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
