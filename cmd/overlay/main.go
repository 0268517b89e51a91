package main

import (
	log "github.com/sirupsen/logrus"
)

const (
	appName        = "overlay"
	appDescription = "Stamps a text label or logo onto product photos, one JPEG per CSV row."
)

func main() {
	rootCmd := newRootCmd(log.StandardLogger())

	if err := rootCmd.Execute(); err != nil {
		log.WithFields(
			log.Fields{
				"app.name": appName,
				"error":    err.Error(),
			},
		).Fatal("application exited with an error")
	}
}
