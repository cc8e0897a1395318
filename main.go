package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/idelchi/dupfind/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func init() {
	log.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
}

func main() {
	if err := cli.New(version).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
