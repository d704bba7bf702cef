package main

import (
	"flag"
	"log"

	"rostersync/internal/di"
	"rostersync/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		log.Fatalf("rostersync: %s", err)
	}
}
