package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/simp-lee/portal/internal/app"
	"github.com/simp-lee/portal/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", configPathFromEnv(), "path to configuration file (env PORTAL_CONFIG)")
	checkOnly := flag.Bool("check", false, "validate the configuration and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if *checkOnly {
		fmt.Printf("%s: ok (driver=%s, mode=%s)\n", *configPath, cfg.Database.Driver, cfg.Server.Mode)
		return
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal("server error: ", err)
	}
}

func configPathFromEnv() string {
	if p := os.Getenv("PORTAL_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}
