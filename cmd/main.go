package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/jeffschwMSFT/clrkahoot/internal/config"
	"github.com/jeffschwMSFT/clrkahoot/internal/server"
)

const (
	defaultPort       = 8080
	defaultConfigPath = "config.yaml"
)

func main() {
	c, err := loadConfig()
	if err != nil {
		log.Fatalf("Load config failed: %v", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGTERM, os.Interrupt)

	s, err := server.Init(c)
	if err != nil {
		log.Fatalf("Init server failed: %v", err)
	}

	go s.Start()

	<-shutdown
	s.Shutdown()
}

func loadConfig() (server.Config, error) {
	var c server.Config
	c.HTTP.Port = defaultPort

	p := os.Getenv("CONFIG_PATH")
	if p == "" {
		p = defaultConfigPath
	}

	if err := config.Load(p, &c); err != nil {
		return c, fmt.Errorf("load config: %w", err)
	}

	return c, nil
}
