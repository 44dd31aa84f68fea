package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fuelwatch/fuel-price-bot/internal/bot"
	"github.com/fuelwatch/fuel-price-bot/internal/config"
)

func main() {
	cfgPath := flag.String("config", config.DefaultConfigPath(), "path to the bot config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		log.Fatal(err)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Printf("[main] data dir %s, time zone %q", cfg.DataDir, cfg.TimeZone)

	app, err := bot.New(cfg)
	if err != nil {
		return fmt.Errorf("start bot: %w", err)
	}
	defer app.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("[main] received %s, shutting down", sig)
		app.Close()
		os.Exit(0)
	}()

	return app.Run()
}
