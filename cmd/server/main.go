package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"goredis/internal/server"
)

func main() {
	port := flag.Int("port", 6379, "Port to listen on")
	host := flag.String("host", "0.0.0.0", "Host to bind to")
	dir := flag.String("dir", ".", "Directory holding the RDB snapshot")
	dbFilename := flag.String("dbfilename", "dump.rdb", "RDB snapshot filename within --dir")
	replicaOf := flag.String("replicaof", "", "Master to replicate from, as \"host port\"")
	configFile := flag.String("config", "", "Optional TOML config file; flags override its values")
	flag.Parse()

	cfg := server.DefaultConfig()
	if *configFile != "" {
		loaded, err := server.LoadConfigFile(*configFile)
		if err != nil {
			log.Fatalf("server: loading config file %s: %v", *configFile, err)
		}
		cfg = loaded
	}

	if isFlagSet("port") {
		cfg.Port = *port
	}
	if isFlagSet("host") {
		cfg.Host = *host
	}
	if isFlagSet("dir") {
		cfg.Dir = *dir
	}
	if isFlagSet("dbfilename") {
		cfg.DBFilename = *dbFilename
	}
	if isFlagSet("replicaof") {
		cfg.ReplicaOf = *replicaOf
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("server: shutting down")
		cancel()
	}()

	srv := server.New(cfg)
	log.Printf("server: starting on %s:%d (dir=%s dbfilename=%s)", cfg.Host, cfg.Port, cfg.Dir, cfg.DBFilename)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
