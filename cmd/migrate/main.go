package main

import (
	"agenda/pkg/config"
	"agenda/pkg/logger"
	"agenda/postgres"
	"flag"
	"fmt"
	"os"
	"strconv"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the sql-migrate files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres.OpenSQL(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		log.Fatalw("cannot connect to db", "error", err)
	}
	defer func() { _ = db.Close() }()

	total, err := postgres.MigrateSQL(db, *dir)
	if err != nil {
		log.Fatalw("cannot execute migration", "dir", *dir, "error", err)
	}

	log.Infow("applied migrations", "total", total)
}
