package main

import (
	"fmt"
	"log"
	"os"

	"github.com/inboxd/inboxd/config"
	"github.com/inboxd/inboxd/internal/database"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/server"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: inboxd <command>")
		fmt.Println("Commands:")
		fmt.Println("  migrate   Run database migrations")
		fmt.Println("  server    Start the application server")
		os.Exit(1)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("config is empty")
	}

	db, err := database.InitDatabase(&database.DatabaseConfig{
		DBName:          cfg.InboxdDatabaseConfig.DBName,
		Host:            cfg.InboxdDatabaseConfig.Host,
		Port:            cfg.InboxdDatabaseConfig.Port,
		User:            cfg.InboxdDatabaseConfig.User,
		Password:        cfg.InboxdDatabaseConfig.Password,
		MaxConn:         cfg.InboxdDatabaseConfig.MaxConn,
		MaxIdleConn:     cfg.InboxdDatabaseConfig.MaxIdleConn,
		ConnMaxLifetime: cfg.InboxdDatabaseConfig.ConnMaxLifetime,
		LogLevel:        cfg.InboxdDatabaseConfig.LogLevel,
		SSLMode:         cfg.InboxdDatabaseConfig.SSLMode,
	})
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	switch os.Args[1] {
	case "migrate":

		err := repository.MigrateDB(db)
		if err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

	case "server":

		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("Inboxd starting up...")

		srv, err := server.NewServer(cfg, db)
		if err != nil {
			log.Fatalf("Server setup failed: %v", err)
		}

		err = srv.Run()
		if err != nil {
			log.Fatalf("Server startup failed: %v", err)
		}

		log.Println("Shutdown complete")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Println("Usage: inboxd <command>")
		fmt.Println("Commands:")
		fmt.Println("  migrate   Run database migrations")
		fmt.Println("  server    Start the application server")
		os.Exit(1)
	}
}
