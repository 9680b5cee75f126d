// Command migrate applies SQL migrations for a service schema. Point it at
// a service's migrations directory and a Postgres URL:
//
//	migrate -path services/booking-service/db/migrations -down=false
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	path := flag.String("path", "services/booking-service/db/migrations", "path to the migrations directory")
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	flag.Parse()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	m, err := migrate.New("file://"+*path, dbURL)
	if err != nil {
		log.Fatal(err)
	}

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}
	log.Println("migrations applied for:", *path)
}
