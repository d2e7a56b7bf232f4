// cmd/adduser/main.go
// Creates or updates a club official allowed to edit races.
//
// Usage:
//
//	go run ./cmd/adduser -email samad@example.com -name "Abdus Samad" -password secret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/absamad/pigeontracker/config"
	bundb "github.com/absamad/pigeontracker/db"
	"github.com/absamad/pigeontracker/models"
)

func main() {
	email := flag.String("email", "", "email (required)")
	name := flag.String("name", "", "display name (required)")
	role := flag.String("role", "admin", "role")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		log.Fatal("-email, -name and -password are all required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(context.Background(), db); err != nil {
		log.Fatal("create tables:", err)
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(*email)),
		Name:     *name,
		Role:     *role,
		Password: string(hash),
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (email) DO UPDATE SET password = EXCLUDED.password, name = EXCLUDED.name, role = EXCLUDED.role").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved\n", user.Email)
}
