package main

import (
	"fmt"
	"log"
	"os"

	"userseed/internal/auth"
	"userseed/internal/config"
	"userseed/internal/output"
	"userseed/internal/verify"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	regs, err := output.ReadResults(cfg.Seed.OutputPath)
	if err != nil {
		log.Fatal("Failed to read results:", err)
	}

	outcomes, invalid := verify.Tokens(auth.NewJWTManager(cfg), regs)
	for _, o := range outcomes {
		if o.Valid {
			fmt.Printf("valid   %s\n", o.Username)
			continue
		}
		fmt.Printf("invalid %s: %s\n", o.Username, o.Reason)
	}

	fmt.Printf("\n%d tokens checked, %d invalid\n", len(outcomes), invalid)
	if invalid > 0 {
		os.Exit(1)
	}
}
