package main

import (
	"context"
	"log"
	"os"

	"rpsduel/internal/db"
	"rpsduel/internal/ledger"
	"rpsduel/internal/service"
)

// Provisions a few funded accounts for local play and prints a token for
// the first one.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	bank := ledger.NewPostgres(pool)
	ctx := context.Background()

	accounts := []string{"addr:alice", "addr:bob", "addr:carol"}
	for _, addr := range accounts {
		created, err := bank.EnsureAccount(ctx, addr, 10000)
		if err != nil {
			log.Fatalf("ensure %s failed: %v", addr, err)
		}
		balance, err := bank.BalanceOf(ctx, addr)
		if err != nil {
			log.Fatalf("balance %s failed: %v", addr, err)
		}
		log.Printf("account %s created=%v balance=%d\n", addr, created, balance)
	}

	service.InitJWT(secret)
	token, err := service.GenerateJWT(accounts[0])
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token for %s: %s\n", accounts[0], token)
}
