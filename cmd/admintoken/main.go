package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/trivia-questions-api/internal/config"
	"github.com/yourusername/trivia-questions-api/pkg/auth"
)

// Выпускает токен администратора для создания и удаления вопросов
func main() {
	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	subject := flag.String("subject", "admin", "идентификатор администратора в токене")
	ttl := flag.Duration("ttl", 0, "время жизни токена (по умолчанию auth.token_ttl)")
	flag.Parse()

	config.LoadDotEnv(".env")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tokenTTL := cfg.Auth.TokenTTL
	if *ttl > 0 {
		tokenTTL = *ttl
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, tokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize TokenService: %v", err)
	}

	token, err := tokens.IssueAdminToken(*subject)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	log.Printf("Токен для %s действует до %s", *subject, time.Now().Add(tokenTTL).Format(time.RFC3339))
	fmt.Println(token)
}
