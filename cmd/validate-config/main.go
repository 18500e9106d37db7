package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/pressure-helper/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - Timezone: %s\n", cfg.Timezone)
	fmt.Printf("  - AI Provider: %s\n", cfg.AI.Provider)
	switch cfg.AI.Provider {
	case "gemini":
		fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.AI.GeminiAPIKey))
		fmt.Printf("  - Gemini Model: %s\n", cfg.AI.GeminiModel)
	default:
		fmt.Printf("  - OpenAI API Key: %s\n", maskToken(cfg.AI.OpenAIAPIKey))
		fmt.Printf("  - OpenAI Model: %s\n", cfg.AI.OpenAIModel)
		if cfg.AI.OpenAIBaseURL != "" {
			fmt.Printf("  - OpenAI Base URL: %s\n", cfg.AI.OpenAIBaseURL)
		}
	}
	fmt.Printf("  - AI Timeout: %s\n", cfg.AI.Timeout)
	fmt.Printf("  - Cache: %s (expiry %s)\n", cfg.Cache.Backend, cfg.Cache.Expiry())
	if cfg.Cache.Backend == "redis" {
		fmt.Printf("  - Redis: %s:%s db %d\n", cfg.Cache.RedisHost, cfg.Cache.RedisPort, cfg.Cache.RedisDB)
	}
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == "sqlite" {
		fmt.Printf("  - SQLite Path: %s\n", cfg.DB.SQLitePath)
	} else {
		fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	fmt.Printf("  - Report Dir: %s (advice: %t)\n", cfg.Report.Dir, cfg.Report.IncludeAdvice)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
