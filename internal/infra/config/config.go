package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит параметры конфигурации приложения.
type Config struct {
	Token        string        // Telegram-бот токен, обязательный параметр.
	AdminID      int64         // Telegram-ID оператора (админа), обязательный параметр.
	WebAppURL    string        // Публичный URL мини-приложения (кнопка WebApp).
	DatabaseURL  string        // Строка подключения к PostgreSQL.
	ListenAddr   string        // Адрес и порт HTTP-сервера мини-приложения.
	PollInterval time.Duration // Таймаут лонгпуллинга Telegram.
	Debug        bool          // Флаг отладочного режима.
}

// LoadConfig загружает конфигурацию из файла .env (если он существует) и переменных окружения.
func LoadConfig() (*Config, error) {
	// Загружаем переменные окружения из файла .env (если файл существует).
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("переменная TELEGRAM_BOT_TOKEN не задана")
	}

	adminIDStr := os.Getenv("ADMIN_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("переменная ADMIN_ID не задана")
	}
	adminID, err := strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("переменная ADMIN_ID должна быть числом: %w", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("переменная DATABASE_URL не задана")
	}

	webAppURL := os.Getenv("WEBAPP_URL")

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	// Таймаут лонгпуллинга. По умолчанию — 10 секунд.
	pollInterval := 10 * time.Second
	if piStr := os.Getenv("POLL_INTERVAL"); piStr != "" {
		if pi, err := strconv.Atoi(piStr); err == nil {
			pollInterval = time.Duration(pi) * time.Second
		}
	}

	debug := false
	if debugStr := os.Getenv("DEBUG"); debugStr == "true" || debugStr == "1" {
		debug = true
	}

	return &Config{
		Token:        token,
		AdminID:      adminID,
		WebAppURL:    webAppURL,
		DatabaseURL:  databaseURL,
		ListenAddr:   listenAddr,
		PollInterval: pollInterval,
		Debug:        debug,
	}, nil
}
