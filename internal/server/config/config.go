package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Configs представляет структуру конфигурации.
type Configs struct {
	Address        string   `json:"address"`         // аналог переменной окружения IMMERSILEARN_SERVER_ADDRESS или флага -a
	LogLevel       string   `json:"log_level"`       // аналог переменной окружения IMMERSILEARN_SERVER_LOG_LEVEL или флага -l
	DatabaseDSN    string   `json:"database_dsn"`    // аналог переменной окружения IMMERSILEARN_SERVER_DATABASE_URL или флага -d
	SecretKey      string   `json:"secret_key"`      // аналог переменной окружения IMMERSILEARN_SERVER_SECRET_KEY или флага -secret-key
	AllowedOrigins []string `json:"allowed_origins"` // аналог переменной окружения IMMERSILEARN_SERVER_ALLOWED_ORIGINS или флага -allowed-origins
	BcryptCost     int      `json:"bcrypt_cost"`     // аналог переменной окружения IMMERSILEARN_SERVER_BCRYPT_COST или флага -bcrypt-cost
	SecureCookie   bool     `json:"secure_cookie"`   // аналог переменной окружения IMMERSILEARN_SERVER_SECURE_COOKIE или флага -secure-cookie
}

// ParseConfigFile - функция для переопределения параметров конфигурации из файла конфигурации.
func ParseConfigFile(configFileName string) (Configs, error) {
	var configs Configs
	f, err := os.Open(configFileName)
	if err != nil {
		return Configs{}, fmt.Errorf("open cofiguration file error: %w", err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	dec := json.NewDecoder(reader)
	err = dec.Decode(&configs)
	if err != nil {
		return Configs{}, fmt.Errorf("parse cofiguration file error: %w", err)
	}

	return configs, nil
}
