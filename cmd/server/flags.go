package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/hasher"
	"github.com/abezemskiy/immersilearn/internal/server/config"
)

var (
	netAddr        string   // адрес запуска сервиса
	databaseDsn    string   // адрес базы данных
	logLevel       string   // уровень логирования
	configFile     string   // путь к файлу конфигурации
	secretKey      string   // секретный ключ для подписи JWT
	allowedOrigins []string // источники, которым разрешены кросс-доменные запросы
	bcryptCost     int      // стоимость bcrypt
	secureCookie   bool     // передавать cookie с токеном только по HTTPS
)

// parseVariables - функция для установки конфигурационных параметров приложения.
// Конфигурирование приложения с приоритетом в порядке убывания: значения флагов, значения из файла, значения переменных окружения.
func parseVariables() error {
	parseFlags()
	parseConfigFile()
	parseEnvironment()

	// значения по умолчанию для необязательных параметров
	if bcryptCost == 0 {
		bcryptCost = hasher.DefaultCost
	}

	// Проверяю корректность установки глобальных переменных
	err := checkVariables()
	if err != nil {
		return fmt.Errorf("failed to set global variable, %w", err)
	}
	return nil
}

// splitOrigins - разбирает список источников, разделенных запятыми.
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// parseFlags - функция для определения параметров конфигурации из флагов.
func parseFlags() {
	flag.StringVar(&netAddr, "a", "", "address and port to run server")

	// по умолчанию адрес базы данных не задан
	flag.StringVar(&databaseDsn, "d", "", "database connection address")

	flag.StringVar(&logLevel, "l", "", "log level")
	flag.StringVar(&configFile, "c", "", "name of configuration file")
	flag.StringVar(&secretKey, "secret-key", "", "secret key for signing JWT")
	flagOrigins := flag.String("allowed-origins", "", "comma separated list of origins allowed for CORS")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "bcrypt cost for password hashing")
	flag.BoolVar(&secureCookie, "secure-cookie", false, "send token cookie over HTTPS only")

	// Вызов flag.Parse() для парсинга аргументов
	flag.Parse()
	allowedOrigins = splitOrigins(*flagOrigins)
}

// parseConfigFile - функция для переопределения параметров конфигурации из файла конфигурации.
func parseConfigFile() {
	// если не указан файл конфигурации, то оставляю параметры запуска без изменения
	if configFile == "" {
		return
	}
	configs, err := config.ParseConfigFile(configFile)
	if err != nil {
		log.Fatalf("parse config file error: %v\n", err)
	}

	// обновляю параметры запуска если они не определены флагами
	if netAddr == "" {
		netAddr = configs.Address
	}
	if logLevel == "" {
		logLevel = configs.LogLevel
	}
	if databaseDsn == "" {
		databaseDsn = configs.DatabaseDSN
	}
	if secretKey == "" {
		secretKey = configs.SecretKey
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = configs.AllowedOrigins
	}
	if bcryptCost == 0 {
		bcryptCost = configs.BcryptCost
	}
	// флаг secure-cookie может только включить настройку
	secureCookie = secureCookie || configs.SecureCookie
}

// parseEnvironment - функция для переопределения конфигурации из глобальных переменных.
// Переопределяет конфигурацию, если значения не установлены флагами или файлом конфигурации.
func parseEnvironment() {
	if netAddr == "" {
		netAddr = os.Getenv("IMMERSILEARN_SERVER_ADDRESS")
	}
	if databaseDsn == "" {
		databaseDsn = os.Getenv("IMMERSILEARN_SERVER_DATABASE_URL")
	}
	if logLevel == "" {
		logLevel = os.Getenv("IMMERSILEARN_SERVER_LOG_LEVEL")
	}
	if secretKey == "" {
		secretKey = os.Getenv("IMMERSILEARN_SERVER_SECRET_KEY")
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = splitOrigins(os.Getenv("IMMERSILEARN_SERVER_ALLOWED_ORIGINS"))
	}
	if bcryptCost == 0 {
		envCost := os.Getenv("IMMERSILEARN_SERVER_BCRYPT_COST")
		if envCost != "" {
			cost, err := strconv.Atoi(envCost)
			if err == nil {
				bcryptCost = cost
			}
		}
	}
	if !secureCookie {
		secure, err := strconv.ParseBool(os.Getenv("IMMERSILEARN_SERVER_SECURE_COOKIE"))
		if err == nil {
			secureCookie = secure
		}
	}
}

// checkVariables - функция для проверки корректности утсановки глобальных переменных.
func checkVariables() error {
	if netAddr == "" {
		return fmt.Errorf("address and port to run server must be set")
	}
	if logLevel == "" {
		return fmt.Errorf("log level must be set")
	}
	if databaseDsn == "" {
		return fmt.Errorf("database connection address must be set")
	}
	if secretKey == "" {
		return fmt.Errorf("secret key must be set")
	}
	// пустой список в CORS означает разрешение для любого источника
	if len(allowedOrigins) == 0 {
		return fmt.Errorf("allowed origins must be set")
	}
	if bcryptCost < 10 || bcryptCost > 12 {
		return fmt.Errorf("bcrypt cost must be in range [10, 12], got %d", bcryptCost)
	}
	return nil
}
