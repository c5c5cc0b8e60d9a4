package main

import (
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/hasher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetVariables() {
	netAddr = ""
	databaseDsn = ""
	logLevel = ""
	configFile = ""
	secretKey = ""
	allowedOrigins = nil
	bcryptCost = 0
	secureCookie = false
}

func TestParseFlags(t *testing.T) {
	// Сбрасываю значения переменных перед и после тестирования
	resetVariables()
	defer resetVariables()

	os.Args = []string{"cmd", "-a", ":9000", "-l", "debug", "-d", "db_dsn", "-c", "/config/file",
		"-secret-key", "flag secret", "-allowed-origins", "http://a.com, http://b.com", "-bcrypt-cost", "11", "-secure-cookie"}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	parseFlags()

	assert.Equal(t, ":9000", netAddr)
	assert.Equal(t, "debug", logLevel)
	assert.Equal(t, "db_dsn", databaseDsn)
	assert.Equal(t, "/config/file", configFile)
	assert.Equal(t, "flag secret", secretKey)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, allowedOrigins)
	assert.Equal(t, 11, bcryptCost)
	assert.Equal(t, true, secureCookie)
}

func TestParseFlagsPriority(t *testing.T) {
	// Сбрасываю значения переменных перед и после тестирования
	resetVariables()
	defer resetVariables()

	// Устанавливаю переменные окружения
	t.Setenv("IMMERSILEARN_SERVER_ADDRESS", "env_url")
	t.Setenv("IMMERSILEARN_SERVER_DATABASE_URL", "env_dsn")
	t.Setenv("IMMERSILEARN_SERVER_LOG_LEVEL", "env_info")
	t.Setenv("IMMERSILEARN_SERVER_SECRET_KEY", "env_secret")
	t.Setenv("IMMERSILEARN_SERVER_ALLOWED_ORIGINS", "http://env.com")

	// Создаю временный конфигурационный файл
	testConfigFile := t.TempDir() + "/test_config.json"
	configContent := `{
		"address": "file_url",
		"log_level": "file_debug",
		"database_dsn": "file_dsn",
		"secret_key": "file_secret"
	}`
	err := os.WriteFile(testConfigFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Устанавливаю значения флагов
	os.Args = []string{"cmd", "-a", "flag_url", "-l", "flag_info", "-c", testConfigFile}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	err = parseVariables()
	require.NoError(t, err)

	// Флаги имеют приоритет, затем файл конфигурации
	assert.Equal(t, "flag_url", netAddr)
	assert.Equal(t, "flag_info", logLevel)
	assert.Equal(t, "file_dsn", databaseDsn)
	assert.Equal(t, "file_secret", secretKey)
	assert.Equal(t, testConfigFile, configFile)
	assert.Equal(t, []string{"http://env.com"}, allowedOrigins)
	// не заданная стоимость bcrypt берется по умолчанию
	assert.Equal(t, hasher.DefaultCost, bcryptCost)
}

func TestParseEnvironment(t *testing.T) {
	// Сбрасываю значения переменных перед и после тестирования
	resetVariables()
	defer resetVariables()

	// Устанавливаем переменные окружения
	t.Setenv("IMMERSILEARN_SERVER_ADDRESS", ":8000")
	t.Setenv("IMMERSILEARN_SERVER_DATABASE_URL", "env_dsn")
	t.Setenv("IMMERSILEARN_SERVER_LOG_LEVEL", "test_info")
	t.Setenv("IMMERSILEARN_SERVER_SECRET_KEY", "env_secret")
	t.Setenv("IMMERSILEARN_SERVER_ALLOWED_ORIGINS", "http://localhost:3000")
	t.Setenv("IMMERSILEARN_SERVER_BCRYPT_COST", "10")
	t.Setenv("IMMERSILEARN_SERVER_SECURE_COOKIE", "true")

	parseEnvironment()

	assert.Equal(t, ":8000", netAddr)
	assert.Equal(t, "test_info", logLevel)
	assert.Equal(t, "env_dsn", databaseDsn)
	assert.Equal(t, "env_secret", secretKey)
	assert.Equal(t, []string{"http://localhost:3000"}, allowedOrigins)
	assert.Equal(t, 10, bcryptCost)
	assert.Equal(t, true, secureCookie)
}

func TestParseConfigFile(t *testing.T) {
	// Сбрасываю значения переменных перед и после тестирования
	resetVariables()
	defer resetVariables()

	testFlagNetAddr := "localhost:8082"
	testFlagLogLevel := "info"
	testFlagDatabaseDsn := "test dsn"

	nameFile := t.TempDir() + "/test_config.json"
	data := fmt.Sprintf(`{"address": "%s","log_level": "%s","database_dsn": "%s","allowed_origins": ["http://a.com"],"bcrypt_cost": 12}`,
		testFlagNetAddr, testFlagLogLevel, testFlagDatabaseDsn)
	require.NoError(t, os.WriteFile(nameFile, []byte(data), 0644))

	// Утсанавливаю путь к файлу конфигурации
	configFile = nameFile
	parseConfigFile()

	assert.Equal(t, testFlagNetAddr, netAddr)
	assert.Equal(t, testFlagLogLevel, logLevel)
	assert.Equal(t, testFlagDatabaseDsn, databaseDsn)
	assert.Equal(t, []string{"http://a.com"}, allowedOrigins)
	assert.Equal(t, 12, bcryptCost)
}

func TestCheckVariables(t *testing.T) {
	// Сбрасываю значения переменных перед и после тестирования
	resetVariables()
	defer resetVariables()

	err := checkVariables()
	require.Error(t, err)

	netAddr = "some addr"
	err = checkVariables()
	require.Error(t, err)

	logLevel = "some level"
	err = checkVariables()
	require.Error(t, err)

	databaseDsn = "some dsn"
	err = checkVariables()
	require.Error(t, err)

	secretKey = "some secret"
	err = checkVariables()
	require.Error(t, err)

	allowedOrigins = []string{"http://localhost:3000"}
	err = checkVariables()
	require.Error(t, err)

	bcryptCost = 4
	err = checkVariables()
	require.Error(t, err)

	bcryptCost = hasher.DefaultCost
	err = checkVariables()
	require.NoError(t, err)
}

func TestParseVariablesWithoutOrigins(t *testing.T) {
	// Сбрасываю значения переменных перед и после тестирования
	resetVariables()
	defer resetVariables()

	t.Setenv("IMMERSILEARN_SERVER_ALLOWED_ORIGINS", "")
	os.Args = []string{"cmd", "-a", ":8080", "-l", "info", "-d", "db_dsn", "-secret-key", "secret"}
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	// без списка источников сервер не запускается
	err := parseVariables()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed origins")
}

func TestSplitOrigins(t *testing.T) {
	assert.Nil(t, splitOrigins(""))
	assert.Equal(t, []string{"http://a.com"}, splitOrigins(" http://a.com ,"))
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, splitOrigins("http://a.com,http://b.com"))
}
