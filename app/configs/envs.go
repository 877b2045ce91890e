package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// ENV is the process configuration, loaded once in main and passed down
// explicitly. Nothing in the app reads the environment after startup.
type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	Port       string
	AppBaseURL string
	AppEnv     string
	Currency   string

	SessionAuthKey string
	SessionEncKey  string
	CSRFKey        string

	MidtransServerKey string
	MidtransClientKey string
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Warn("no .env file found, relying on process environment")
	}

	env := ENV{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		Port:       os.Getenv("APP_PORT"),
		AppBaseURL: os.Getenv("APP_BASE_URL"),
		AppEnv:     os.Getenv("APP_ENV"),
		Currency:   os.Getenv("APP_CURRENCY"),

		SessionAuthKey: os.Getenv("APP_AUTH_KEY"),
		SessionEncKey:  os.Getenv("APP_ENC_KEY"),
		CSRFKey:        os.Getenv("APP_CSRF_KEY"),

		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
	}

	if env.Port == "" {
		env.Port = ":8080"
	}
	if env.Currency == "" {
		env.Currency = "USD"
	}
	return env
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}
