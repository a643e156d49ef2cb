package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	GCP       GCPConfig
	Firestore FirestoreConfig
	Redis     RedisConfig
	Cart      CartConfig
	Checkout  CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type GCPConfig struct {
	ProjectID       string `envconfig:"STOREFRONT_GCP_PROJECT_ID" required:"true"`
	CredentialsFile string `envconfig:"STOREFRONT_GOOGLE_APPLICATION_CREDENTIALS"`
}

type FirestoreConfig struct {
	EmulatorHost       string        `envconfig:"STOREFRONT_FIRESTORE_EMULATOR_HOST"`
	DialTimeout        time.Duration `envconfig:"STOREFRONT_FIRESTORE_DIAL_TIMEOUT" default:"10s"`
	ProductsCollection string        `envconfig:"STOREFRONT_FIRESTORE_PRODUCTS_COLLECTION" default:"products"`
	SettingsCollection string        `envconfig:"STOREFRONT_FIRESTORE_SETTINGS_COLLECTION" default:"settings"`
	SettingsDocID      string        `envconfig:"STOREFRONT_FIRESTORE_SETTINGS_DOC" default:"store"`
}

// RedisConfig accepts either a full URL or a discrete address; pkg/redis
// rejects a config that carries neither.
type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	PersistKey string `envconfig:"STOREFRONT_CART_PERSIST_KEY" default:"cart"`
}

type CheckoutConfig struct {
	MessageBaseURL string `envconfig:"STOREFRONT_CHECKOUT_MESSAGE_BASE_URL" default:"https://api.whatsapp.com/send"`
	Greeting       string `envconfig:"STOREFRONT_CHECKOUT_GREETING" default:"Olá! Gostaria de fazer o seguinte pedido:"`
	CurrencyPrefix string `envconfig:"STOREFRONT_CHECKOUT_CURRENCY_PREFIX" default:"R$ "`
}
