package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/NaiduBagana/cam2cart/logging"
	"github.com/joho/godotenv"
)

const DefaultOrdersURL = "https://cam2cart-backend.onrender.com/api/orders"

type Config struct {
	RunAddress           string        `env:"RUN_ADDRESS"`
	OrdersURL            string        `env:"ORDERS_URL"`
	OrdersRequestTimeout time.Duration `env:"ORDERS_REQUEST_TIMEOUT"`
	DatabaseURI          string        `env:"DATABASE_URI"`
	CORSOrigins          []string      `env:"CORS_ORIGINS" envSeparator:","`
	JaegerEndpoint       string        `env:"JAEGER_ENDPOINT"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

func GetConfig() *Config {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debugw(".env not loaded", "error", err)
	}

	config := &Config{}
	var corsOrigins string

	flag.StringVar(&config.RunAddress, "a", "localhost:8080", "RunAddress")
	flag.StringVar(&config.OrdersURL, "u", DefaultOrdersURL, "OrdersURL")
	flag.DurationVar(&config.OrdersRequestTimeout, "t", 0, "OrdersRequestTimeout, 0 keeps the transport default")
	flag.StringVar(&config.DatabaseURI, "d", "", "DatabaseURI, empty disables the load journal")
	flag.StringVar(&corsOrigins, "c", "*", "CORSOrigins, comma separated")
	flag.StringVar(&config.JaegerEndpoint, "j", "", "JaegerEndpoint, empty disables tracing export")
	flag.DurationVar(&config.ShutdownTimeout, "s", 10*time.Second, "ShutdownTimeout")
	flag.Parse()

	config.CORSOrigins = splitCSV(corsOrigins)

	if err := env.Parse(config); err != nil {
		logger.Debug("failed to parse environment variables:", err)
	}

	return config
}
