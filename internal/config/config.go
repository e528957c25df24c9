package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string        `yaml:"env" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiHost   string        `yaml:"api_host" env-default:"localhost"`
	ApiPort   int           `yaml:"api_port" env-default:"8080"`
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"dev-secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"168h"`
	Postgres  `yaml:"postgres"`
}

type Postgres struct {
	Host string `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User string `yaml:"user" env:"PG_USER" env-default:"finance"`
	Pass string `yaml:"pass" env:"PG_PASS" env-default:"finance"`
	Db   string `yaml:"db" env:"PG_DB" env-default:"finance_db"`
}

func MustLoad() *Config {
	path := fetchConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
