package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
	"github.com/Astemirdum/library-catalog/pkg/logger"
	"github.com/Astemirdum/library-catalog/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"CATALOG_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"CATALOG_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
}

type Storage struct {
	// Driver is "csv" or "postgres".
	Driver    string `yaml:"driver" envconfig:"STORAGE_DRIVER" default:"csv"`
	BooksPath string `yaml:"booksPath" envconfig:"BOOKS_PATH" default:"data/catalog.csv"`
	UsersPath string `yaml:"usersPath" envconfig:"USERS_PATH" default:"data/user.csv"`
}

type Report struct {
	Path string `yaml:"path" envconfig:"REPORT_PATH" default:"report.txt"`
}

type Config struct {
	Server         HTTPServer             `yaml:"server"`
	Log            logger.Log             `yaml:"log"`
	Storage        Storage                `yaml:"storage"`
	Report         Report                 `yaml:"report"`
	Database       postgres.DB            `yaml:"db"`
	Kafka          kafka.Config           `yaml:"kafka"`
	CircuitBreaker circuit_breaker.Config `yaml:"circuitBreaker"`
	// ReferenceDate pins "today" (YYYY-MM-DD) for fees and checkouts.
	ReferenceDate  string `yaml:"referenceDate" envconfig:"REFERENCE_DATE"`
	SaveOnShutdown bool   `yaml:"saveOnShutdown" envconfig:"SAVE_ON_SHUTDOWN"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment once per process.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		c, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = c
	})
	return cfg
}

// Load reads the environment, then applies ops on top of it.
func Load(ops ...Option) (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.Wrap(err, "envconfig.Process")
	}
	for _, op := range ops {
		op(&config)
	}
	if _, err := config.Clock(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Clock returns the catalog's notion of "now": the fixed ReferenceDate
// when set, else the wall clock.
func (c *Config) Clock() (func() time.Time, error) {
	if c.ReferenceDate == "" {
		return time.Now, nil
	}
	d, err := model.ParseDate(c.ReferenceDate)
	if err != nil {
		return nil, errors.Wrapf(err, "REFERENCE_DATE %q", c.ReferenceDate)
	}
	return func() time.Time { return d.Time }, nil
}
