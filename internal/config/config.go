package config

import (
	"errors"
	"flag"
	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"io/fs"
	"os"
	"time"
)

type Config interface {
	ServerAddress() string
	BackendAddress() string
	BackendTimeout() time.Duration
	DatabaseURI() string
	SessionKey() string
	SessionTTL() time.Duration
	Location() *time.Location
	LunarUTCOffset() float64
	Debug() bool
}

type Builder struct {
	parameters *parameters
	arguments  []string
	location   *time.Location
	err        error
}

type parameters struct {
	ServerAddress  string        `env:"RUN_ADDRESS"`
	BackendAddress string        `env:"BACKEND_ADDRESS"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT"`
	DatabaseURI    string        `env:"DATABASE_URI"`
	SessionKey     string        `env:"SESSION_KEY"`
	SessionTTL     time.Duration `env:"SESSION_TTL"`
	TimeZone       string        `env:"TIME_ZONE"`
	LunarUTCOffset float64       `env:"LUNAR_UTC_OFFSET"`
	Debug          bool          `env:"DEBUG"`
}

const (
	defaultServerAddress  = "localhost:8080"
	defaultBackendTimeout = 10 * time.Second
	defaultSessionTTL     = 24 * time.Hour
	defaultTimeZone       = "Asia/Ho_Chi_Minh"
	defaultLunarUTCOffset = 7
)

func NewBuilder() *Builder {
	return &Builder{
		parameters: &parameters{
			ServerAddress:  defaultServerAddress,
			BackendTimeout: defaultBackendTimeout,
			SessionTTL:     defaultSessionTTL,
			TimeZone:       defaultTimeZone,
			LunarUTCOffset: defaultLunarUTCOffset,
		},
		arguments: os.Args[1:],
	}
}

// LoadDotEnv загружает переменные окружения из файла .env, если он существует.
// Уже установленные переменные окружения не перезаписываются.
func (b *Builder) LoadDotEnv(filenames ...string) *Builder {
	if b.err != nil {
		return b
	}

	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		b.err = err
	}

	return b
}

func (b *Builder) LoadEnv() *Builder {
	if b.err != nil {
		return b
	}
	b.err = env.Parse(b.parameters)

	return b
}

func (b *Builder) LoadFlags() *Builder {
	if b.err != nil {
		return b
	}

	set := flag.NewFlagSet("sprayweb", flag.ContinueOnError)
	set.StringVar(&b.parameters.ServerAddress, "a", b.parameters.ServerAddress, "адрес и порт запуска HTTP-сервера")
	set.StringVar(&b.parameters.BackendAddress, "b", b.parameters.BackendAddress, "адрес API бэкенда")
	set.StringVar(&b.parameters.DatabaseURI, "d", b.parameters.DatabaseURI, "адрес подключения к PostgreSQL")
	set.StringVar(&b.parameters.TimeZone, "tz", b.parameters.TimeZone, "часовой пояс для отображения дат")
	b.err = set.Parse(b.arguments)

	return b
}

func (b *Builder) Build() (Config, error) {
	if b.err != nil {
		return b, b.err
	}

	b.location, b.err = time.LoadLocation(b.parameters.TimeZone)

	return b, b.err
}

func (b *Builder) ServerAddress() string {
	return b.parameters.ServerAddress
}

func (b *Builder) BackendAddress() string {
	return b.parameters.BackendAddress
}

func (b *Builder) BackendTimeout() time.Duration {
	return b.parameters.BackendTimeout
}

func (b *Builder) DatabaseURI() string {
	return b.parameters.DatabaseURI
}

func (b *Builder) SessionKey() string {
	return b.parameters.SessionKey
}

func (b *Builder) SessionTTL() time.Duration {
	return b.parameters.SessionTTL
}

func (b *Builder) Location() *time.Location {
	return b.location
}

func (b *Builder) LunarUTCOffset() float64 {
	return b.parameters.LunarUTCOffset
}

func (b *Builder) Debug() bool {
	return b.parameters.Debug
}
