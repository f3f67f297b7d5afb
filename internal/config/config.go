package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // часовой пояс школы должен загружаться и без tzdata в образе

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Logs              LogsConfig     `toml:"logs"`
	Metrics           MetricsConfig  `toml:"metrics"`
	Server            ServerConfig   `toml:"server"`
	Auth              AuthConfig     `toml:"auth"`
	Database          DatabaseConfig `toml:"database"`
	Redis             RedisConfig    `toml:"redis"`
	InstructorService ClientConfig   `toml:"instructor_service"`
	PackageService    ClientConfig   `toml:"package_service"`
	Engine            EngineConfig   `toml:"engine"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

// AuthConfig настройки доступа сотрудников школы
type AuthConfig struct {
	StaffUserIDs []int64 `toml:"staff_user_ids"` // могут просматривать и отменять любые бронирования
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN формирует строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis для кеша доступности инструкторов
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ClientConfig настройки HTTP клиента внешнего сервиса
type ClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// EngineConfig параметры движка бронирования
type EngineConfig struct {
	StepMinutes         int      `toml:"step_minutes"`
	LessonBlockMinutes  int      `toml:"lesson_block_minutes"`
	BufferMinutes       int      `toml:"buffer_minutes"`
	SearchWindowDays    int      `toml:"search_window_days"`
	PresetStarts        []string `toml:"preset_starts"`
	SlotCacheTTLSeconds int      `toml:"slot_cache_ttl_seconds"`
	Location            string   `toml:"location"`
}

// Presets возвращает предустановленные времена начала занятий
func (e EngineConfig) Presets() []types.TimeString {
	out := make([]types.TimeString, 0, len(e.PresetStarts))
	for _, s := range e.PresetStarts {
		out = append(out, types.MustTimeString(s))
	}
	return out
}

// SlotCacheTTL возвращает TTL кеша доступности инструкторов
func (e EngineConfig) SlotCacheTTL() time.Duration {
	return time.Duration(e.SlotCacheTTLSeconds) * time.Second
}

// Loc возвращает часовой пояс школы; все даты нормализуются в него
func (e EngineConfig) Loc() *time.Location {
	loc, err := time.LoadLocation(e.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load читает конфигурацию из TOML файла, проставляет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "school_booking"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.InstructorService.Timeout == 0 {
		c.InstructorService.Timeout = 5
	}
	if c.PackageService.Timeout == 0 {
		c.PackageService.Timeout = 5
	}

	if c.Engine.StepMinutes == 0 {
		c.Engine.StepMinutes = domain.DefaultStepMinutes
	}
	if c.Engine.LessonBlockMinutes == 0 {
		c.Engine.LessonBlockMinutes = domain.DefaultLessonBlockMinutes
	}
	if c.Engine.BufferMinutes == 0 {
		c.Engine.BufferMinutes = domain.DefaultBufferMinutes
	}
	if c.Engine.SearchWindowDays == 0 {
		c.Engine.SearchWindowDays = domain.DefaultSearchWindowDays
	}
	if len(c.Engine.PresetStarts) == 0 {
		c.Engine.PresetStarts = append([]string(nil), domain.DefaultPresetStarts...)
	}
	if c.Engine.SlotCacheTTLSeconds == 0 {
		c.Engine.SlotCacheTTLSeconds = 300
	}
	if c.Engine.Location == "" {
		c.Engine.Location = "UTC"
	}
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.InstructorService.URL == "" {
		return fmt.Errorf("%w: instructor_service.url is required", ErrInvalidConfig)
	}
	if c.PackageService.URL == "" {
		return fmt.Errorf("%w: package_service.url is required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}

	e := c.Engine
	if e.StepMinutes < domain.MinStepMinutes {
		return fmt.Errorf("%w: engine.step_minutes must be at least %d", ErrInvalidConfig, domain.MinStepMinutes)
	}
	if e.LessonBlockMinutes <= 0 || e.LessonBlockMinutes > domain.MaxLessonBlockMinutes {
		return fmt.Errorf("%w: engine.lesson_block_minutes must be in (0, %d]", ErrInvalidConfig, domain.MaxLessonBlockMinutes)
	}
	if e.LessonBlockMinutes%e.StepMinutes != 0 {
		return fmt.Errorf("%w: engine.lesson_block_minutes %d is not a multiple of step %d",
			ErrInvalidConfig, e.LessonBlockMinutes, e.StepMinutes)
	}
	if e.BufferMinutes < 0 {
		return fmt.Errorf("%w: engine.buffer_minutes must be non-negative", ErrInvalidConfig)
	}
	if e.SearchWindowDays <= 0 || e.SearchWindowDays > domain.MaxSearchWindowDays {
		return fmt.Errorf("%w: engine.search_window_days must be in (0, %d]", ErrInvalidConfig, domain.MaxSearchWindowDays)
	}
	for _, s := range e.PresetStarts {
		if _, err := types.NewTimeStringFromString(s); err != nil {
			return fmt.Errorf("%w: engine.preset_starts: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := time.LoadLocation(e.Location); err != nil {
		return fmt.Errorf("%w: engine.location: %v", ErrInvalidConfig, err)
	}

	return nil
}
