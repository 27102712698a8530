package cardbot

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/pack"
	"github.com/ellavondegurechaff/cardbot/cardbot/logger"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if env := os.Getenv("ADMIN_USERS"); env != "" {
		cfg.Bot.AdminUsers = append(cfg.Bot.AdminUsers, strings.Split(env, ",")...)
	}
	cfg.applyDefaults()

	if err = cfg.Pack.Slots().Validate(); err != nil {
		return nil, fmt.Errorf("invalid [pack] config: %w", err)
	}
	return &cfg, nil
}

type Config struct {
	Log    logger.Config     `toml:"log"`
	Bot    BotConfig         `toml:"bot"`
	DB     database.DBConfig `toml:"db"`
	Spaces SpacesConfig      `toml:"spaces"`
	Images ImagesConfig      `toml:"images"`
	Pack   PackConfig        `toml:"pack"`
	Trade  TradeConfig       `toml:"trade"`
	API    APIConfig         `toml:"api"`
}

type BotConfig struct {
	DevGuilds  []snowflake.ID `toml:"dev_guilds"`
	Token      string         `toml:"token"`
	AdminUsers []string       `toml:"admin_users"`
}

// SpacesConfig selects the DigitalOcean Spaces image store. An empty Key
// falls back to [images].
type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	CardRoot string `toml:"cardroot"`
}

func (c SpacesConfig) Enabled() bool {
	return c.Key != ""
}

type ImagesConfig struct {
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`
}

type PackConfig struct {
	Cooldown Duration      `toml:"cooldown"`
	Regular  []pack.Weight `toml:"regular"`
	Chase    []pack.Weight `toml:"chase"`
	// Seed fixes the draw sequence; zero seeds from the clock.
	Seed int64 `toml:"seed"`
}

// Slots converts the table form into the assembler's configuration.
func (c PackConfig) Slots() pack.Config {
	return pack.Config{
		Regular: pack.SlotConfig{Rarity: c.Regular},
		Chase:   pack.SlotConfig{Rarity: c.Chase, Foil: true},
	}
}

// APIConfig enables the read-only HTTP API when Address is set.
type APIConfig struct {
	Address string `toml:"address"`
}

type TradeConfig struct {
	Timeout Duration `toml:"timeout"`
}

// Duration reads values such as "24h" or "5m" from TOML strings.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (c *Config) applyDefaults() {
	defaults := pack.DefaultConfig()
	if c.Pack.Cooldown.Duration <= 0 {
		c.Pack.Cooldown.Duration = config.PackCooldown
	}
	if len(c.Pack.Regular) == 0 {
		c.Pack.Regular = defaults.Regular.Rarity
	}
	if len(c.Pack.Chase) == 0 {
		c.Pack.Chase = defaults.Chase.Rarity
	}
	if c.Trade.Timeout.Duration <= 0 {
		c.Trade.Timeout.Duration = config.TradeTimeout
	}
	if c.Images.Dir == "" {
		c.Images.Dir = "images"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
}
