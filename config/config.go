package config

import (
	"emperror.dev/errors"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"helyi-torpe/minesweeper"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Token   string `env:"DISCORD_BOT_TOKEN,required,notEmpty"`
	GuildID string `env:"DISCORD_GUILD_ID"`
	Port    string `env:"PORT" envDefault:"8080"`

	SourceURL string `env:"SOURCE_URL" envDefault:"https://github.com/SakiiCode/helyi-torpe-rust"`

	MinesweeperSize  int `env:"MINESWEEPER_SIZE" envDefault:"9"`
	MinesweeperMines int `env:"MINESWEEPER_MINES" envDefault:"10"`

	// MemeHistoryLimit is how many recent messages /meme searches for an image.
	MemeHistoryLimit int `env:"MEME_HISTORY_LIMIT" envDefault:"20"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files (".env" when none are named) and parses
// the environment. A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		logrus.Info("Note: No .env file found.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapIf(err, "parsing environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if err := minesweeper.Validate(c.MinesweeperSize, c.MinesweeperMines); err != nil {
		errs = append(errs, errors.WrapIf(err, "MINESWEEPER_SIZE/MINESWEEPER_MINES"))
	} else if !minesweeper.Fits(c.MinesweeperSize, c.MinesweeperMines) {
		errs = append(errs, errors.Errorf("MINESWEEPER_SIZE: a %dx%d board does not fit in a Discord message", c.MinesweeperSize, c.MinesweeperSize))
	}

	if c.MemeHistoryLimit < 1 || c.MemeHistoryLimit > 100 {
		errs = append(errs, errors.Errorf("MEME_HISTORY_LIMIT: must be between 1 and 100, got %d", c.MemeHistoryLimit))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, errors.WrapIf(err, "LOG_LEVEL"))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, errors.Errorf("LOG_FORMAT: must be text or json, got %q", c.LogFormat))
	}

	return errors.Combine(errs...)
}

// ConfigureLogger applies the log level and format to l.
func (c *Config) ConfigureLogger(l *logrus.Logger) {
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	}

	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
