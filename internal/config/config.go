package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/vedantwpatil/mouse/internal/platform"
)

type Config struct {
	Backend string `toml:"backend"`
	Motion  struct {
		Rate float64 `toml:"rate"` // steps per second for timed moves
	} `toml:"motion"`
	Drag struct {
		Duration time.Duration `toml:"duration"`
	} `toml:"drag"`
	Click struct {
		Hold time.Duration `toml:"hold"`
	} `toml:"click"`
	Scroll struct {
		Duration time.Duration `toml:"duration"`
		Unit     string        `toml:"unit"`
	} `toml:"scroll"`
	Watch struct {
		Rate float64 `toml:"rate"`
	} `toml:"watch"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

func NewConfig() *Config {
	c := &Config{Backend: platform.Native}
	c.Motion.Rate = 90
	c.Drag.Duration = 200 * time.Millisecond
	c.Click.Hold = 100 * time.Millisecond
	c.Scroll.Duration = 200 * time.Millisecond
	c.Scroll.Unit = "line"
	c.Watch.Rate = 30
	c.Log.Level = "info"
	c.Log.Format = "text"
	return c
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mouse", "config.toml")
}

// Load reads the TOML file at path over the defaults. An empty path reads
// DefaultPath and tolerates it being absent.
func Load(path string) (*Config, error) {
	c := NewConfig()
	optional := path == ""
	if optional {
		path = DefaultPath()
		if path == "" {
			return c, nil
		}
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case platform.Native, platform.Robotgo:
	default:
		return fmt.Errorf("backend %q: want %q or %q", c.Backend, platform.Native, platform.Robotgo)
	}
	if !finitePositive(c.Motion.Rate) {
		return fmt.Errorf("motion.rate must be positive and finite, got %v", c.Motion.Rate)
	}
	if !finitePositive(c.Watch.Rate) {
		return fmt.Errorf("watch.rate must be positive and finite, got %v", c.Watch.Rate)
	}
	if c.Drag.Duration < 0 || c.Click.Hold < 0 || c.Scroll.Duration < 0 {
		return errors.New("durations must not be negative")
	}
	if _, err := platform.ParseScrollUnit(c.Scroll.Unit); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Logger builds a logger that writes to stderr at the configured level and
// format.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
