package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultServerURL = "wss://sim3.psim.us/showdown/websocket"
	DefaultFormat    = "gen9randombattle"
	DefaultPlayer    = "maxpower"

	envPrefix = "SHOWBOT_"
)

type Config struct {
	ServerURL string
	Username  string
	Password  string `json:",omitempty"`
	Format    string
	// Player picks the decision maker: "random" or "maxpower".
	Player string
	// Strict rejects illegal orders instead of sending a random legal one.
	Strict     bool
	Debug      bool
	LogDir     string
	ReplayDir  string
	MaxBattles int
	// QueueSize bounds the lines buffered per battle room.
	QueueSize int
}

func DefaultConfigDir() string {
	configDir, _ := os.UserConfigDir()
	return filepath.Join(configDir, "showbot")
}

func DefaultConfigLocation() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Load reads the config file at path, writing one with defaults if it doesn't exist, then
// applies overrides from a .env file in the working directory and SHOWBOT_ variables.
func Load(path string) (Config, error) {
	config, err := readOrCreate(path)
	if err != nil {
		return Config{}, err
	}

	// a missing .env is normal
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnv(&config, os.LookupEnv); err != nil {
		return Config{}, err
	}

	return populateConfig(config), nil
}

func readOrCreate(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if len(contents) > 0 {
		config := Config{}
		if err := json.Unmarshal(contents, &config); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
		return config, nil
	}

	config := populateConfig(Config{})
	if err := Save(path, config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func Save(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	contents, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, contents, 0600)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SERVER_URL": &config.ServerURL,
		"USERNAME":   &config.Username,
		"PASSWORD":   &config.Password,
		"FORMAT":     &config.Format,
		"PLAYER":     &config.Player,
		"LOG_DIR":    &config.LogDir,
		"REPLAY_DIR": &config.ReplayDir,
	}
	for key, field := range strs {
		if value, ok := lookup(envPrefix + key); ok {
			*field = value
		}
	}

	bools := map[string]*bool{
		"STRICT": &config.Strict,
		"DEBUG":  &config.Debug,
	}
	for key, field := range bools {
		if value, ok := lookup(envPrefix + key); ok {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*field = parsed
		}
	}

	ints := map[string]*int{
		"MAX_BATTLES": &config.MaxBattles,
		"QUEUE_SIZE":  &config.QueueSize,
	}
	for key, field := range ints {
		if value, ok := lookup(envPrefix + key); ok {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*field = parsed
		}
	}

	return nil
}

func populateConfig(config Config) Config {
	configDir := DefaultConfigDir()

	if config.ServerURL == "" {
		config.ServerURL = DefaultServerURL
	}
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	if config.Player == "" {
		config.Player = DefaultPlayer
	}
	if config.LogDir == "" {
		config.LogDir = filepath.Join(configDir, "logs")
	}
	if config.ReplayDir == "" {
		config.ReplayDir = filepath.Join(configDir, "replays")
	}
	if config.MaxBattles <= 0 {
		config.MaxBattles = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 64
	}

	return config
}
