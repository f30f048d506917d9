package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/relabs-tech/sphere_trajectory/internal/trajectory"
)

// Config holds all application configuration values.
type Config struct {
	// Processing
	IntegrationRule       trajectory.Rule
	FloatingWindowSize    int     // samples
	RadiusWindowSeconds   float64 // seconds
	RadiusStepSamples     int     // samples between radius windows
	RadiusSmoothingWindow int     // samples, 0 disables

	// MQTT
	MQTTBroker            string // empty disables publishing
	MQTTClientIDProcessor string
	MQTTClientIDConsole   string

	// Topics
	TopicTrajectory string
	TopicRadius     string

	// Web Server
	WebServerPort int

	// Storage
	DBPath string

	// Plots
	PlotOutputDir string
	PlotAxisLimit float64 // metres, each projection spans ±limit

	// Probe serial link
	SerialPort     string
	SerialBaudRate int
}

// Package-level singleton: InitGlobal sets it once, Get reads it under a
// read lock so goroutines can share it.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used for keys a file leaves unset.
func Default() *Config {
	p := trajectory.DefaultParams()
	return &Config{
		IntegrationRule:       p.Rule,
		FloatingWindowSize:    p.FloatingWindow,
		RadiusWindowSeconds:   p.Radius.WindowSeconds,
		RadiusStepSamples:     p.Radius.Step,
		RadiusSmoothingWindow: p.Radius.Smoothing,

		MQTTBroker:            "tcp://localhost:1883",
		MQTTClientIDProcessor: "sphere-processor",
		MQTTClientIDConsole:   "sphere-console",

		TopicTrajectory: "sphere/trajectory",
		TopicRadius:     "sphere/radius",

		WebServerPort: 8080,
		DBPath:        "sphere_runs.db",
		PlotOutputDir: "plots",
		PlotAxisLimit: 0.5,

		SerialPort:     "/dev/ttyUSB0",
		SerialBaudRate: 115200,
	}
}

// Load reads a configuration file. Files ending in .yaml or .yml are parsed
// as a flat YAML mapping with lower-case keys; anything else as KEY=VALUE
// lines.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = cfg.loadYAML(data)
	default:
		err = cfg.loadKeyValue(string(data))
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadKeyValue(data string) error {
	scanner := bufio.NewScanner(strings.NewReader(data))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}
		if err := c.setValue(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func (c *Config) loadYAML(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	for key, v := range raw {
		var value string
		switch v := v.(type) {
		case nil:
		case map[string]any, []any:
			return fmt.Errorf("config key %q: nested values are not supported", key)
		default:
			value = fmt.Sprint(v)
		}
		if err := c.setValue(strings.ToUpper(key), value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	var err error
	switch key {
	// Processing
	case "INTEGRATION_RULE":
		c.IntegrationRule, err = trajectory.ParseRule(value)
	case "FLOATING_WINDOW_SIZE":
		c.FloatingWindowSize, err = parseInt(key, value)
	case "RADIUS_WINDOW_SECONDS":
		c.RadiusWindowSeconds, err = parseFloat(key, value)
	case "RADIUS_STEP_SAMPLES":
		c.RadiusStepSamples, err = parseInt(key, value)
	case "RADIUS_SMOOTHING_WINDOW":
		c.RadiusSmoothingWindow, err = parseInt(key, value)

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PROCESSOR":
		c.MQTTClientIDProcessor = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value

	// Topics
	case "TOPIC_TRAJECTORY":
		c.TopicTrajectory = value
	case "TOPIC_RADIUS":
		c.TopicRadius = value

	// Web Server
	case "WEB_SERVER_PORT":
		c.WebServerPort, err = parseInt(key, value)

	// Storage
	case "DB_PATH":
		c.DBPath = value

	// Plots
	case "PLOT_OUTPUT_DIR":
		c.PlotOutputDir = value
	case "PLOT_AXIS_LIMIT":
		c.PlotAxisLimit, err = parseFloat(key, value)

	// Serial
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		c.SerialBaudRate, err = parseInt(key, value)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return err
}

func parseInt(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

// validate checks ranges the pipeline would otherwise reject later.
func (c *Config) validate() error {
	if c.FloatingWindowSize < 1 {
		return fmt.Errorf("FLOATING_WINDOW_SIZE must be at least 1, got %d", c.FloatingWindowSize)
	}
	if c.RadiusWindowSeconds <= 0 {
		return fmt.Errorf("RADIUS_WINDOW_SECONDS must be positive, got %g", c.RadiusWindowSeconds)
	}
	if c.RadiusStepSamples < 1 {
		return fmt.Errorf("RADIUS_STEP_SAMPLES must be at least 1, got %d", c.RadiusStepSamples)
	}
	if c.RadiusSmoothingWindow < 0 {
		return fmt.Errorf("RADIUS_SMOOTHING_WINDOW must not be negative, got %d", c.RadiusSmoothingWindow)
	}
	if c.WebServerPort < 1 || c.WebServerPort > 65535 {
		return fmt.Errorf("WEB_SERVER_PORT must be 1-65535, got %d", c.WebServerPort)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.PlotAxisLimit <= 0 {
		return fmt.Errorf("PLOT_AXIS_LIMIT must be positive, got %g", c.PlotAxisLimit)
	}
	if c.SerialBaudRate <= 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE must be positive, got %d", c.SerialBaudRate)
	}
	return nil
}

// TrajectoryParams maps the processing keys onto pipeline parameters.
func (c *Config) TrajectoryParams() trajectory.Params {
	return trajectory.Params{
		Rule:           c.IntegrationRule,
		FloatingWindow: c.FloatingWindowSize,
		Radius: trajectory.RadiusParams{
			WindowSeconds: c.RadiusWindowSeconds,
			Step:          c.RadiusStepSamples,
			Smoothing:     c.RadiusSmoothingWindow,
		},
	}
}

// InitGlobal initializes the global configuration from file.
// Only the first call has any effect.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
