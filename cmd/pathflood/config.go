package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vertex-lab/pathflood/pkg/bus/redisbus"
	"github.com/vertex-lab/pathflood/pkg/flood"
	"github.com/vertex-lab/pathflood/pkg/utils/logger"
)

const (
	BusLocal string = "local"
	BusRedis string = "redis"
)

type SystemConfig struct {
	Log             *logger.Aggregate
	LogWriter       io.Writer
	LogDebug        bool
	DisplayConfig   bool
	Bus             string
	Topology        string
	MailboxCapacity int
	StartDelay      time.Duration // how long an initiator waits for the other nodes before searching
	MetricsAddr     string        // empty means no metrics server
}

// The configuration parameters for the system and its components.
type Config struct {
	SystemConfig
	Node  flood.NodeConfig
	Redis redisbus.Config
}

func NewSystemConfig() SystemConfig {
	return SystemConfig{
		LogWriter:       os.Stdout,
		LogDebug:        false,
		DisplayConfig:   false,
		Bus:             BusLocal,
		MailboxCapacity: 1024,
		StartDelay:      0,
	}
}

// NewConfig() returns a config with default parameters.
func NewConfig() *Config {
	return &Config{
		SystemConfig: NewSystemConfig(),
		Node:         flood.NewNodeConfig(),
		Redis:        redisbus.NewConfig(),
	}
}

func (c SystemConfig) Print() {
	fmt.Println("System:")
	fmt.Printf("  LogWriter: %T\n", c.LogWriter)
	fmt.Printf("  LogDebug: %t\n", c.LogDebug)
	fmt.Printf("  Bus: %s\n", c.Bus)
	fmt.Printf("  Topology: %s\n", c.Topology)
	fmt.Printf("  MailboxCapacity: %d\n", c.MailboxCapacity)
	fmt.Printf("  StartDelay: %v\n", c.StartDelay)
	fmt.Printf("  MetricsAddr: %s\n", c.MetricsAddr)
}

func (c *Config) Print() {
	c.SystemConfig.Print()
	c.Node.Print()
	if c.Bus == BusRedis {
		c.Redis.Print()
	}
}

// Validate() returns an error if the config can't be used to start the system.
func (c *Config) Validate() error {
	if c.Bus != BusLocal && c.Bus != BusRedis {
		return fmt.Errorf("%w: %q", ErrUnknownBus, c.Bus)
	}

	if c.MailboxCapacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMailboxCapacity, c.MailboxCapacity)
	}

	if c.StartDelay < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidStartDelay, c.StartDelay)
	}
	return c.Node.Validate()
}

// LoadConfig() reads the variables from the environment and parses them into a config struct.
func LoadConfig() (*Config, error) {
	var config = NewConfig()
	var err error

	for _, item := range os.Environ() {
		keyVal := strings.SplitN(item, "=", 2)
		key, val := keyVal[0], keyVal[1]

		switch key {
		case "LOGS":
			// LogWriter gets updated if a .log file is specified; otherwise it remains os.Stdout
			if strings.HasSuffix(val, ".log") {
				config.LogWriter, err = os.OpenFile(val, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
				if err != nil {
					return nil, fmt.Errorf("error opening file \"%v\": %v", val, err)
				}
			}

		case "LOG_DEBUG":
			config.LogDebug, err = strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "DISPLAY_CONFIG":
			config.DisplayConfig, err = strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "BUS":
			config.Bus = strings.ToLower(strings.TrimSpace(val))

		case "TOPOLOGY":
			config.Topology = val

		case "METRICS_ADDR":
			config.MetricsAddr = val

		case "MAILBOX_CAPACITY":
			config.MailboxCapacity, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}
			config.Redis.MailboxCapacity = config.MailboxCapacity

		case "START_DELAY":
			delay, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}
			config.StartDelay = time.Duration(delay) * time.Millisecond

		case "COLLECTION_WINDOW":
			window, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}
			config.Node.CollectionWindow = time.Duration(window) * time.Millisecond

		case "REPLY_QUEUE_CAPACITY":
			config.Node.ReplyQueueCapacity, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "REDIS_ADDR":
			config.Redis.Addr = val

		case "REDIS_DB":
			config.Redis.DB, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}
		}
	}

	config.Log = logger.New(config.LogWriter)
	if config.LogDebug {
		config.Log.EnableDebug()
	}

	return config, nil
}

// CloseLogs() closes the config.LogWriter if that is a file.
func (c *Config) CloseLogs() {
	if file, ok := c.LogWriter.(*os.File); ok && file != os.Stdout {
		file.Close()
	}
}

//---------------------------------ERROR-CODES---------------------------------

var (
	ErrUnknownBus             = errors.New("unknown bus, expected \"local\" or \"redis\"")
	ErrInvalidMailboxCapacity = errors.New("mailbox capacity must be positive")
	ErrInvalidStartDelay      = errors.New("start delay must be non-negative")
	ErrMissingTopology        = errors.New("no topology specified, use --topology or TOPOLOGY")
)
