package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vertex-lab/pathflood/pkg/flood"
)

func TestLoadConfigDefault(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig(): expected nil, got %v", err)
	}

	if config.Bus != BusLocal {
		t.Errorf("LoadConfig(): expected bus %s, got %s", BusLocal, config.Bus)
	}

	if config.Node.CollectionWindow != flood.DefaultCollectionWindow {
		t.Errorf("LoadConfig(): expected window %v, got %v", flood.DefaultCollectionWindow, config.Node.CollectionWindow)
	}

	if config.Log == nil {
		t.Fatalf("LoadConfig(): expected a logger, got nil")
	}

	if err := config.Validate(); err != nil {
		t.Fatalf("Validate(): expected nil, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("BUS", "Redis")
	t.Setenv("TOPOLOGY", "graphs/triangle.yaml")
	t.Setenv("COLLECTION_WINDOW", "500")
	t.Setenv("REPLY_QUEUE_CAPACITY", "10")
	t.Setenv("MAILBOX_CAPACITY", "20")
	t.Setenv("START_DELAY", "1500")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_DEBUG", "true")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig(): expected nil, got %v", err)
	}

	testCases := []struct {
		name     string
		got      any
		expected any
	}{
		{name: "bus", got: config.Bus, expected: BusRedis},
		{name: "topology", got: config.Topology, expected: "graphs/triangle.yaml"},
		{name: "window", got: config.Node.CollectionWindow, expected: 500 * time.Millisecond},
		{name: "reply queue", got: config.Node.ReplyQueueCapacity, expected: 10},
		{name: "mailbox", got: config.MailboxCapacity, expected: 20},
		{name: "redis mailbox", got: config.Redis.MailboxCapacity, expected: 20},
		{name: "start delay", got: config.StartDelay, expected: 1500 * time.Millisecond},
		{name: "redis addr", got: config.Redis.Addr, expected: "redis:6379"},
		{name: "redis db", got: config.Redis.DB, expected: 3},
		{name: "debug", got: config.LogDebug, expected: true},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if test.got != test.expected {
				t.Fatalf("LoadConfig(): expected %v, got %v", test.expected, test.got)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "window not a number", key: "COLLECTION_WINDOW", val: "two seconds"},
		{name: "debug not a bool", key: "LOG_DEBUG", val: "maybe"},
		{name: "redis db not a number", key: "REDIS_DB", val: "zero"},
		{name: "start delay not a number", key: "START_DELAY", val: "1s"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.key, test.val)
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("LoadConfig(): expected an error, got nil")
			}
		})
	}
}

func TestLoadConfigLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathflood.log")
	t.Setenv("LOGS", path)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig(): expected nil, got %v", err)
	}

	config.Log.Info("hello")
	config.CloseLogs()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): expected nil, got %v", err)
	}

	if len(data) == 0 {
		t.Fatalf("LoadConfig(): expected the logs in %s, got an empty file", path)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		modify        func(c *Config)
		expectedError error
	}{
		{
			name:          "valid",
			modify:        func(c *Config) {},
			expectedError: nil,
		},
		{
			name:          "unknown bus",
			modify:        func(c *Config) { c.Bus = "kafka" },
			expectedError: ErrUnknownBus,
		},
		{
			name:          "invalid mailbox capacity",
			modify:        func(c *Config) { c.MailboxCapacity = 0 },
			expectedError: ErrInvalidMailboxCapacity,
		},
		{
			name:          "negative start delay",
			modify:        func(c *Config) { c.StartDelay = -time.Second },
			expectedError: ErrInvalidStartDelay,
		},
		{
			name:          "invalid window",
			modify:        func(c *Config) { c.Node.CollectionWindow = 0 },
			expectedError: flood.ErrInvalidWindow,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			config := NewConfig()
			test.modify(config)

			if err := config.Validate(); !errors.Is(err, test.expectedError) {
				t.Fatalf("Validate(): expected %v, got %v", test.expectedError, err)
			}
		})
	}
}
