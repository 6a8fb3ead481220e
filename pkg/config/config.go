package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config structs

type Config struct {
	IsDebug bool `yaml:"is_debug"`

	DataDir string `yaml:"data_dir"`

	Rippled  Rippled  `yaml:"rippled"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Nats     Nats     `yaml:"nats"`
	Ingest   Ingest   `yaml:"ingest"`

	Env Env `yaml:"env"`
}

type Rippled struct {
	// Websocket URL of the rippled instance to read from. A local
	// instance is strongly preferred, the public one is very slow.
	URL string `yaml:"url"`
}

type Postgres struct {
	Main PostgresServer `yaml:"main"`
}

type PostgresServer struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Pass         string `yaml:"pass"`
	DB           string `yaml:"db"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type Redis struct {
	Main RedisServer `yaml:"main"`
}

type RedisServer struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	DB      int    `yaml:"db"`
	Pass    string `yaml:"pass"`
}

type Nats struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

type Ingest struct {
	// Genesis is the halting point for full traversals.
	Genesis int64 `yaml:"genesis"`

	// CycleSeconds is the wall-clock interval between cycles. Cycles are
	// phase-aligned to multiples of the interval, not to run completion.
	CycleSeconds int64 `yaml:"cycle_seconds"`

	// Frequencies are resampling granularity codes (D, 8H, 4H, 2H, H,
	// 30T, 15T). Empty means all of them.
	Frequencies []string `yaml:"frequencies"`
}

type Env struct {
	XlogMode  string `yaml:"xlog_mode"`
	XlogColor bool   `yaml:"xlog_color"`
}

// Global variables

const DEVDATA = "/usr/local/rippletick/devdata"

const (
	DefaultGenesis      int64 = 152370
	DefaultCycleSeconds int64 = 3600
)

var Shared *Config // single instance of the config

var (
	fConfig string // config file path
)

func init() {
	flag.StringVar(&fConfig, "config", "", "specify the config file")
}

// Initialize the Shared config with the given config file path
func Init(configFile string) {
	file, err := os.Open(configFile)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(&Shared)
	if err != nil {
		panic(err)
	}

	applyDefaults()
}

// Initialize the Shared config with the default config file path
func EasyInit() {
	fpath := fConfig
	if fpath == "" {
		fpath = "config/config.yml"
	}

	// if the config file does not exist, use the default config file path
	if _, err := os.Stat(fpath); os.IsNotExist(err) {
		fpath = DEVDATA + "/config.yml"
		printf(fmt.Sprintf("use config: %s (DEVDATA)", fpath))
	} else {
		printf(fmt.Sprintf("use config: %s", fpath))
	}

	// initialize the config
	Init(fpath)
}

func applyDefaults() {
	if Shared.Rippled.URL == "" {
		Shared.Rippled.URL = "ws://127.0.0.1:6006/"
	}
	if Shared.Ingest.Genesis == 0 {
		Shared.Ingest.Genesis = DefaultGenesis
	}
	if Shared.Ingest.CycleSeconds == 0 {
		Shared.Ingest.CycleSeconds = DefaultCycleSeconds
	}
}

// Print the given string to the standard output
func printf(s string) {
	fmt.Printf("%s %s\n", time.Now().Format("2006/01/02 15:04:05"), s)
}
