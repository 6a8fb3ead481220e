package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"rippletick/pkg/config"
	"rippletick/pkg/info"
	"rippletick/pkg/ingest"
	"rippletick/pkg/model"
	"rippletick/pkg/resample"
	"rippletick/pkg/rippled"
	"rippletick/pkg/xlog"
	"rippletick/pkg/xnats"
)

var logger = xlog.GetLogger()

var (
	fApp     string
	fFull    bool
	fGenesis int64
	fWs      string
	fPublic  bool
	fLogDir  string
	fLogFile string
)

var (
	apps = map[string]bool{"download": true, "daemon": true}
)

func init() {
	flag.StringVar(&fApp, "app", "download", "download (one cycle) or daemon (repeating cycles)")
	flag.BoolVar(&fFull, "full", false, "re-download the entire ledger history")
	flag.Int64Var(&fGenesis, "genesis", 0, "halting point for full downloads")
	flag.StringVar(&fWs, "ws", "", "rippled websocket url")
	flag.BoolVar(&fPublic, "public", false, "use the public websocket endpoint")
	flag.StringVar(&fLogDir, "logdir", "", "")
	flag.StringVar(&fLogFile, "logfile", "", "")
}

func main() {
	flag.Parse()

	if !apps[fApp] {
		validApps := ""
		for k := range apps {
			validApps += k + ", "
		}
		panic("invalid app, only (" + validApps + ") avaliable")
	}

	// Initialize the Shared config
	config.EasyInit()

	// Initialize the logger
	if fLogDir == "" {
		fLogDir = filepath.Join(config.Shared.DataDir, "logs")
	}
	if fLogFile == "" {
		fLogFile = fApp + ".log"
	}
	logPath := filepath.Join(fLogDir, fLogFile)
	xlog.Init(fApp, logPath)
	logger.Infof("%s started, version:%s, instance:%s", fApp, info.Version, info.InstanceID)
	logger.Infof("xlog in %s", logPath)

	// Handle signals
	go handleSignals()

	// Initialize the database instances(postgres, redis)
	// fatal if failed
	model.DBInit()

	store := model.NewStore()
	defer store.Close()

	orch := &ingest.Orchestrator{
		Store:       store,
		RippledURL:  rippledURL(),
		Genesis:     genesis(),
		Frequencies: frequencies(),
		Interval:    time.Duration(config.Shared.Ingest.CycleSeconds) * time.Second,
	}

	if config.Shared.Nats.Enabled {
		pub, err := xnats.NewPublisher(config.Shared.Nats.URL)
		if err != nil {
			logger.Errorf("nats publisher unavailable, err:%s", err)
		} else {
			defer pub.Close()
			orch.Pub = pub
		}
	}

	switch fApp {
	case "download":
		// schema is created on the first run either way
		full := fFull || !store.HasSchema()
		if err := orch.RunOnce(full); err != nil {
			logger.Error(err)
			os.Exit(1)
		}
	case "daemon":
		if fFull {
			if err := orch.RunOnce(true); err != nil {
				logger.Error(err)
			}
		}
		orch.Loop()
	}
}

func rippledURL() string {
	if fPublic {
		return rippled.PublicURL
	}
	if fWs != "" {
		return fWs
	}
	return config.Shared.Rippled.URL
}

func genesis() int64 {
	if fGenesis > 0 {
		return fGenesis
	}
	return config.Shared.Ingest.Genesis
}

func frequencies() (freqs []resample.Freq) {
	for _, code := range config.Shared.Ingest.Frequencies {
		f, ok := resample.ByCode(code)
		if !ok {
			logger.Warningf("unknown resampling frequency %q skipped", code)
			continue
		}
		freqs = append(freqs, f)
	}
	return freqs
}

// handleSignals handles linux signals
//
//	Function 1: Change log level via SIGUSR1 signal
//		docker exec <container_id> sh -c 'export XLOG_LVL=TRACE && kill -SIGUSR1 1'
func handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGUSR1)

	for sig := range sigChan {
		if sig == syscall.SIGUSR1 {
			level := os.Getenv("XLOG_LVL")
			if level != "" {
				xlog.GetLogger().SetLevel(level)
			}
		}
	}
}
