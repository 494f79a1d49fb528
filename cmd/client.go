package cmd

import (
	"github.com/spf13/afero"

	"github.com/prewarm/prewarm/internal/config"
	"github.com/prewarm/prewarm/pkg/warmcli"
)

// loadConfig reads the prewarm config from --config or the default path.
func loadConfig() (*config.Daemon, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(afero.NewOsFs(), path)
}

// newClient connects to the daemon using the configured listen address
// and RPC secret. The --addr flag overrides the configured address.
func newClient() (*warmcli.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	addr := cfg.ListenAddr
	if daemonAddr != "" {
		addr = daemonAddr
	}
	return warmcli.NewClient("http://"+addr, cfg.RPCSecret, nil), nil
}
