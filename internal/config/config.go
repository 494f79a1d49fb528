// Package config loads and saves the prewarm daemon configuration file.
// The file is JSON; all filesystem access goes through an afero.Fs so
// tests can run against an in-memory filesystem.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	// DefaultListenAddr is where the daemon control surface binds.
	DefaultListenAddr = "127.0.0.1:4661"
	// DefaultCooldownSeconds is the warm cooldown when unset.
	DefaultCooldownSeconds = 10
	// DefaultPollIntervalSeconds is the prediction poll interval when unset.
	DefaultPollIntervalSeconds = 2
)

// Schedule declares a recurring warm trigger in the config file.
type Schedule struct {
	// Name identifies the schedule for removal and listing.
	Name string `json:"name"`
	// Cron is a standard five-field cron expression.
	Cron string `json:"cron"`
}

// Daemon is the persisted daemon configuration.
type Daemon struct {
	// ListenAddr is the address of the JSON-RPC control surface.
	ListenAddr string `json:"listenAddr"`
	// RPCSecret is the bearer secret for the control surface.
	// Empty disables RPC entirely.
	RPCSecret string `json:"rpcSecret,omitempty"`
	// APIBaseURL is the root of the remote inference prediction API.
	APIBaseURL string `json:"apiBaseUrl"`
	// Target is the animation reference sent with warm calls.
	Target string `json:"target,omitempty"`
	// CooldownSeconds is the minimum gap between successful warm calls.
	CooldownSeconds int `json:"cooldownSeconds,omitempty"`
	// PollIntervalSeconds is the wait between prediction status polls.
	PollIntervalSeconds int `json:"pollIntervalSeconds,omitempty"`
	// ProxyURL optionally routes warm calls through a proxy
	// (http, https or socks5).
	ProxyURL string `json:"proxyUrl,omitempty"`
	// LogPath optionally mirrors daemon logs to a file.
	LogPath string `json:"logPath,omitempty"`
	// Schedules are recurring warm triggers armed at daemon start.
	Schedules []Schedule `json:"schedules,omitempty"`
}

func (d *Daemon) setDefault() {
	if d.ListenAddr == "" {
		d.ListenAddr = DefaultListenAddr
	}
	if d.CooldownSeconds <= 0 {
		d.CooldownSeconds = DefaultCooldownSeconds
	}
	if d.PollIntervalSeconds <= 0 {
		d.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
}

// Cooldown returns the cooldown period as a duration.
func (d *Daemon) Cooldown() time.Duration {
	return time.Duration(d.CooldownSeconds) * time.Second
}

// PollInterval returns the poll interval as a duration.
func (d *Daemon) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalSeconds) * time.Second
}

// DefaultPath returns the default config file location under the user's
// config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "prewarm", "config.json")
}

// Load reads the daemon configuration from path. A missing file yields the
// defaults; a malformed file is an error.
func Load(fs afero.Fs, path string) (*Daemon, error) {
	d := &Daemon{}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			d.setDefault()
			return d, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	d.setDefault()
	return d, nil
}

// Save writes the daemon configuration to path, creating parent
// directories as needed.
func Save(fs afero.Fs, path string, d *Daemon) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, append(data, '\n'), 0o600)
}
