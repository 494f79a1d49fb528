package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	d, err := Load(fs, "/etc/prewarm/config.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.ListenAddr != DefaultListenAddr {
		t.Errorf("expected default listen addr, got %q", d.ListenAddr)
	}
	if d.Cooldown() != 10*time.Second {
		t.Errorf("expected 10s cooldown, got %v", d.Cooldown())
	}
	if d.PollInterval() != 2*time.Second {
		t.Errorf("expected 2s poll interval, got %v", d.PollInterval())
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/cfg.json", []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(fs, "/cfg.json"); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	in := &Daemon{
		ListenAddr:          "127.0.0.1:9000",
		RPCSecret:           "s3cret",
		APIBaseURL:          "https://inference.example.com/v1",
		Target:              "animations/wave.mp4",
		CooldownSeconds:     30,
		PollIntervalSeconds: 5,
		ProxyURL:            "socks5://127.0.0.1:1080",
		Schedules: []Schedule{
			{Name: "weekday-morning", Cron: "0 8 * * 1-5"},
		},
	}

	if err := Save(fs, "/home/u/.config/prewarm/config.json", in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(fs, "/home/u/.config/prewarm/config.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if out.ListenAddr != in.ListenAddr {
		t.Errorf("listen addr: expected %q, got %q", in.ListenAddr, out.ListenAddr)
	}
	if out.APIBaseURL != in.APIBaseURL {
		t.Errorf("api base url: expected %q, got %q", in.APIBaseURL, out.APIBaseURL)
	}
	if out.Cooldown() != 30*time.Second {
		t.Errorf("expected 30s cooldown, got %v", out.Cooldown())
	}
	if len(out.Schedules) != 1 || out.Schedules[0].Name != "weekday-morning" {
		t.Errorf("unexpected schedules: %+v", out.Schedules)
	}
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := []byte(`{"apiBaseUrl": "https://inference.example.com/v1"}`)
	if err := afero.WriteFile(fs, "/cfg.json", raw, 0o600); err != nil {
		t.Fatal(err)
	}

	d, err := Load(fs, "/cfg.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.APIBaseURL != "https://inference.example.com/v1" {
		t.Errorf("unexpected api base url: %q", d.APIBaseURL)
	}
	if d.ListenAddr != DefaultListenAddr {
		t.Errorf("expected default listen addr, got %q", d.ListenAddr)
	}
	if d.CooldownSeconds != DefaultCooldownSeconds {
		t.Errorf("expected default cooldown, got %d", d.CooldownSeconds)
	}
}
