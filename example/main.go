// Command example demonstrates resolving a typed configuration from an ini
// file, environment variables and command-line flags.
package main

import (
	"fmt"
	"net"
	"time"

	"github.com/confstack/confstack"
)

type Config struct {
	Host     string              `cfg:"host" help:"server to connect to"`
	Port     int                 `cfg:"port" default:"8080" help:"server port"`
	Bind     net.IP              `cfg:"bind" default:"127.0.0.1" help:"address to bind"`
	Timeout  time.Duration       `cfg:"timeout" default:"30s" help:"request timeout"`
	Verbose  bool                `cfg:"verbose" help:"enable verbose output"`
	NoColor  bool                `cfg:"no-color" default:"true" help:"negating switch: present means color on"`
	DataDir  confstack.Path      `cfg:"data-dir" default:"~/.local/share/example" help:"state directory"`
	Tags     []string            `cfg:"tags" help:"comma separated tags"`
	Replicas map[string]int      `cfg:"replicas" help:"name:count pairs"`
	Admins   map[string]struct{} `cfg:"admins" help:"set of admin users"`
}

func main() {
	var cfg Config
	confstack.MustLoad(&cfg, "example program", "example", "example.ini", "client")

	fmt.Printf("host=%s port=%d bind=%s timeout=%s\n", cfg.Host, cfg.Port, cfg.Bind, cfg.Timeout)
	fmt.Printf("verbose=%v no-color=%v data-dir=%s\n", cfg.Verbose, cfg.NoColor, cfg.DataDir)
	fmt.Printf("tags=%v replicas=%v admins=%d\n", cfg.Tags, cfg.Replicas, len(cfg.Admins))
}
