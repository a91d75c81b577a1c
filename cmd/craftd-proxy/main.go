package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mickamy/craftd-proxy/monitor"
	"github.com/mickamy/craftd-proxy/monitor/inspector"
	"github.com/mickamy/craftd-proxy/proxy"
)

var version = "dev"

func main() {
	fs := flag.NewFlagSet("craftd-proxy", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "craftd-proxy — survival-protocol proxy\n\nUsage:\n  craftd-proxy [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	listen := fs.String("listen", "0.0.0.0:25565", "downstream listen address")
	hostname := fs.String("hostname", "127.0.0.1", "upstream hostname")
	port := fs.Int("port", 25565, "upstream port")
	inspect := fs.Bool("inspect", false, "attach a live packet-inspector TUI")
	kickMessage := fs.String("kick-message", "", "reason string logged (not sent) when a session is dropped for Malformed")
	showVersion := fs.Bool("version", false, "show version and exit")

	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("craftd-proxy %s\n", version)
		return
	}

	cfg := proxy.Config{
		Listen:          *listen,
		Hostname:        *hostname,
		Port:            *port,
		KickMessage:     *kickMessage,
		DialTimeout:     5 * time.Second,
		PingDescription: "A craftd-proxy server",
	}

	if err := run(cfg, *inspect); err != nil {
		log.Fatal(err)
	}
}

func run(cfg proxy.Config, inspect bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	broker := monitor.New()
	sup := proxy.NewSupervisor(cfg, broker)

	if inspect {
		prog := tea.NewProgram(inspector.New(broker))
		go func() {
			if _, err := prog.Run(); err != nil {
				log.Printf("inspector: %v", err)
			}
			stop()
		}()
	}

	log.Printf("proxying %s -> %s:%d", cfg.Listen, cfg.Hostname, cfg.Port)
	if err := sup.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("proxy: %w", err)
	}
	return nil
}
