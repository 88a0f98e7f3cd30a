package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/api"
	"github.com/markusressel/dim2go/internal/bridge"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/persistence"
	"github.com/markusressel/dim2go/internal/sinks"
	"github.com/markusressel/dim2go/internal/statistics"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

func RunDaemon() {
	if requiresRoot(configuration.CurrentConfig.Lights) && getProcessOwner() != "root" {
		ui.Warning("Hardware outputs usually require root permissions, writing to them might fail")
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath, configuration.CurrentConfig.JournalSize)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize journal at %s: %v", configuration.CurrentConfig.DbPath, err)
	}

	runners, err := InitializeObjects(pers)
	if err != nil {
		ui.Fatal("%v", err)
	}
	if len(runners) == 0 {
		ui.Fatal("No valid light configurations, exiting.")
	}
	statistics.Register(statistics.NewLightCollector(runners))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Starting statistics server on port %d...", port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		apiConfig := configuration.CurrentConfig.Api
		if apiConfig.Enabled {
			// === REST api
			rest := api.CreateRestService(prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", apiConfig.Host, apiConfig.Port)

			g.Add(func() error {
				ui.Info("Starting REST api on %s...", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		mqttConfig := configuration.CurrentConfig.Mqtt
		if mqttConfig.Enabled {
			// === Home Assistant bridge
			b := bridge.New(mqttConfig, runners)

			g.Add(func() error {
				err := b.Run(ctx)
				ui.Info("MQTT bridge stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error in MQTT bridge: %v", err)
				}
				cancel()
			})
		}
	}
	{
		// === light runners
		for _, runner := range runners {
			r := runner

			g.Add(func() error {
				err := r.Run(ctx)
				if err != nil {
					ui.Error("Light runner for %s failed: %v", r.GetId(), err)
				}
				return err
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects creates the sink and runner of every configured light
func InitializeObjects(pers persistence.Persistence) ([]*light.Runner, error) {
	var runners []*light.Runner
	for _, config := range configuration.CurrentConfig.Lights {
		sink, err := sinks.NewSink(config)
		if err != nil {
			return nil, fmt.Errorf("unable to process light configuration %s: %v", config.ID, err)
		}
		sinks.SinkMap.Set(config.ID, sink)

		runner, err := light.NewRunner(
			config,
			sink,
			pers,
			configuration.CurrentConfig.TickRate,
			configuration.CurrentConfig.TickRollingWindowSize,
		)
		if err != nil {
			return nil, fmt.Errorf("unable to process light configuration %s: %v", config.ID, err)
		}
		light.LightMap.Set(config.ID, runner)

		runners = append(runners, runner)
	}
	return runners, nil
}

func requiresRoot(lights []configuration.LightConfig) bool {
	for _, config := range lights {
		if config.File != nil || config.Cmd != nil {
			return true
		}
	}
	return false
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}
