package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m3tools/m3cd/src/internal/api"
	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/service"
)

// ServeCommand runs the HTTP API over the config bundle of a merge job.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	listenAddr string
	anyClient  bool

	workspace    *service.Workspace
	configHasher *config.ConfigHasher
}

func CreateServeCommand() Runner {
	return &ServeCommand{}
}

func (c *ServeCommand) Name() string {
	return "serve"
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet(c.Name(), flag.ExitOnError)
	c.fs.StringVar(&c.listenAddr, "listen", "127.0.0.1:8080", "Address to bind the HTTP server")
	c.fs.BoolVar(&c.anyClient, "allow-remote", false, "Accept clients outside loopback and private networks")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	ws, err := ctx.deps().Merger().OpenWorkspace(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to load config bundle: %w", err)
	}
	c.workspace = ws
	c.configHasher = config.NewConfigHasher(ctx.ConfigPath, ctx.deps().Fs())

	return nil
}

func (c *ServeCommand) Run() error {
	log.Infof("Serving %s config bundle from %s", c.workspace.Game(), c.workspace.Dir())
	log.Infof("Merge job loaded from: %s", c.ctx.ConfigPath)

	handler := api.NewHandler(c.cfg, c.ctx.deps(), c.workspace, c.configHasher)
	server := api.NewServer(c.listenAddr, api.NewRouter(handler, api.RouterOptions{LocalOnly: !c.anyClient}))

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return err
		}

		if c.workspace.HasChanges() {
			log.Warnf("Server stopped with uncommitted merges; they were discarded")
		}
		log.Infof("Server stopped gracefully")
	}

	return nil
}
