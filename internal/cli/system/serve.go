package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/constants"
	"github.com/momentum-app/momentum/internal/logger"
	"github.com/momentum-app/momentum/internal/server"
	"github.com/momentum-app/momentum/internal/utils"
)

type ServeCmd struct {
	Port int    `help:"Port to listen on." default:"5001"`
	DB   string `help:"Document store path or postgres:// connection string." default:"~/.config/momentum/backend.db"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	store, err := server.OpenDocStore(utils.ExpandHome(c.DB))
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer store.Close()

	port := c.Port
	if port == 0 {
		port = constants.DefaultServerPort
	}
	srv := server.New(server.Config{Port: port, Store: store})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	}
}
