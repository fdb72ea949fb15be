// Command telnetprompt runs cliprompt over TCP/Telnet, wiring the same
// Quit/Help/Drive command table as cmd/demoprompt (SPEC_FULL.md §13),
// grounded on the original's Examples/Telnet/main.c and on this module's
// internal/server.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nullterm/cliprompt"
	"github.com/nullterm/cliprompt/internal/server"
)

func main() {
	addr := flag.String("addr", ":2323", "address to listen on")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := cliprompt.LoadConfig("")
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}

	pool := cliprompt.NewPool(cfg, demoCommands())

	srv := server.New(server.Config{Addr: *addr}, pool, logger)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
