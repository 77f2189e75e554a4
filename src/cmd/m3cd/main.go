package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/m3tools/m3cd/src/internal/commands"
	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

// Commands that work without a merge job.
var jobless = map[string]bool{
	"parse-struct": true,
}

func main() {
	ctx := &commands.AppContext{}

	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigFile, "Path to the merge job file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Coalesced config delta merger\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [command options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  merge [-dry-run] [-diff]          Apply every delta of the job to its config files\n")
		fmt.Fprintf(os.Stderr, "  validate                          Check the job and decode every delta file\n")
		fmt.Fprintf(os.Stderr, "  dump [-format text|json|xlsx]     Print the config bundle\n")
		fmt.Fprintf(os.Stderr, "  parse-struct [-brackets] <value>  Split a struct string into its entries\n")
		fmt.Fprintf(os.Stderr, "  serve [-listen addr]              Run the HTTP API\n")
		fmt.Fprintf(os.Stderr, "  watch [-debounce d]               Merge again whenever a delta file changes\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}
	// Reports and dumps go to stdout.
	log.SetForceStdErr(true)

	cmds := []commands.Runner{
		commands.CreateMergeCommand(),
		commands.CreateValidateCommand(),
		commands.CreateDumpCommand(),
		commands.CreateParseStructCommand(),
		commands.CreateServeCommand(),
		commands.CreateWatchCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	if !jobless[subcommand] {
		if _, err := os.Stat(ctx.ConfigPath); errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Merge job file not found: %s", ctx.ConfigPath)
		}
	}

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
