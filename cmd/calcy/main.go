package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			initCmd := flag.NewFlagSet("init", flag.ExitOnError)
			initCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: calcy init [flags]\n\nInitialize a .calcy directory with an interactively chosen config.\n\nFlags:\n")
				initCmd.PrintDefaults()
			}
			dir := initCmd.String("calcy-dir", ".calcy", "path to .calcy directory")
			_ = initCmd.Parse(os.Args[2:])

			exitOnError(runInit(*dir))
			return
		case "mcp":
			mcpCmd := flag.NewFlagSet("mcp", flag.ExitOnError)
			mcpCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: calcy mcp [flags]\n\nServe the calculator as MCP tools over stdin/stdout.\n\nFlags:\n")
				mcpCmd.PrintDefaults()
			}
			var opts options
			opts.register(mcpCmd)
			_ = mcpCmd.Parse(os.Args[2:])

			exitOnError(loadDotEnv(opts.envFile))
			exitOnError(runMCP(opts))
			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: calcy [flags]\n       calcy <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  init    Initialize a .calcy directory with default structure and config\n  mcp     Serve the calculator as MCP tools over stdio\n")
	}

	var opts options
	opts.register(flag.CommandLine)
	theme := flag.String("theme", "", "theme override: dark, light or mono")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn or error")
	flag.Parse()

	opts.theme = *theme
	opts.logLevel = *logLevel

	exitOnError(loadDotEnv(opts.envFile))
	exitOnError(run(opts))
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
