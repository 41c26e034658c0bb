package main

import "flag"

// cliFlags are the command-line overrides. Everything else comes from the
// global configuration file and environment.
type cliFlags struct {
	ConfigFile  string
	ListenAddr  string
	StoragePath string
}

func parseFlags() *cliFlags {
	flags := &cliFlags{}

	flag.StringVar(&flags.ConfigFile, "globalconfig", "", "Path to the global YAML configuration file. If not set, searches default locations.")
	flag.StringVar(&flags.ConfigFile, "gc", "", "Alias for --globalconfig")

	flag.StringVar(&flags.ListenAddr, "listen", "", "HTTP listen address (overrides config file if set)")
	flag.StringVar(&flags.ListenAddr, "l", "", "Alias for --listen")

	flag.StringVar(&flags.StoragePath, "storage", "", "Storage root for the project tree (overrides config file and STORAGE_PATH if set)")
	flag.StringVar(&flags.StoragePath, "s", "", "Alias for --storage")

	flag.Parse()
	return flags
}
