package config

import (
	"flag"
	"os"

	"github.com/terminalchat/terminalchat/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   app directory (default from Config)
//	-d string   sqlite database path
//	-f string   root directory of the per-user file areas
//	-l string   log level: debug, info, warn, error
//
// os.Args is filtered down to these flags first so the command words and
// arguments of the CLI itself pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.AppDir, "a", cfg.AppDir, "app directory")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite database path")
	fs.StringVar(&cfg.FilesDir, "f", cfg.FilesDir, "file area root directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
