package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/apisdk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-b string   base URL of the API
//	-u string   auth URL
//	-k string   API code
//	-t int      HTTP timeout in seconds
//
// Only the flags above are taken from os.Args (see flagx.FilterArgs), so the
// config file flag does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-u", "-k", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "base URL of the API")
	fs.StringVar(&cfg.AuthURL, "u", cfg.AuthURL, "URL hosting the auth endpoints")
	fs.StringVar(&cfg.APICode, "k", cfg.APICode, "API code exchanged for a token")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is whole seconds; an unset flag keeps a finer value from the file or env.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.Timeout = time.Duration(*timeout) * time.Second
		}
	})
}
