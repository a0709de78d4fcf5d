package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Seednode/lingokub/games/lingo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind       string
	port       int
	prefix     string
	profile    bool
	tlsCert    string
	tlsKey     string
	verbose    bool
	version    bool
	rows       int
	cols       int
	handSize   int
	chatRetain bool
	chatLimit  int
	sendBuffer int
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.rows < 1 || c.cols < 1 {
		return fmt.Errorf("invalid board size (rows and columns must be at least 1): %dx%d", c.rows, c.cols)
	}
	if c.handSize < 0 {
		return fmt.Errorf("invalid hand size (must not be negative): %d", c.handSize)
	}
	if c.chatLimit < 1 {
		return fmt.Errorf("invalid chat history (must be at least 1): %d", c.chatLimit)
	}
	if c.sendBuffer < 1 {
		return fmt.Errorf("invalid send buffer (must be at least 1): %d", c.sendBuffer)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) sessionOptions() lingo.Options {
	opts := lingo.DefaultOptions()
	opts.Rows = c.rows
	opts.Cols = c.cols
	opts.HandSize = c.handSize
	opts.RetainChat = c.chatRetain
	opts.MaxChatHistory = c.chatLimit
	return opts
}

// joinBurst is how many frames a join queues for the joiner in one hub turn,
// not counting the chat replay.
const joinBurst = 5

// queueSize fits a whole join, chat replay included, on top of the
// configured headroom.
func (c *Config) queueSize() int {
	size := c.sendBuffer + joinBurst
	if c.chatRetain {
		size += c.chatLimit
	}
	return size
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LINGOKUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "lingokub",
		Short:         "Serves a multiplayer word-tile board game with chat over WebSockets.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			configureLogging(cfg)
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: LINGOKUB_BIND)")
	fs.BoolVar(&cfg.chatRetain, "chat-retain", true, "keep chat history and replay it to joining players (env: LINGOKUB_CHAT_RETAIN)")
	fs.IntVar(&cfg.chatLimit, "chat-history", 100, "maximum number of chat messages to keep (env: LINGOKUB_CHAT_HISTORY)")
	fs.IntVar(&cfg.cols, "cols", 8, "number of board columns (env: LINGOKUB_COLS)")
	fs.IntVar(&cfg.handSize, "hand-size", 7, "number of cards dealt to each joining player (env: LINGOKUB_HAND_SIZE)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: LINGOKUB_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: LINGOKUB_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: LINGOKUB_PROFILE)")
	fs.IntVar(&cfg.rows, "rows", 5, "number of board rows (env: LINGOKUB_ROWS)")
	fs.IntVar(&cfg.sendBuffer, "send-buffer", 64, "outbound messages queued per connection before it is dropped (env: LINGOKUB_SEND_BUFFER)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: LINGOKUB_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: LINGOKUB_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: LINGOKUB_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: LINGOKUB_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("lingokub v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
