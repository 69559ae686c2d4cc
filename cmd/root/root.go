// Package root contains the root command for the application
package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/paycheck-planner/internal/config"
	"fjacquet/paycheck-planner/internal/container"
	"fjacquet/paycheck-planner/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	User     string
	LogLevel string
	Store    string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "paycheck-planner",
		Short: "Turn plain-language paycheck instructions into a budget plan.",
		Long: `paycheck-planner reads instructions such as
"I got $6000 for my paycheck, $1500 to rent and the rest to savings"
and splits the income across budget categories. Accepted plans are
remembered per user to suggest usual amounts next time.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer == nil {
				return
			}
			if err := appContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close resources")
			}
			appContainer = nil
		},
	}

	// SharedFlags are bound to the persistent flags of the root command
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	pf := Cmd.PersistentFlags()
	pf.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (- for stdin)")
	pf.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	pf.StringVarP(&SharedFlags.User, "user", "u", "", "User whose habits are learned (default: user.id from config)")
	pf.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&SharedFlags.Store, "store", "", "Pattern store backend: yaml, sqlite or memory")
}

func setup() error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.Store != "" {
		cfg.Store.Backend = SharedFlags.Store
	}
	if SharedFlags.User != "" {
		cfg.User.ID = SharedFlags.User
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	SetContainer(c)
	return nil
}

// SetContainer installs the container used by subcommands and makes its
// logger the default one.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
		logging.SetLogger(Log)
	}
}

// GetContainer returns the container built for the running command.
func GetContainer() (*container.Container, error) {
	if appContainer == nil {
		return nil, errors.New("application is not initialized")
	}
	return appContainer, nil
}

// Context returns the command's context, or a background context when the
// command is run outside Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ReadText returns the instruction given as arguments, or read from the input
// file when there are none.
func ReadText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if SharedFlags.Input == "" {
		return "", errors.New("no instruction given: pass it as arguments or with --input")
	}

	r, closeFn, err := OpenInput(cmd)
	if err != nil {
		return "", err
	}
	defer closeFn()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// OpenInput opens the --input file, or the command's stdin for "-" or no file.
func OpenInput(cmd *cobra.Command) (io.Reader, func(), error) {
	if SharedFlags.Input == "" || SharedFlags.Input == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(SharedFlags.Input) // #nosec G304 -- user supplied input file
	if err != nil {
		return nil, nil, fmt.Errorf("error opening input file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// OpenOutput opens the --output file, or the command's stdout when unset.
func OpenOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if SharedFlags.Output == "" || SharedFlags.Output == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(SharedFlags.Output), 0750); err != nil {
		return nil, nil, fmt.Errorf("error creating output directory: %w", err)
	}
	f, err := os.Create(SharedFlags.Output) // #nosec G304 -- user supplied output file
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file: %w", err)
	}
	return f, f.Close, nil
}
