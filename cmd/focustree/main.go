// Package main is the entry point for the focustree application.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"focustree/internal/config"
	"focustree/internal/storage"
	"focustree/internal/tree"
	"focustree/internal/tui"
)

const version = "0.1.0"

const helpText = `focustree - Terminal tracker for hierarchical commitments

USAGE:
    focustree [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file
    --data <dir>    Override the data directory for this run

CONFIGURATION:
    Config file: ~/.config/focustree/config.yaml
    Data file:   ~/.local/share/focustree/data.toml

KEYBINDINGS:
    Navigation:
        j/k         Move down/up
        Enter       Confirm
        Esc         Cancel

    Commitments:
        a           Add commitment under the selection
        e           Edit body
        r           Rename
        m           Move (press m again on the new parent)
        d           Delete subtree
        f           Mark failed / recover
        y           Yank to clipboard

    Other:
        q           Quit (saves on exit)

Failing a commitment forfeits every sub-commitment under it: the node
stays visible as failed, its subtree is removed for good.
`

const configTemplate = `# focustree configuration
# Location: ~/.config/focustree/config.yaml

storage:
  # Override the data directory (default: ~/.local/share/focustree)
  # data_dir: ""

ui:
  # Ask y/n before delete and fail (default: true)
  confirm_destructive: true
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		dataDir     string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&dataDir, "data", "", "Override data directory")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("focustree version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	return runApp(dataDir)
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// resolveDataPath picks the data file location: the --data flag wins,
// then the config override, then the default per-user directory.
func resolveDataPath(cfg *config.Config, flagDir string) (string, error) {
	dir := flagDir
	if dir == "" {
		dir = cfg.Storage.DataDir
	}
	if dir == "" {
		var err error
		dir, err = storage.DefaultDir()
		if err != nil {
			return "", err
		}
	} else if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return filepath.Join(dir, storage.FileName), nil
}

// runApp starts the main TUI application.
func runApp(flagDataDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dataPath, err := resolveDataPath(cfg, flagDataDir)
	if err != nil {
		return err
	}

	logger := newLogger(filepath.Dir(dataPath))
	logger.Debug("starting", "version", version, "data", dataPath)

	// A malformed data file is fatal: running against a half-read tree
	// would clobber the file on exit.
	t, err := storage.Load(dataPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded tree", "nodes", t.Len())

	app := tui.New(t, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return saveOnExit(dataPath, app.Tree(), logger)
}

// saveOnExit persists the tree after the UI has shut down. Save failures
// are reported but the in-memory session is already over, so they do not
// escalate beyond the process exit code.
func saveOnExit(path string, t *tree.Tree, logger *log.Logger) error {
	if !t.Dirty() {
		logger.Debug("no changes, skipping save")
		return nil
	}
	if err := storage.Save(path, t); err != nil {
		logger.Error("save failed", "err", err)
		return fmt.Errorf("failed to save data: %w", err)
	}
	logger.Debug("saved", "nodes", t.Len())
	fmt.Printf("Saved to %s\n", path)
	return nil
}

// newLogger returns a debug logger writing into the data directory when
// FOCUSTREE_DEBUG is set, and a silent one otherwise. Log output must
// never reach the terminal while bubbletea owns it.
func newLogger(dir string) *log.Logger {
	if os.Getenv("FOCUSTREE_DEBUG") == "" {
		logger := log.New(os.Stderr)
		logger.SetLevel(log.FatalLevel)
		return logger
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		logger := log.New(os.Stderr)
		logger.SetLevel(log.FatalLevel)
		return logger
	}
	logger := log.New(f)
	logger.SetLevel(log.DebugLevel)
	return logger
}
