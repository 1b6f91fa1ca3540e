package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/josephlewis42/minishell/commands"
	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/vos"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgPath     string
	commandLine string
	debug       bool

	exitStatus int
)

// configDir returns the directory holding config.yaml.
func configDir() string {
	if cfgPath != "" {
		return cfgPath
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "minishell")
	}
	return "."
}

func loadConfig() (*config.Configuration, error) {
	return config.LoadOrDefault(configDir())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minishell",
	Short: "A small interactive command interpreter.",
	Long: `minishell reads command lines, from a terminal or standard input, and runs
them. It supports pipes, &&, ||, ;, redirections, here-documents and
variable expansion.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		exitStatus, err = runShell(cmd, configuration)
		return err
	},
}

func runShell(cmd *cobra.Command, configuration *config.Configuration) (int, error) {
	stdio := vos.NewStdio(os.Stdin, os.Stdout, os.Stderr)
	shell := commands.NewShell(configuration, stdio)
	shell.Init(os.Environ())
	if debug {
		shell.Log = log.New(cmd.ErrOrStderr(), "[minishell] ", log.LstdFlags)
	}

	eventLog, err := configuration.OpenEventLog()
	if err != nil {
		return 0, err
	}
	if eventLog != nil {
		defer eventLog.Close()
		shell.Events = logger.NewJsonLinesLogRecorder(eventLog).NewSession()
	}

	shell.Signals.Start()
	defer shell.Signals.Stop()

	if cmd.Flags().Changed("command") {
		// Here-document bodies still come from standard input.
		shell.Reader = commands.NewStreamReader(os.Stdin, nil, shell.Signals)
		return shell.RunCommandString(commandLine), nil
	}

	shell.Interactive = term.IsTerminal(int(os.Stdin.Fd()))
	if shell.Interactive {
		reader, err := commands.NewReadlineReader(stdio, shell.Signals, configuration.HistoryLimit)
		if err != nil {
			return 0, err
		}
		shell.Reader = reader

		if err := shell.LoadHistory(); err != nil {
			shell.Log.Printf("couldn't load history: %v", err)
		}
	} else {
		shell.Reader = commands.NewStreamReader(os.Stdin, nil, shell.Signals)
	}

	status := shell.Run()
	if err := shell.Close(); err != nil {
		shell.Log.Printf("couldn't close shell: %v", err)
	}
	return status, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus & 0xff)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory (default $XDG_CONFIG_HOME/minishell)")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log debugging information to standard error")
}
