package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blakeaaronroberts/smallsh/core"
	"github.com/blakeaaronroberts/smallsh/core/config"
	"github.com/blakeaaronroberts/smallsh/core/logger"
)

var cfgPath string

var exitStatus int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smallsh [script]",
	Short: "A small POSIX-style command interpreter.",
	Long: `smallsh reads commands from a terminal or a script file, performs
parameter expansion, runs the exit and cd builtins in-process and
everything else as child processes, with '<', '>' and '>>' redirection
and trailing '&' background execution.

Script names that collide with a subcommand, such as a file named
"init", must be given as a path: smallsh ./init`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		var input *os.File
		if len(args) == 1 {
			input, err = os.Open(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			defer input.Close()
		}

		log := logger.NewNopLogger()
		if configuration.LogEvents {
			appLog, err := configuration.OpenAppLog()
			if err != nil {
				return err
			}
			defer appLog.Close()
			log = logger.NewJsonLinesLogRecorder(appLog)
		}

		shell, err := core.NewShell(core.Options{
			Config: configuration,
			Input:  input,
			Log:    log,
		})
		if err != nil {
			return err
		}

		exitStatus = shell.Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It returns the process
// exit status: the exit builtin's argument, or the last recorded
// foreground status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitStatus
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
