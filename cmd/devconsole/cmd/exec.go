package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/devconsole/internal/console"
)

var (
	execLines []string
	execColor bool
)

var execCmd = &cobra.Command{
	Use:   "exec [script]",
	Short: "Runs a script or single lines",
	Long: `Runs the lines of a script file, then every --line, and prints the
output of each line. Lines starting with // are comments.

Examples:
  devconsole exec setup.txt
  devconsole exec -e "objects" -e "get config console maxhistory"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().StringArrayVarP(&execLines, "line", "e", nil, "Line to run (repeatable)")
	execCmd.Flags().BoolVar(&execColor, "color", false, "Colour the output")
}

func runExec(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(execLines) == 0 {
		return fmt.Errorf("nothing to run, give a script or --line")
	}

	h, err := newHost(hostOptions{ConfigPath: cfgFile, Verbose: verbose, Plain: !execColor})
	if err != nil {
		printError("setup failed", err)
		return err
	}
	defer h.Close()

	script := ""
	if len(args) == 1 {
		script = args[0]
	}
	return execute(h.console, cmd.OutOrStdout(), script, execLines)
}

// execute runs script and lines on c and writes every non-empty output.
// A line put back by the console, e.g. by history recall, is printed as
// "recalled: <line>" since there is no input field to fill.
func execute(c *console.Console, w io.Writer, script string, lines []string) error {
	var outputs []string
	recalled := func() {
		if line, ok := c.TakeBufferedLine(); ok {
			outputs = append(outputs, "recalled: "+line)
		}
	}

	if script != "" {
		out, err := c.RunScriptFile(script)
		if err != nil {
			return err
		}
		outputs = append(outputs, out...)
		recalled()
	}
	for _, line := range lines {
		outputs = append(outputs, c.ProcessLine(line))
		recalled()
	}

	for _, out := range outputs {
		out = strings.TrimRight(out, "\n")
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
	return nil
}
