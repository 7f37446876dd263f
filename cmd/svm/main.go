// Command svm is the interactive debugger for the stack VM: it loads a
// script, steps through it, and inspects its stacks from a readline
// prompt.
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/urfave/cli"

	vmcli "github.com/timloh-gtoken/neo-vm/cli/vm"
	"github.com/timloh-gtoken/neo-vm/pkg/config"
)

func main() {
	app := cli.NewApp()
	app.Name = "svm"
	app.Usage = "run the stack VM's interactive debugger"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "limits", Usage: "path to a YAML limits configuration file"},
		cli.BoolFlag{Name: "no-logo", Usage: "skip the startup banner"},
	}
	app.Action = runPrompt

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPrompt(c *cli.Context) error {
	var limits *config.Limits
	if path := c.String("limits"); path != "" {
		var err error
		limits, err = config.LoadLimits(path)
		if err != nil {
			return err
		}
	}

	shell, err := vmcli.New(!c.Bool("no-logo"), os.Exit, &readline.Config{Prompt: "NEO-VM > "}, limits)
	if err != nil {
		return err
	}
	return shell.Run()
}
