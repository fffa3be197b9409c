package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"crypto-price/internal/controller"
	"crypto-price/internal/view"
)

const interactiveHelp = `Commands:
  pairs              list available pairs
  select <pair|n>    select a pair by name or list number
  fetch              fetch the latest rate for the selected pair
  state              show the current state
  help               show this help
  quit               leave the session
A bare pair name or number is the same as select.`

// Interactive runs a line-oriented session on in/out driving a single controller.
func (a *App) Interactive(ctx context.Context, in io.Reader, out io.Writer) error {
	ctrl, closeCtrl := a.newController(controller.WithObserver(func(s controller.Snapshot) {
		if s.State.Status == controller.StatusLoading {
			fmt.Fprintln(out, view.Text(s))
		}
	}))
	defer closeCtrl()

	fmt.Fprintln(out, "Crypto Price")
	if err := view.Pairs(out, a.Registry.Pairs(), ""); err != nil {
		return err
	}
	fmt.Fprintln(out, `Type "help" for commands.`)

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
			continue
		case "help", "?":
			fmt.Fprintln(out, interactiveHelp)
		case "pairs", "list":
			if err := view.Pairs(out, a.Registry.Pairs(), ctrl.Pair()); err != nil {
				return err
			}
		case "select", "use":
			a.selectInteractive(out, ctrl, arg)
		case "fetch", "get":
			if ctrl.Pair() != "" && !ctrl.CanFetch() {
				fmt.Fprintln(out, "fetch already in progress")
				continue
			}
			ctrl.RequestFetch(ctx)
			fmt.Fprintln(out, view.Text(ctrl.Snapshot()))
		case "state", "show":
			fmt.Fprintln(out, view.Text(ctrl.Snapshot()))
		case "quit", "exit", "q":
			return nil
		default:
			a.selectInteractive(out, ctrl, strings.TrimSpace(scanner.Text()))
		}
	}
}

func (a *App) selectInteractive(out io.Writer, ctrl *controller.Controller, input string) {
	if input == "" {
		fmt.Fprintln(out, "usage: select <pair|n>")
		return
	}
	p, err := a.Registry.Parse(input)
	if err != nil {
		fmt.Fprintf(out, "%v (type \"pairs\" to list them)\n", err)
		return
	}
	ctrl.SelectPair(p)
	fmt.Fprintln(out, view.Text(ctrl.Snapshot()))
}
