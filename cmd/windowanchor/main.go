// Command windowanchor captures and restores Windows desktop workspace
// snapshots: window positions, monitors, and (optionally) the files
// left open in each window.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/marvintrvl/windowanchor/internal/app"
	"github.com/marvintrvl/windowanchor/internal/mcpserver"
	"github.com/marvintrvl/windowanchor/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "save":
		os.Exit(runSave(os.Args[2:]))
	case "restore":
		os.Exit(runRestore(os.Args[2:]))
	case "switch":
		os.Exit(runSwitch(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "delete":
		os.Exit(runDelete(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "version":
		fmt.Println("windowanchor dev")
		os.Exit(0)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: windowanchor <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  save NAME [--files]     Capture the current desktop as NAME")
	fmt.Fprintln(w, "  restore NAME            Restore a saved workspace")
	fmt.Fprintln(w, "  switch NAME             Close everything, then restore NAME")
	fmt.Fprintln(w, "  list                    List saved workspaces")
	fmt.Fprintln(w, "  delete NAME             Delete a saved workspace")
	fmt.Fprintln(w, "  tui                     Open the interactive workspace browser")
	fmt.Fprintln(w, "  mcp serve               Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "  version                 Print the version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'windowanchor <command> --help' for command-specific options.")
}

func bootstrapOrExit() *app.App {
	a, err := app.Bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: %v\n", err)
		os.Exit(1)
	}
	return a
}

func interruptContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func runSave(args []string) int {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	saveFiles := fs.Bool("files", true, "record open documents alongside window positions")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windowanchor save NAME [--files=true|false]")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)

	a := bootstrapOrExit()
	defer a.Store.Close()

	snap, err := a.Save(context.Background(), name, *saveFiles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: %v\n", err)
		return 1
	}
	fmt.Printf("saved %q (%d windows)\n", snap.Name, len(snap.Entries))
	return 0
}

func runRestore(args []string) int {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: windowanchor restore NAME")
		return 2
	}
	name := fs.Arg(0)

	a := bootstrapOrExit()
	defer a.Store.Close()

	ctx, cancel := interruptContext()
	defer cancel()

	matched, total, err := a.Restore(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: %v\n", err)
		return 1
	}
	fmt.Printf("restored %q: %d/%d windows matched\n", name, matched, total)
	return 0
}

func runSwitch(args []string) int {
	fs := flag.NewFlagSet("switch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: windowanchor switch NAME")
		return 2
	}
	name := fs.Arg(0)

	a := bootstrapOrExit()
	defer a.Store.Close()

	ctx, cancel := interruptContext()
	defer cancel()

	status, err := a.Switch(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: %v\n", err)
		return 1
	}
	fmt.Println(status)
	return 0
}

func runList(args []string) int {
	a := bootstrapOrExit()
	defer a.Store.Close()

	names, err := a.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: %v\n", err)
		return 1
	}
	if len(names) == 0 {
		fmt.Println("no saved workspaces")
		return 0
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return 0
}

func runDelete(args []string) int {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: windowanchor delete NAME")
		return 2
	}
	name := fs.Arg(0)

	a := bootstrapOrExit()
	defer a.Store.Close()

	if err := a.Delete(context.Background(), name); err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: %v\n", err)
		return 1
	}
	fmt.Printf("deleted %q\n", name)
	return 0
}

func runTUI(args []string) int {
	a := bootstrapOrExit()
	defer a.Store.Close()

	if err := tui.Run(a); err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: %v\n", err)
		return 1
	}
	return 0
}

func runMCP(args []string) int {
	if len(args) == 0 || args[0] != "serve" {
		fmt.Fprintln(os.Stderr, "Usage: windowanchor mcp serve")
		return 2
	}

	a := bootstrapOrExit()
	defer a.Store.Close()

	server := mcpserver.NewServer(a)

	ctx, cancel := interruptContext()
	defer cancel()

	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: mcp server error: %v\n", err)
		return 1
	}
	return 0
}
