package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wasmkit/errchan/host"
	"github.com/wasmkit/errchan/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to wasm file")
		funcName    = flag.String("func", "", "Exported function to invoke")
		argsStr     = flag.String("args", "", "Integer arguments (comma-separated)")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose engine logging")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: errchan-inspect -wasm <file.wasm> [-func name] [-args 1,2]")
		fmt.Fprintln(os.Stderr, "       errchan-inspect -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       errchan-inspect -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		plain := lipgloss.NewStyle()
		titleStyle, funcStyle, resultStyle, errorStyle, helpStyle = plain, plain, plain, plain, plain
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		runtime.SetLogger(l)
		host.SetLogger(l)
	}

	if *interactive {
		if err := runInteractive(*wasmFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *funcName, *argsStr, *list); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(wasmFile, funcName, argsStr string, listOnly bool) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt, err := runtime.New(ctx)
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	mod, err := rt.Load(ctx, data)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Module: " + wasmFile))
	fmt.Println("\nExported functions:")
	for _, name := range mod.Exports() {
		fmt.Println("  " + funcStyle.Render(name))
	}

	if listOnly || funcName == "" {
		return nil
	}

	args, err := parseArgs(argsStr)
	if err != nil {
		return err
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return err
	}
	defer inst.Close(ctx)

	values, e := inst.Invoke(ctx, funcName, args...).Unpack()
	if e != nil {
		fmt.Println(errorStyle.Render("\n" + funcName + " failed:"))
		fmt.Println(errorStyle.Render(e.Text()))
		os.Exit(1)
	}

	fmt.Println(resultStyle.Render(fmt.Sprintf("\n%s(%s) = %v", funcName, argsStr, values)))
	return nil
}

func parseArgs(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	args := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not an integer", p)
		}
		args = append(args, uint64(v))
	}
	return args, nil
}
