// Command onecontext is a command-line front end for the OneContext client.
//
// Usage:
//
//	onecontext [-config file] [-env-file file] [-v] <command> [flags] [args]
//
// Settings come from the config package: ONECONTEXT_API_KEY is required.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	onecontext "github.com/onecontext/onecontext-go"
	"github.com/onecontext/onecontext-go/config"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("onecontext", flag.ContinueOnError)
	global.SetOutput(stderr)
	configFile := global.String("config", "", "YAML config `file`")
	envFile := global.String("env-file", ".env", "dotenv `file` loaded before the environment; missing is fine")
	verbose := global.Bool("v", false, "debug logging")
	showVersion := global.Bool("version", false, "print the version and exit")
	global.Usage = func() { usage(global) }

	if err := global.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	cmd, rest, ok := lookup(global.Args())
	if !ok {
		usage(global)
		return 2
	}

	opts := config.Options{File: *configFile}
	if *envFile != "" {
		opts.EnvFiles = []string{*envFile}
	}
	cfg, err := config.Load(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	level, _ := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cc := cfg.ClientConfig()
	cc.Logger = logger
	client, err := onecontext.NewFromConfig(cc)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer client.Close()

	fset := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fset.SetOutput(stderr)
	exec := cmd.setup(fset)
	fset.Usage = func() {
		fmt.Fprintf(stderr, "usage: onecontext %s %s\n\n%s\n", cmd.name, cmd.args, cmd.summary)
		fset.PrintDefaults()
	}
	if err := fset.Parse(rest); err != nil {
		return 2
	}

	logger.Debug("running command", "command", cmd.name, "base_url", cfg.BaseURL)

	resp, err := exec(ctx, client, fset.Args())
	if err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, ue)
			fset.Usage()
			return 2
		}
		logger.Error("command failed", "command", cmd.name, "error", err)
		return 1
	}

	writeBody(stdout, resp.Body)
	if !resp.OK() {
		logger.Error("service returned an error", "command", cmd.name, "status", resp.Status)
		return 1
	}
	return 0
}

// lookup resolves the longest command name that prefixes args.
func lookup(args []string) (command, []string, bool) {
	if len(args) >= 2 {
		if cmd, ok := commands[args[0]+" "+args[1]]; ok {
			return cmd, args[2:], true
		}
	}
	if len(args) >= 1 {
		if cmd, ok := commands[args[0]]; ok {
			return cmd, args[1:], true
		}
	}
	return command{}, nil, false
}

func usage(global *flag.FlagSet) {
	out := global.Output()
	fmt.Fprintln(out, "usage: onecontext [global flags] <command> [flags] [args]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-16s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "global flags:")
	global.PrintDefaults()
}

// writeBody prints JSON bodies indented and anything else verbatim.
func writeBody(w io.Writer, body []byte) {
	if len(body) == 0 {
		return
	}
	var buf bytes.Buffer
	if json.Valid(body) && json.Indent(&buf, body, "", "  ") == nil {
		buf.WriteByte('\n')
		_, _ = buf.WriteTo(w)
		return
	}
	_, _ = w.Write(body)
	if !strings.HasSuffix(string(body), "\n") {
		fmt.Fprintln(w)
	}
}

// parseJSONObject decodes an optional JSON object flag value.
func parseJSONObject(flagName, raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, usageError(fmt.Sprintf("-%s must be a JSON object: %v", flagName, err))
	}
	return m, nil
}
