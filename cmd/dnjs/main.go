// Command dnjs evaluates a .dn.js file and prints its default export (or
// a named export, or the post-processed result of applying one of them)
// to stdout.
//
// Grounded on original_source/dnjs/cli.py's click-based command, ported to
// cobra/pflag the way the example pack's CLIs are built, with colorized
// diagnostics in the style of pgavlin-yomlette/cmd/yparse.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/log/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/leontrolski/dnjs/cmd/dnjs/cache"
	"github.com/leontrolski/dnjs/cssrender"
	"github.com/leontrolski/dnjs/diag"
	"github.com/leontrolski/dnjs/htmlrender"
	"github.com/leontrolski/dnjs/interp"
)

type options struct {
	name      string
	process   string
	html      bool
	compact   bool
	css       bool
	raw       bool
	csv       bool
	cacheFile string
	verbose   bool
}

func main() {
	opts := &options{}
	root := &cobra.Command{
		Use:   "dnjs FILENAME [ARGS...]",
		Short: "Evaluate a dnjs file and print its default export as JSON",
		Long: `dnjs evaluates FILENAME, a file written in a statically-scoped
JSON-superset expression language with destructuring, arrow functions, and
module imports, and prints its default export as JSON.

FILENAME is the dnjs file to evaluate, or "-" to read it from stdin.
Remaining ARGS are JSON files, passed as positional arguments to the
evaluated module's default export when it's a function.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.name, "name", "", "pick an exported variable to return instead of the default export")
	flags.StringVarP(&opts.process, "process", "p", "", "post-process the output with another dnjs function, e.g. 'd=>d.value'")
	flags.BoolVar(&opts.html, "html", false, "post-process m(...) vnodes into <html>")
	flags.BoolVar(&opts.compact, "compact", false, "don't prettify --html/--css output")
	flags.BoolVar(&opts.css, "css", false, "post-process a {selector: {prop: value}} object into CSS")
	flags.BoolVar(&opts.raw, "raw", false, "print the value as a literal rather than JSON")
	flags.BoolVar(&opts.csv, "csv", false, "print the value, a list of rows, as CSV")
	flags.StringVar(&opts.cacheFile, "cache", "", "sqlite file to cache module evaluations in, keyed by path and mtime")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log evaluation steps to stderr")

	if err := root.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	stderr := colorable.NewColorableStderr()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintln(stderr, red(diag.Format(err)))
}

func run(opts *options, args []string) error {
	logger := log.New(os.Stderr)
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	filename := args[0]
	jsonArgPaths := args[1:]

	if filename == "-" {
		tmpPath, err := writeStdinToTempModule()
		if err != nil {
			return err
		}
		defer os.Remove(tmpPath)
		filename = tmpPath
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	value, in, err := loadValue(opts, abs, logger)
	if err != nil {
		return err
	}

	value, err = applyPositionalArgs(in, value, jsonArgPaths, abs)
	if err != nil {
		return err
	}

	if err := checkSinglePostProcess(opts); err != nil {
		return err
	}

	switch {
	case opts.html:
		out, err := htmlrender.ToHTML(value, !opts.compact)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	case opts.css:
		out, err := cssrender.ToCSS(value, !opts.compact)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	case opts.process != "":
		value, err = runProcess(in, opts.process, value)
		if err != nil {
			return err
		}
	}

	return printValue(value, opts)
}

func writeStdinToTempModule() (string, error) {
	tmp, err := os.CreateTemp("", "dnjs-stdin-*.dn.js")
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		return "", err
	}
	return tmp.Name(), nil
}

// loadValue evaluates the module at abs (via the cache when configured and
// warm) and returns the value the --name/default-export rules select,
// along with the Interpreter that produced it (needed to Call it, should
// it turn out to be a function).
func loadValue(opts *options, abs string, logger *log.Logger) (interp.Value, *interp.Interpreter, error) {
	in := interp.NewInterpreter()

	var c *cache.Cache
	if opts.cacheFile != "" {
		var err error
		c, err = cache.Open(opts.cacheFile)
		if err != nil {
			return nil, nil, err
		}
	}

	info, statErr := os.Stat(abs)

	if c != nil && opts.name == "" && statErr == nil {
		if cachedJSON, ok := c.Lookup(abs, info.ModTime()); ok {
			logger.Debug("cache hit", "path", abs)
			v, err := interp.FromJSON([]byte(cachedJSON))
			if err != nil {
				return nil, nil, err
			}
			return v, in, nil
		}
	}

	m, err := in.LoadFile(abs)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("evaluated module", "path", abs)

	var value interp.Value
	if opts.name != "" {
		v, ok := m.Exports.Get(opts.name)
		if !ok {
			return nil, nil, fmt.Errorf("%s not in %s exports", opts.name, abs)
		}
		value = v
	} else {
		switch {
		case m.HasDefaultExport:
			value = m.DefaultExport
		case m.HasValue:
			value = m.Value
		default:
			return nil, nil, fmt.Errorf("%s has no default export", abs)
		}
	}

	if c != nil && opts.name == "" && statErr == nil && !interp.IsCallable(value) {
		if j, err := json.Marshal(value); err == nil {
			if err := c.Store(abs, info.ModTime(), string(j)); err != nil {
				logger.Warn("cache store failed", "err", err)
			}
		}
	}

	return value, in, nil
}

func applyPositionalArgs(in *interp.Interpreter, value interp.Value, argPaths []string, modulePath string) (interp.Value, error) {
	if !interp.IsCallable(value) {
		if len(argPaths) > 0 {
			return nil, fmt.Errorf("%s is not a function, can't apply %d argument(s)", modulePath, len(argPaths))
		}
		return value, nil
	}

	if names, ok := interp.ClosureParamNames(value); ok && len(names) != len(argPaths) {
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = strconv.Quote(n)
		}
		return nil, fmt.Errorf("expected input argument(s): %s, see --help", strings.Join(quoted, ", "))
	}

	callArgs := make([]interp.Value, 0, len(argPaths))
	for _, argPath := range argPaths {
		data, err := os.ReadFile(argPath)
		if err != nil {
			return nil, err
		}
		v, err := interp.FromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", argPath, err)
		}
		callArgs = append(callArgs, v)
	}
	return in.Call(value, callArgs)
}

func checkSinglePostProcess(opts *options) error {
	count := 0
	for _, on := range []bool{opts.html, opts.css, opts.process != ""} {
		if on {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("can only do one post-process at a time")
	}
	return nil
}

func runProcess(in *interp.Interpreter, src string, value interp.Value) (interp.Value, error) {
	tmp, err := os.CreateTemp("", "dnjs-process-*.dn.js")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if _, err := tmp.WriteString(src); err != nil {
		return nil, err
	}

	fn, err := interp.GetDefaultExport(tmp.Name())
	if err != nil {
		return nil, err
	}
	if !interp.IsCallable(fn) {
		return nil, fmt.Errorf("--process value must be a function")
	}
	return in.Call(fn, []interp.Value{value})
}

func printValue(value interp.Value, opts *options) error {
	if opts.csv {
		rows, ok := value.([]interp.Value)
		if !ok {
			return fmt.Errorf("--csv value must be a list of rows")
		}
		for _, rowVal := range rows {
			row, ok := rowVal.([]interp.Value)
			if !ok {
				return fmt.Errorf("--csv value must be a list of rows")
			}
			cells := make([]string, len(row))
			for i, cell := range row {
				if opts.raw {
					cells[i] = rawify(cell)
					continue
				}
				b, err := json.Marshal(cell)
				if err != nil {
					return err
				}
				cells[i] = string(b)
			}
			fmt.Println(strings.Join(cells, ","))
		}
		return nil
	}

	if opts.raw {
		fmt.Println(rawify(value))
		return nil
	}

	out, err := json.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// rawify renders v the way --raw does: unquoted scalars, JSON for
// anything structured.
func rawify(v interp.Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case interp.Undefined:
		return "undefined"
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
