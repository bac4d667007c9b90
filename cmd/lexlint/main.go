package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/lexlint/internal/config"
	"github.com/jeduden/lexlint/internal/discovery"
	"github.com/jeduden/lexlint/internal/engine"
	"github.com/jeduden/lexlint/internal/lint"
	"github.com/jeduden/lexlint/internal/log"
	"github.com/jeduden/lexlint/internal/output"
	"github.com/jeduden/lexlint/internal/rule"
	"github.com/jeduden/lexlint/internal/rules"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/lexlint/internal/rules/commentspacing"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: lexlint <command> [flags] [files...]

Commands:
  check     Lint source files (comments, spacing)
  help      Show help for rules and topics
  init      Generate a default .lexlint.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'lexlint <command> --help' for more information on a command.
`

func run() int {
	// Handle no arguments: print usage, exit 0.
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	switch first := os.Args[1]; first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	case "check":
		return runCheck(os.Args[2:])
	case "help":
		return runHelp(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "lexlint: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("lexlint %s\n", version)
}

// checkOptions holds the flags of the "check" subcommand.
type checkOptions struct {
	configPath  string
	format      string
	noColor     bool
	quiet       bool
	noGitignore bool
	verbose     bool
	snippet     bool
	jobs        int
	enable      []string
}

// runCheck implements the "check" subcommand: lint files.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var opts checkOptions

	fs.StringVarP(&opts.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVar(&opts.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log config, files and rules to stderr")
	fs.BoolVar(&opts.snippet, "snippet", false, "Show the source line and a caret under each diagnostic (text format)")
	fs.IntVarP(&opts.jobs, "jobs", "j", 0, "Number of files checked in parallel (0 = number of CPUs)")
	fs.StringSliceVarP(&opts.enable, "enable", "e", nil, "Enable a rule by ID or name, on top of the config (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lexlint check [flags] [files...]\n\n"+
			"Lint source files for comment spacing issues.\n\n"+
			"Files can be paths, directories (walked recursively using the config's\n"+
			"files patterns), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := &log.Logger{Enabled: opts.verbose, W: os.Stderr}

	cfg, err := loadConfig(opts.configPath, opts.enable, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexlint: %v\n", err)
		return 2
	}

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
		Jobs:   opts.jobs,
		Logger: logger,
	}
	logEnabledRules(logger, cfg)

	files := fs.Args()

	// No file args: check if stdin is a pipe.
	if len(files) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return 0
		}
		return checkStdin(runner, opts)
	}

	return checkFiles(runner, files, opts)
}

// checkFiles lints the given file paths and returns the appropriate exit code.
func checkFiles(runner *engine.Runner, fileArgs []string, opts checkOptions) int {
	files, err := discovery.Resolve(fileArgs, discovery.Options{
		Patterns:     runner.Config.Files,
		UseGitignore: !opts.noGitignore,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexlint: %v\n", err)
		return 2
	}

	if len(files) == 0 {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := runner.Run(ctx, files)
	return report(result, opts, nil)
}

// checkStdin reads from stdin, lints the content, and returns the
// appropriate exit code.
func checkStdin(runner *engine.Runner, opts checkOptions) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexlint: reading stdin: %v\n", err)
		return 2
	}

	const stdinPath = "<stdin>"
	result := runner.RunSource(stdinPath, source)
	return report(result, opts, map[string][]byte{stdinPath: source})
}

// report prints errors and diagnostics and maps the result to an exit code:
// 0 when clean, 1 when diagnostics were found, 2 when only errors occurred.
func report(result *engine.Result, opts checkOptions, sources map[string][]byte) int {
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "lexlint: %v\n", e)
	}

	if len(result.Errors) > 0 && len(result.Diagnostics) == 0 {
		return 2
	}

	if !opts.quiet && len(result.Diagnostics) > 0 {
		formatter, err := newFormatter(opts, result.Diagnostics, sources)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lexlint: %v\n", err)
			return 2
		}
		if err := formatter.Format(os.Stderr, result.Diagnostics); err != nil {
			fmt.Fprintf(os.Stderr, "lexlint: error writing output: %v\n", err)
			return 2
		}
	}

	if len(result.Diagnostics) > 0 {
		return 1
	}
	return 0
}

func newFormatter(opts checkOptions, diags []lint.Diagnostic, sources map[string][]byte) (output.Formatter, error) {
	color := !opts.noColor && term.IsTerminal(int(os.Stderr.Fd()))
	formatter, err := output.New(opts.format, color)
	if err != nil {
		return nil, err
	}
	if tf, ok := formatter.(*output.TextFormatter); ok && opts.snippet {
		tf.Snippet = true
		tf.Sources = snippetSources(diags, sources)
	}
	return formatter, nil
}

// snippetSources returns the content of every file that has a diagnostic.
// Files already in known are not read again. Unreadable files are left
// out and printed without a snippet.
func snippetSources(diags []lint.Diagnostic, known map[string][]byte) map[string][]byte {
	sources := make(map[string][]byte, len(known))
	for path, src := range known {
		sources[path] = src
	}
	for _, d := range diags {
		if _, ok := sources[d.File]; ok {
			continue
		}
		if src, err := os.ReadFile(d.File); err == nil {
			sources[d.File] = src
		}
	}
	return sources
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory. Rules named in
// enable are switched on afterwards. The result is validated.
func loadConfig(configPath string, enable []string, logger *log.Logger) (*config.Config, error) {
	defaults := config.Defaults()

	path := configPath
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			if discovered, err := config.Discover(cwd); err == nil {
				path = discovered
			}
		}
	}

	var loaded *config.Config
	if path != "" {
		logger.Printf("config: %s", path)
		var err error
		loaded, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	cfg := config.Merge(defaults, loaded)
	for _, q := range enable {
		r := rule.ByID(q)
		if r == nil {
			r = rule.ByName(q)
		}
		if r == nil {
			return nil, fmt.Errorf("--enable: unknown rule %q", q)
		}
		rc := cfg.Rules[r.Name()]
		rc.Enabled = true
		cfg.Rules[r.Name()] = rc
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func logEnabledRules(logger *log.Logger, cfg *config.Config) {
	for _, r := range rule.All() {
		if cfg.Rules[r.Name()].Enabled {
			logger.Printf("rule: %s %s", r.ID(), r.Name())
		}
	}
}

// runInit implements the "init" subcommand: generate .lexlint.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lexlint init\n\n"+
			"Generate a default .lexlint.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "lexlint: init takes no arguments\n")
		return 2
	}

	const configFile = ".lexlint.yml"

	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "lexlint: %s already exists\n", configFile)
		return 2
	}

	data, err := yaml.Marshal(config.DumpDefaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexlint: marshalling config: %v\n", err)
		return 2
	}

	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "lexlint: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "lexlint: created %s\n", configFile)
	return 0
}

const helpUsageText = `Usage: lexlint help <topic>

Topics:
  rule [id|name]   Show rule documentation
`

// runHelp implements the "help" subcommand.
func runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, helpUsageText)
		return 0
	}

	switch args[0] {
	case "rule":
		return runHelpRule(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "lexlint: help: unknown topic %q\n", args[0])
		return 2
	}
}

// runHelpRule implements "help rule [id|name]".
func runHelpRule(args []string) int {
	if len(args) == 0 {
		return listAllRules()
	}
	return showRule(args[0])
}

func listAllRules() int {
	infos, err := rules.ListRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexlint: %v\n", err)
		return 2
	}

	for _, r := range infos {
		fmt.Printf("%-6s %-20s %s\n", r.ID, r.Name, r.Description)
	}
	return 0
}

func showRule(query string) int {
	content, err := rules.LookupRule(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexlint: %v\n", err)
		return 2
	}
	fmt.Print(content)
	return 0
}
