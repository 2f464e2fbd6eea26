package main

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/config"
	"github.com/walteh/replacer/pkg/log"
	"github.com/walteh/replacer/pkg/operation"
	"github.com/walteh/replacer/pkg/store"
	"github.com/walteh/replacer/pkg/text"
	"github.com/walteh/replacer/pkg/version"
)

const usage = `
command line arguments:
1: the file you want to read from
2: the old string to replace
3: the new string to replace it with
4: the file you want to write to

examples:
$ replacer the-book-of-sand.txt the any sand-the-any.txt
$ replacer the-library-of-babel.txt f g library-f-g.txt

other commands:
$ replacer -list                 list every file in the store
$ replacer -list --match '*.txt' list the files matching a glob
$ replacer -help                 show this message

flags:
  --root <dir>       directory holding the files (default "files")
  --backend <name>   fs, sqlite or memory (default "fs")
  --config <file>    optional .yaml, .json or .hcl config file
  --debug            enable debug logging
`

// legacyFlags maps the single-dash spellings onto their cobra flags
var legacyFlags = map[string]string{
	"-list": "--list",
	"-help": "--help",
}

type rootOpts struct {
	configFile string
	root       string
	backend    string
	match      string
	list       bool
	debug      bool

	console *log.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOpts{console: log.New(stdout, newLogger(stderr, false))}
	cmd := newRootCmd(opts, stdout, stderr)
	cmd.SetArgs(normalizeArgs(cmd.Flags(), args))

	if err := cmd.ExecuteContext(ctx); err != nil {
		opts.console.Error(err.Error())
		return 1
	}
	return 0
}

// normalizeArgs moves every positional argument behind "--" so that text such as
// "-d" or "-1" is substituted rather than parsed. Flags are only read before the
// first positional argument; -list and -help are recognised anywhere, and -list
// outranks -help.
func normalizeArgs(flags *pflag.FlagSet, args []string) []string {
	leading := make([]string, 0, len(args))
	positional := make([]string, 0, len(args))
	list, help := false, false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		if mapped, ok := legacyFlags[arg]; ok {
			arg = mapped
		} else if len(positional) > 0 || arg == "-" || !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		switch arg {
		case "--list", "-l":
			list = true
		case "--help", "-h":
			help = true
			continue
		}

		leading = append(leading, arg)
		if takesValue(flags, arg) && i+1 < len(args) {
			i++
			leading = append(leading, args[i])
		}
	}

	if help && !list {
		leading = append(leading, "--help")
	}
	return append(append(leading, "--"), positional...)
}

// takesValue reports whether arg is a known non-boolean flag whose value is the next argument
func takesValue(flags *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		f = flags.Lookup(strings.TrimPrefix(arg, "--"))
	case len(arg) == 2:
		f = flags.ShorthandLookup(arg[1:])
	}
	return f != nil && f.Value.Type() != "bool"
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
}

func newRootCmd(opts *rootOpts, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "replacer <sourceFile> <oldString> <newString> <destFile>",
		Short:         "Copy a stored text file, replacing every occurrence of a string",
		Args:          cobra.ArbitraryArgs,
		Version:       version.Get().Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, opts.debug)
			if opts.debug {
				opts.console = log.New(stdout, logger)
			}

			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(log.NewContext(ctx, opts.console))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			switch {
			case opts.list:
				st, err := opts.openStore(cmd)
				if err != nil {
					return err
				}
				defer st.Close()
				return runList(ctx, st, opts.match)
			case len(args) < 4:
				opts.console.Plain(usage)
				return nil
			case len(args) > 4:
				opts.console.Warningf("ignoring %d extra arguments: %s", len(args)-4, strings.Join(args[4:], " "))
			}

			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			return runReplace(ctx, st, args[0], args[1], args[2], args[3])
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		opts.console.Plain(usage)
	})
	cmd.SetVersionTemplate(version.Get().Format("replacer"))

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path")
	cmd.Flags().StringVar(&opts.root, "root", config.DefaultRoot, "directory holding the files")
	cmd.Flags().StringVar(&opts.backend, "backend", config.DefaultBackend, "storage backend (fs, sqlite, memory)")
	cmd.Flags().StringVar(&opts.match, "match", "", "glob used to filter --list")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list the stored files")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	return cmd
}

// openStore resolves the configuration with flags on top and opens the backend
func (opts *rootOpts) openStore(cmd *cobra.Command) (store.Store, error) {
	ctx := cmd.Context()

	cfg, err := config.LoadStore(ctx, opts.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = opts.root
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = opts.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("opening store")

	st, err := store.New(cfg.Backend, cfg.Root)
	if err != nil {
		return nil, errors.Errorf("opening %s store: %w", cfg.Backend, err)
	}
	return st, nil
}

func runList(ctx context.Context, st store.Store, pattern string) error {
	console := log.FromContext(ctx)
	logger := zerolog.Ctx(ctx)

	op := operation.NewListOperation(operation.Options{Store: st}, pattern)
	if err := operation.NewRunner(logger).Run(ctx, op); err != nil {
		return err
	}
	return console.ListFiles(ctx, "List of files:", op.Names())
}

func runReplace(ctx context.Context, st store.Store, source, oldString, newString, destination string) error {
	console := log.FromContext(ctx)
	logger := zerolog.Ctx(ctx)

	opts := operation.Options{Store: st, Replacer: text.NewSimpleTextReplacer()}
	rule := text.ReplacementRule{FromText: oldString, ToText: newString}

	op := operation.NewReplaceOperation(opts, source, destination, rule)
	if err := operation.NewRunner(logger).Run(ctx, op); err != nil {
		return err
	}

	out := op.Outcome()
	console.LogFileOperation(ctx, log.FileOperation{
		Path:         out.Destination,
		Source:       out.Source,
		IsNew:        out.Created,
		IsModified:   out.Modified,
		Replacements: out.Replacements,
	})
	console.Successf("New file %s created successfully", out.Destination)
	return nil
}
