package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/auvred/esregex"
)

var errInvalidPatterns = errors.New("invalid regular expressions found")

type checkOptions struct {
	exprs                     []string
	jobs                      int
	verbose                   bool
	format                    string
	allowDuplicateNamedGroups bool
}

// newRootCommand returns the esregex command. A nil logger is replaced by
// one built from the --verbose flag.
func newRootCommand(logger *zap.Logger) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "esregex [file...]",
		Short: "Check ECMAScript regular expression literals for syntax errors.",
		Long: "`esregex` parses every /pattern/flags literal it is given and reports the ones\n" +
			"that are not valid ECMAScript regular expressions.\n\n" +
			"Files hold one literal per line. Blank lines and lines starting with `#` are skipped.\n" +
			"Without files or `--expr`, literals are read from stdin.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.jobs < 1 {
				return fmt.Errorf("--jobs must be positive, got %d", opts.jobs)
			}
			if opts.format != "text" && opts.format != "yaml" {
				return fmt.Errorf("unknown --format %q, expected text or yaml", opts.format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger
			if log == nil {
				var err error
				if log, err = newLogger(opts.verbose); err != nil {
					return err
				}
				defer log.Sync() //nolint:errcheck
			}
			return runCheck(cmd, log, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.exprs, "expr", "e", nil, "Regular expression literal to check, e.g. '/a+/g'. May be repeated.")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of literals parsed concurrently.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every parsed literal.")
	flags.StringVar(&opts.format, "format", "text", "Output format: text or yaml.")
	flags.BoolVar(&opts.allowDuplicateNamedGroups, "allow-duplicate-named-groups", false,
		"Allow a capturing group name to repeat in different alternatives.")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// entry is one literal to check. offset is the byte offset of source
// within text.
type entry struct {
	file   string
	line   int
	source string
	text   string
	offset uint32
}

type label struct {
	Start uint32 `yaml:"start"`
	End   uint32 `yaml:"end"`
}

type result struct {
	File        string   `yaml:"file"`
	Line        int      `yaml:"line,omitempty"`
	Source      string   `yaml:"source"`
	Valid       bool     `yaml:"valid"`
	Flags       string   `yaml:"flags,omitempty"`
	Groups      uint32   `yaml:"capturing_groups,omitempty"`
	NamedGroups []string `yaml:"named_groups,omitempty,flow"`
	Nodes       int      `yaml:"nodes,omitempty"`
	Kind        string   `yaml:"kind,omitempty"`
	Message     string   `yaml:"message,omitempty"`
	Labels      []label  `yaml:"labels,omitempty,flow"`

	entry *entry
	diag  *esregex.Diagnostic
}

type report struct {
	Results []result `yaml:"results"`
	Total   int      `yaml:"total"`
	Invalid int      `yaml:"invalid"`
}

func runCheck(cmd *cobra.Command, log *zap.Logger, opts *checkOptions, args []string) error {
	entries, err := readEntries(cmd.InOrStdin(), args, opts.exprs)
	if err != nil {
		return err
	}
	log.Debug("read literals", zap.Int("count", len(entries)), zap.Strings("files", args))

	results := make([]result, len(entries))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.jobs)
	for i := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = check(&entries[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	invalid := 0
	for i := range results {
		r := &results[i]
		if r.Valid {
			log.Debug("valid literal",
				zap.String("file", r.File),
				zap.Int("line", r.Line),
				zap.String("source", r.Source),
				zap.Uint32("capturing_groups", r.Groups))
			continue
		}
		invalid++
		log.Debug("invalid literal",
			zap.String("file", r.File),
			zap.Int("line", r.Line),
			zap.String("kind", r.Kind))
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "yaml":
		data, err := yaml.Marshal(report{Results: results, Total: len(results), Invalid: invalid})
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	default:
		for i := range results {
			r := &results[i]
			if r.Valid {
				continue
			}
			if err := r.diag.Render(out, r.entry.file, r.entry.text); err != nil {
				return err
			}
		}
	}

	log.Info("checked regular expressions", zap.Int("total", len(results)), zap.Int("invalid", invalid))
	if invalid > 0 {
		return errInvalidPatterns
	}
	return nil
}

func check(e *entry, opts *checkOptions) result {
	r := result{File: e.file, Line: e.line, Source: e.source, entry: e}
	pattern, flags, err := esregex.ParseLiteral(e.source, esregex.Options{
		PatternSpanOffset:         e.offset,
		AllowDuplicateNamedGroups: opts.allowDuplicateNamedGroups,
	})
	if err != nil {
		var d *esregex.Diagnostic
		if !errors.As(err, &d) {
			d = &esregex.Diagnostic{Kind: esregex.KindInvalidInput, Message: err.Error()}
		}
		r.diag = d
		r.Kind = d.Kind.String()
		r.Message = d.Message
		for _, l := range d.Labels {
			r.Labels = append(r.Labels, label{Start: l.Start, End: l.End})
		}
		return r
	}

	r.Valid = true
	r.Flags = flags.String()
	r.Groups = pattern.CapturingGroupCount
	esregex.Walk(pattern, func(n esregex.Node) bool {
		r.Nodes++
		if g, ok := n.(*esregex.Group); ok && g.Name != "" {
			r.NamedGroups = append(r.NamedGroups, g.Name)
		}
		return true
	})
	return r
}

// readEntries collects the literals of every file, then the -e expressions.
// stdin is read only when neither is given.
func readEntries(stdin io.Reader, files, exprs []string) ([]entry, error) {
	var entries []entry
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		entries = appendLines(entries, name, string(data))
	}
	for _, expr := range exprs {
		entries = append(entries, entry{file: "<expr>", source: expr, text: expr})
	}
	if len(files) == 0 && len(exprs) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		entries = appendLines(entries, "<stdin>", string(data))
	}
	return entries, nil
}

func appendLines(entries []entry, file, text string) []entry {
	offset := 0
	for i, raw := range strings.SplitAfter(text, "\n") {
		start := offset
		offset += len(raw)

		line := strings.TrimRight(raw, "\r\n")
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		source := strings.TrimSpace(line)
		if source == "" || strings.HasPrefix(source, "#") {
			continue
		}
		entries = append(entries, entry{
			file:   file,
			line:   i + 1,
			source: source,
			text:   text,
			offset: uint32(start + indent),
		})
	}
	return entries
}
