package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/rekening-koran/internal/config"
	"github.com/insightdelivered/rekening-koran/internal/extractor"
	"github.com/insightdelivered/rekening-koran/internal/models"
	"github.com/insightdelivered/rekening-koran/internal/parser"
	"github.com/insightdelivered/rekening-koran/internal/writer"
)

const version = "2.0.0"

type options struct {
	configPath string
	bank       string
	output     string
	format     string
	header     bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "rekening-koran [flags] <statement.pdf> [more.pdf ...]",
		Short: "Convert Indonesian bank statement PDFs to CSV or XLSX",
		Long: `Converts account statements (rekening koran) from BSI, BRI, BCA and
the generic numbered layout into a clean transaction ledger with amounts
in Indonesian notation (1.234.567,89).`,
		Example: `  # Auto-detect bank and convert
  rekening-koran statement.pdf

  # Specify bank explicitly and write a workbook
  rekening-koran --bank=bri --format=xlsx mutasi.pdf

  # Convert multiple files
  rekening-koran --bank=bca jan.pdf feb.pdf mar.pdf`,
		Version:      version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runConvert(cfg, opts, args)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "path to rekening.yaml")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log page-level parsing decisions")
	cmd.Flags().StringVar(&opts.bank, "bank", "", "bank layout: generic, bsi, bri, bca (auto-detected if omitted)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (single input only; defaults to the input name)")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: csv or xlsx")
	cmd.Flags().BoolVar(&opts.header, "header", true, "include statement metadata in the output")

	cmd.AddCommand(newServeCmd(opts), newInitCmd())
	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default rekening.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "rekening.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// loadConfig layers defaults, the config file, the environment and flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("bank") {
		cfg.Parser.Bank = opts.bank
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("header") {
		cfg.Output.IncludeHeader = opts.header
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logrus.SetLevel(level)
	return cfg, nil
}

func runConvert(cfg *config.Config, opts *options, inputs []string) error {
	if opts.output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output can only be used with a single input file")
	}

	var bank models.BankType
	if cfg.Parser.Bank != "" {
		b, err := parser.ParseBank(cfg.Parser.Bank)
		if err != nil {
			return err
		}
		bank = b
	}

	w, err := writer.New(cfg.Output.Format, cfg.Output.IncludeHeader)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		if err := processFile(in, bank, outputPath(in, opts.output, cfg.Output.Dir, w), w); err != nil {
			return fmt.Errorf("processing %s: %w", in, err)
		}
	}
	return nil
}

func outputPath(input, explicit, dir string, w writer.Writer) string {
	if explicit != "" {
		return explicit
	}
	out := strings.TrimSuffix(input, filepath.Ext(input)) + w.Extension()
	if dir != "" {
		out = filepath.Join(dir, filepath.Base(out))
	}
	return out
}

func processFile(inputPath string, bank models.BankType, outPath string, w writer.Writer) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	doc, err := extractor.Open(inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}
	fmt.Printf("  Pages: %d\n", doc.PageCount())

	log := logrus.WithField("file", filepath.Base(inputPath))
	st, err := parser.Convert(doc, bank, parser.WithLogger(log))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	p, err := parser.New(st.Bank)
	if err != nil {
		return err
	}
	if bank == "" {
		fmt.Printf("  Auto-detected bank: %s\n", p.BankName())
	}
	fmt.Printf("  Found %d transaction(s)\n", len(st.Records))

	if len(st.Records) == 0 {
		if !doc.Readable() {
			fmt.Println("  Warning: the PDF has little readable text; it may be a scanned image.")
		} else {
			fmt.Println("  Warning: No transactions found. The layout may not match the selected bank.")
			fmt.Println("  Try specifying the bank explicitly with --bank if auto-detection was used.")
		}
	}

	if err := writer.WriteToFile(w, outPath, st); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	fmt.Printf("  Output: %s\n", outPath)

	for _, key := range []string{parser.KeyHolder, parser.KeyAccount, parser.KeyPeriod} {
		if v, ok := st.Metadata.Get(key); ok && v != "" {
			fmt.Printf("  %s: %s\n", key, v)
		}
	}

	fmt.Println("  Done.")
	return nil
}
