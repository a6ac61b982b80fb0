package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xab-mack/reguard/internal/config"
	"github.com/xab-mack/reguard/internal/engine"
	"github.com/xab-mack/reguard/internal/model"
	"github.com/xab-mack/reguard/internal/report"
	"github.com/xab-mack/reguard/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newCheckCmd())
	root.AddCommand(newContractsCmd())
	root.AddCommand(newInitCmd())
}

func newCheckCmd() *cobra.Command {
	var (
		contracts      []string
		allContracts   bool
		modifiers      []string
		whitelist      []string
		whitelistFile  string
		configPath     string
		format         string
		outputFile     string
		sarifOut       string
		budgetMs       int
		slitherPath    string
		failOnFindings bool
		useTUI         bool
		writeWhitelist string
	)
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check contract entry points for a required guard modifier",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			var (
				cfg config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, _, err = config.Load(path)
			}
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("contract") {
				cfg.Contracts = contracts
			}
			if cmd.Flags().Changed("modifier") {
				cfg.RequiredModifiers = modifiers
			}
			if cmd.Flags().Changed("whitelist") {
				cfg.Whitelist = whitelist
			}
			if whitelistFile != "" {
				cfg.WhitelistFile = whitelistFile
			}
			if slitherPath != "" {
				cfg.SlitherPath = slitherPath
			}
			if cmd.Flags().Changed("budget-ms") {
				cfg.TimeBudgetMs = budgetMs
			}

			req := model.CheckRequest{
				Path:              path,
				Contracts:         cfg.Contracts,
				AllContracts:      allContracts,
				RequiredModifiers: cfg.RequiredModifiers,
				Whitelist:         cfg.Whitelist,
				WhitelistFile:     cfg.WhitelistFile,
				SlitherPath:       cfg.SlitherPath,
				SlitherArgs:       cfg.SlitherArgs,
				TimeBudget:        time.Duration(cfg.TimeBudgetMs) * time.Millisecond,
			}

			eng := engine.New()
			result, err := eng.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if writeWhitelist != "" {
				if err := engine.WriteWhitelist(writeWhitelist, result.Findings); err != nil {
					return err
				}
			}

			if useTUI {
				// TUI mode ignores format flags
				return tui.Run(result.Reports)
			}
			if err := writeResult(cmd, result, format, outputFile, sarifOut); err != nil {
				return err
			}

			if failOnFindings && len(result.Findings) > 0 {
				return fmt.Errorf("%d unguarded entry points found", len(result.Findings))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&contracts, "contract", "c", nil, "Contract to check (repeatable; overrides config)")
	cmd.Flags().BoolVar(&allContracts, "all", false, "Check every contract in the project")
	cmd.Flags().StringSliceVarP(&modifiers, "modifier", "m", nil, "Modifier name accepted as protection (repeatable)")
	cmd.Flags().StringSliceVar(&whitelist, "whitelist", nil, "Function name exempt from the check (repeatable)")
	cmd.Flags().StringVar(&whitelistFile, "whitelist-file", "", "JSON file with additional exempt function names")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file to use instead of searching from the target path")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file instead of stdout")
	cmd.Flags().StringVar(&sarifOut, "sarif-out", "", "Write SARIF report to file (with --format sarif)")
	cmd.Flags().IntVar(&budgetMs, "budget-ms", 30000, "Time budget for the engine run in milliseconds")
	cmd.Flags().StringVar(&slitherPath, "slither", "", "Path to the slither binary")
	cmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "Exit non-zero when any entry point is flagged")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().StringVar(&writeWhitelist, "write-whitelist", "", "Write flagged function names to a whitelist file")
	return cmd
}

// writeResult renders the check result in the requested format, to a file
// when an output path is given, to the command's stdout otherwise.
func writeResult(cmd *cobra.Command, result *model.CheckResult, format, outputFile, sarifOut string) error {
	switch format {
	case "json":
		data, err := report.ToJSON(result)
		if err != nil {
			return err
		}
		if outputFile != "" {
			return os.WriteFile(outputFile, data, 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "sarif":
		data, err := report.ToSARIF(result.Findings)
		if err != nil {
			return err
		}
		if sarifOut != "" {
			return os.WriteFile(sarifOut, data, 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		var buf bytes.Buffer
		if err := report.WriteText(&buf, result.Reports); err != nil {
			return err
		}
		if outputFile != "" {
			return os.WriteFile(outputFile, buf.Bytes(), 0o644)
		}
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	return nil
}
