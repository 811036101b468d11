package main

import (
	"fmt"

	"github.com/arthur-debert/piconlink/internal/version"
	"github.com/arthur-debert/piconlink/pkg/core"
	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/logging"
	"github.com/arthur-debert/piconlink/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewRootCmd builds the piconlink command tree. A fresh command is
// returned each call so tests don't share flag state.
func NewRootCmd() *cobra.Command {
	var (
		verbosity    int
		ruleFull     bool
		ruleShort    bool
		ruleFold     bool
		ruleAddFold  bool
		serviceNames bool
		hardLinks    bool
		cleanAll     bool
		copyImages   string
	)

	rootCmd := &cobra.Command{
		Use:   "piconlink <defs-file> <picon-dir>...",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		Args:  cobra.MinimumNArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.root")

			rules, err := core.NormalizeRules(types.RuleSet{
				Full:         ruleFull,
				Short:        ruleShort,
				Fold:         ruleFold,
				AddFold:      ruleAddFold,
				ServiceNames: serviceNames,
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			if rules.Short {
				logger.Warn().Msg("Short names requested")
				fmt.Fprintln(cmd.ErrOrStderr(), MsgShortRuleNotice)
			}

			opts := types.Options{
				Rules:          rules,
				HardLinks:      hardLinks,
				CleanAll:       cleanAll,
				CopyImagesFrom: copyImages,
			}

			defsPath := args[0]
			piconDirs := args[1:]
			failed := 0
			for _, dir := range piconDirs {
				result, err := core.Run(core.RunOptions{
					DefsPath: defsPath,
					PiconDir: dir,
					Options:  opts,
				})
				if err != nil {
					logger.Error().Err(err).Str("dir", dir).Msg("Picon directory failed")
					fmt.Fprintf(cmd.ErrOrStderr(), MsgDirFailedFormat, dir, err)
					failed++
					continue
				}
				printSummary(cmd, result)
			}

			if failed > 0 {
				err := errors.Newf(errors.ErrInternal, "%d of %d picon directories failed", failed, len(piconDirs))
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}

	// Verbosity flag for logging
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.Flags().BoolVarP(&ruleFull, "full", "f", false, MsgFlagFull)
	rootCmd.Flags().BoolVarP(&ruleShort, "short", "s", false, MsgFlagShort)
	rootCmd.Flags().BoolVarP(&ruleFold, "fold", "F", false, MsgFlagFold)
	rootCmd.Flags().BoolVarP(&ruleAddFold, "addfold", "a", false, MsgFlagAddFold)
	rootCmd.Flags().BoolVarP(&serviceNames, "servicenames", "S", false, MsgFlagServiceNames)
	rootCmd.Flags().BoolVarP(&hardLinks, "hardlinks", "H", false, MsgFlagHardLinks)
	rootCmd.Flags().BoolVarP(&cleanAll, "cleanall", "c", false, MsgFlagCleanAll)
	rootCmd.Flags().StringVarP(&copyImages, "copyimages", "C", "", MsgFlagCopyImages)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))
	rootCmd.AddCommand(newGenConfigCmd())

	return rootCmd
}

func printSummary(cmd *cobra.Command, result *core.RunResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, MsgSummaryFormat,
		formatBold(result.PiconSet), result.Records, result.LinksMade, result.LinksRemoved)
	for _, name := range result.UnusedIcons {
		fmt.Fprintf(out, MsgUnusedFormat, name)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version information for piconlink`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "piconlink version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `To load completions:

Bash:
  $ source <(piconlink completion bash)

Zsh:
  $ piconlink completion zsh > "${fpath[1]}/_piconlink"

Fish:
  $ piconlink completion fish | source

PowerShell:
  PS> piconlink completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}

func newManCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "man",
		Short: "Generate man page",
		Long:  `Generate man page for piconlink`,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "PICONLINK",
				Section: "1",
			}
			return doc.GenManTree(root, header, "/tmp")
		},
	}
}
