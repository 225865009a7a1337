package wheelink

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/wheelink/internal/version"
	"github.com/arthur-debert/wheelink/pkg/config"
	"github.com/arthur-debert/wheelink/pkg/logging"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbosity  int
	configFile string
	linkMode   string
	preview    []string
	noWarnings bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "wheelink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&flags.configFile, "config", "c", "", MsgFlagConfig)
	pf.StringVar(&flags.linkMode, "link-mode", "", MsgFlagLinkMode)
	pf.StringSliceVar(&flags.preview, "preview", nil, MsgFlagPreview)
	pf.BoolVar(&flags.noWarnings, "no-warnings", false, MsgFlagNoWarnings)

	_ = rootCmd.RegisterFlagCompletionFunc("link-mode", cobra.FixedCompletions(
		[]string{"clone", "copy", "hardlink", "symlink"}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("preview", cobra.FixedCompletions(
		[]string{"detect-module-conflicts"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(newInstallCmd(flags))
	rootCmd.AddCommand(newLinkCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig layers the global flags that were set on top of the
// configuration files and environment, and installs the result as the
// process configuration read through config.Get.
func loadConfig(cmd *cobra.Command, flags *globalFlags, extra map[string]interface{}) error {
	overrides := map[string]interface{}{}
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("link-mode") {
		overrides["link.mode"] = flags.linkMode
	}
	if changed("preview") {
		overrides["preview.features"] = flags.preview
	}
	if changed("no-warnings") {
		overrides["diagnostics.warnings"] = !flags.noWarnings
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(config.LoadOptions{
		File:      flags.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}
	config.Initialize(cfg)
	return nil
}
