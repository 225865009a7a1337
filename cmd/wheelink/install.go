package wheelink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/wheelink/pkg/config"
	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/filesystem"
	"github.com/arthur-debert/wheelink/pkg/installer"
	"github.com/arthur-debert/wheelink/pkg/linker"
	"github.com/arthur-debert/wheelink/pkg/logging"
	"github.com/arthur-debert/wheelink/pkg/plan"
	"github.com/arthur-debert/wheelink/pkg/report"
	"github.com/arthur-debert/wheelink/pkg/ui"
)

// installFlags are shared by the install and link commands.
type installFlags struct {
	dest   string
	jobs   int
	output string
}

func (f *installFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, MsgFlagJobs)
	cmd.Flags().StringVarP(&f.output, "output", "o", "auto", MsgFlagOutput)
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json", "xml"}, cobra.ShellCompDirectiveNoFileComp))
}

func (f *installFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	if cmd.Flags().Changed("jobs") {
		return map[string]interface{}{"link.jobs": f.jobs}
	}
	return nil
}

func newInstallCmd(flags *globalFlags) *cobra.Command {
	opts := &installFlags{}
	cmd := &cobra.Command{
		Use:   "install <plan>",
		Short: MsgInstallShort,
		Long:  MsgInstallLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.install")

			if err := loadConfig(cmd, flags, opts.overrides(cmd)); err != nil {
				return err
			}
			p, err := plan.Load(args[0])
			if err != nil {
				return err
			}

			dest := opts.dest
			if dest == "" {
				dest = p.Destination
			}
			if dest == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoDestination)
			}

			logger.Info().
				Str("plan", args[0]).
				Str("dest", dest).
				Int("packages", len(p.Packages)).
				Msg("Starting install")
			return runInstall(cmd, opts.output, dest, p.Packages)
		},
	}
	cmd.Flags().StringVarP(&opts.dest, "dest", "d", "", MsgFlagDest)
	opts.register(cmd)
	return cmd
}

func newLinkCmd(flags *globalFlags) *cobra.Command {
	opts := &installFlags{}
	var name, pkgVersion string
	cmd := &cobra.Command{
		Use:   "link <source> <dest>",
		Short: MsgLinkShort,
		Long:  MsgLinkLong,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, flags, opts.overrides(cmd)); err != nil {
				return err
			}

			source, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid source %s", args[0])
			}
			if name == "" {
				name = filepath.Base(source)
			}
			pkg := plan.Package{Name: name, Version: pkgVersion, Source: source}
			return runInstall(cmd, opts.output, args[1], []plan.Package{pkg})
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)
	cmd.Flags().StringVar(&pkgVersion, "version", "", MsgFlagVersion)
	return cmd
}

// runInstall links packages into dest and writes the report to stdout.
// Live warnings and progress go to stderr for human formats only.
func runInstall(cmd *cobra.Command, output, dest string, packages []plan.Package) error {
	defer logging.LogDuration(time.Now(), "install")
	cfg := config.Get()

	format, err := ui.ParseFormat(output)
	if err != nil {
		return fmt.Errorf(MsgErrOutputFormat, err)
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	format = resolveFormat(format, stdout)
	printer := ui.NewPrinter(stderr, resolveFormat(ui.FormatAuto, stderr))

	opts := []installer.Option{
		installer.WithMode(cfg.LinkMode()),
		installer.WithJobs(cfg.Jobs()),
		installer.WithPreview(cfg.PreviewSet()),
		installer.WithLinkerOptions(linker.WithPreserveExecutables(cfg.PreserveExecutablesFor(runtime.GOOS))),
	}
	if format.IsStructured() {
		opts = append(opts, installer.WithWarnings(cfg.Diagnostics.Warnings, nil))
	} else {
		opts = append(opts, installer.WithWarnings(cfg.Diagnostics.Warnings, printer.WarningSink()))
		progress := printer.StartProgress(MsgProgressTitle, len(packages))
		defer progress.Stop()
		opts = append(opts, installer.WithPackageDone(func(p report.Package) {
			progress.Step(p.Identity.String())
		}))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	inst := installer.New(filesystem.NewOS(), opts...)
	rep, installErr := inst.Install(ctx, dest, packages)

	// The report is written even when the install failed.
	if err := report.Render(stdout, rep, format); err != nil {
		return err
	}
	return installErr
}

func resolveFormat(f ui.Format, w io.Writer) ui.Format {
	if file, ok := w.(*os.File); ok {
		return ui.Resolve(f, file)
	}
	if f == ui.FormatAuto {
		return ui.FormatText
	}
	return f
}
