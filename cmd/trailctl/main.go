// Command trailctl renders the trail effect offline and manages config files.
package main

import (
	"flag"
	"os"

	"camera-trail/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "trailctl",
		Short:        "offline tools for camera trails",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRenderCmd(), newConfigCmd())
	return rootCmd
}

// settings binds a Config and an optional YAML file onto a cobra command.
type settings struct {
	cfg  *config.Config
	file string
}

func bindSettings(cmd *cobra.Command) *settings {
	s := &settings{cfg: config.Default()}
	goFlags := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	s.cfg.Bind(goFlags)
	cmd.Flags().AddGoFlagSet(goFlags)
	cmd.Flags().StringVar(&s.file, "config", "", "YAML configuration file applied before flags")
	return s
}

// resolve loads the YAML file, if any, then reapplies the flags the user set
// so they keep precedence.
func (s *settings) resolve(flags *pflag.FlagSet) error {
	if s.file != "" {
		explicit := map[string]string{}
		flags.Visit(func(f *pflag.Flag) {
			if f.Name != "config" {
				explicit[f.Name] = f.Value.String()
			}
		})
		if err := s.cfg.LoadFile(s.file); err != nil {
			return err
		}
		for name, value := range explicit {
			if err := flags.Set(name, value); err != nil {
				return err
			}
		}
	}
	return s.cfg.Validate()
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
	}
	s := bindSettings(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := s.resolve(cmd.Flags()); err != nil {
			return err
		}
		data, err := s.cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return cmd
}
