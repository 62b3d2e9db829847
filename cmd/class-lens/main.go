// class-lens lists the compiled class files reachable from a classpath, no
// matter if they sit in a directory tree or inside a jar archive.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/CZERTAINLY/class-lens/internal/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagConfigFilePath string // value of --config flag
	flagVerbose        bool   // value of --verbose flag
)

var rootCmd = &cobra.Command{
	Use:          "class-lens",
	Short:        "Tool listing compiled class files on a classpath",
	SilenceUsage: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan [entry ...]",
	Short: "scan classpath entries (directories, jars, jar!/prefix) and print every class file location",
	RunE:  doScan,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "config prints the effective configuration as YAML",
	RunE:  doConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version provides version of class-lens",
	RunE:  doVersion,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFilePath, "config", "", "Config file to load, - means stdin")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")

	// never print messages and usage
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if cmd, err := rootCmd.ExecuteC(); err != nil {
		slog.Error("class-lens failed", "err", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = rootCmd.Help()
		} else {
			_ = cmd.Help()
		}
		os.Exit(1)
	}
}

func loadConfig() (model.Config, error) {
	if flagConfigFilePath == "" {
		return model.DefaultConfig(), nil
	}
	return model.LoadConfigFromFile(flagConfigFilePath)
}

func doConfig(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func doVersion(cmd *cobra.Command, args []string) error {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return fmt.Errorf("class-lens: version info not available")
	}

	fmt.Printf("class-lens: %s\n", info.Main.Version)
	fmt.Printf("go:         %s\n", info.GoVersion)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			fmt.Printf("commit:     %s\n", s.Value)
		case "vcs.time":
			fmt.Printf("date:       %s\n", s.Value)
		case "vcs.modified":
			fmt.Printf("dirty:      %s\n", s.Value)
		}
	}

	return nil
}
