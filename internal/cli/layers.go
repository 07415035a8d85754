package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var layersFlags settingsFlags

var layersCmd = &cobra.Command{
	Use:   "layers [corpus_root]",
	Short: "Show the layer registry",
	Long: `Print every layer with its level, identifier prefix and the layers its
documents may compose. A custom registry is used when layers_file is set in
strata.yaml.`,
	Args: OptionalCorpusRoot,
	RunE: runLayers,
}

func init() {
	layersCmd.Flags().StringVar(&layersFlags.configFile, "config", "", "Path to a config file (default <corpus_root>/strata.yaml)")
	rootCmd.AddCommand(layersCmd)
}

func runLayers(cmd *cobra.Command, args []string) error {
	run, err := resolveRun(args, layersFlags, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-14s %-6s %-7s %s\n", "LAYER", "LEVEL", "PREFIX", "ALLOWS")
	for _, l := range run.Registry.Layers() {
		allows := "-"
		if len(l.Allows) > 0 {
			allows = strings.Join(l.Allows, ", ")
		}
		fmt.Fprintf(out, "%-14s %-6s %-7s %s\n", l.Name, l.Token(), l.Prefix, allows)
	}
	return nil
}
