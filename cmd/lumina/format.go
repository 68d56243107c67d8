package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/format"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Render a JSON or YAML value for display",
	Long: `Reads a JSON or YAML value from a file (or stdin when no file or "-" is
given) and prints its display form: nested lists as [a, b], objects as
{key: value} in document order and null as empty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		yamlInput, _ := cmd.Flags().GetBool("yaml")

		mode, err := format.ParseMode(modeName)
		if err != nil {
			return err
		}

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}

		value, err := decodeValue(data, yamlInput || isYAML(path))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if mode == format.ModeValues {
			for _, v := range format.Values(value) {
				fmt.Fprintln(out, v)
			}
			return nil
		}
		fmt.Fprintln(out, format.Render(value, mode))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringP("mode", "m", string(format.ModeFormat),
		fmt.Sprintf("Rendering mode: %s", strings.Join(modeNames(), ", ")))
	formatCmd.Flags().Bool("yaml", false, "Decode the input as YAML regardless of the file extension")
}

func modeNames() []string {
	names := make([]string, len(format.Modes))
	for i, m := range format.Modes {
		names[i] = string(m)
	}
	return names
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func decodeValue(data []byte, yamlInput bool) (domain.DisplayValue, error) {
	if yamlInput {
		return format.DecodeYAML(data)
	}
	return format.DecodeJSON(data)
}
