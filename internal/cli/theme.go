package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/studio/internal/colour"
	"github.com/jmylchreest/studio/internal/image"
	"github.com/jmylchreest/studio/internal/security"
	"github.com/jmylchreest/studio/internal/theme"
)

var (
	themeMode         string
	themeFormat       string
	themeAlgorithm    string
	themeOutput       string
	themePreview      bool
	themeAllowPrivate bool
	themeTimeout      time.Duration
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:   "theme <image>",
	Short: "Compose a page theme from an image",
	Long: `Compose the page theme a portfolio project would get from its thumbnail.

The image may be a local file or an http(s) URL. When the image cannot be
loaded or sampled the fixed fallback theme for the mode is printed instead.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # CSS custom properties for dark mode (default)
  studio theme thumbnail.jpg

  # Light mode as JSON
  studio theme --mode light --format json https://cdn.example.com/thumb.png

  # Table with terminal colour swatches
  studio theme --format table --preview thumbnail.webp`,
	Args: cobra.ExactArgs(1),
	RunE: runTheme,
}

func init() {
	themeCmd.Flags().StringVarP(&themeMode, "mode", "m", string(theme.ModeDark), "theme mode (dark, light)")
	themeCmd.Flags().StringVarP(&themeFormat, "format", "f", "css", "output format (css, json, table)")
	themeCmd.Flags().StringVarP(&themeAlgorithm, "algorithm", "a", string(colour.AlgorithmProminent), "extraction algorithm (prominent, kmeans)")
	themeCmd.Flags().StringVarP(&themeOutput, "output", "o", "", "output file (default: stdout)")
	themeCmd.Flags().BoolVar(&themePreview, "preview", false, "show colour swatches in table output")
	themeCmd.Flags().BoolVar(&themeAllowPrivate, "allow-private", false, "allow loading from localhost and private networks")
	themeCmd.Flags().DurationVar(&themeTimeout, "timeout", 10*time.Second, "HTTP timeout for remote images")
}

// runTheme executes the theme command.
func runTheme(cmd *cobra.Command, args []string) error {
	mode, ok := theme.ParseMode(themeMode)
	if !ok {
		return fmt.Errorf("invalid mode: %s (valid: dark, light)", themeMode)
	}

	logger := newLogger("")
	remote := image.NewRemoteLoader(security.HostPolicy{AllowPrivate: themeAllowPrivate}, themeTimeout)
	composer, err := newComposer(themeAlgorithm, image.NewSmartLoader(remote), logger)
	if err != nil {
		return err
	}

	logger.Debug("composing theme", "image", args[0], "mode", mode, "algorithm", themeAlgorithm)
	t := composer.Compose(cmd.Context(), args[0], mode)
	if t.Source == theme.SourceFallback {
		logger.Warn("image could not be sampled, using fallback theme", "image", args[0])
	}

	output, err := formatTheme(t, themeFormat, themePreview)
	if err != nil {
		return err
	}

	if themeOutput != "" {
		if err := os.WriteFile(themeOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote theme", "path", themeOutput)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// formatTheme renders t as css, json or table.
func formatTheme(t theme.Theme, format string, preview bool) (string, error) {
	switch strings.ToLower(format) {
	case "css":
		return t.CSS(":root"), nil
	case "json":
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "table":
		table := NewTable([]string{"Variable", "Value"})
		for _, v := range t.Variables() {
			value := v.Value
			if preview && strings.HasPrefix(value, "#") {
				value = colour.Swatch(colour.ParseHex(value), 4) + " " + value
			}
			table.AddRow(v.Name, value)
		}
		return fmt.Sprintf("mode: %s  source: %s\n\n%s", t.Mode, t.Source, table.Render()), nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid: css, json, table)", format)
	}
}
