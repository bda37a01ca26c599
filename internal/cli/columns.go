package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/studio/internal/portfolio"
)

// columnsCmd represents the columns command
var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the upstream table columns and their mapped fields",
	Long: `List every column of the configured Coda table with the portfolio field
it is mapped to. Columns without a field are ignored by the site; fields
whose column is missing upstream are always empty.`,
	Args: cobra.NoArgs,
	RunE: runColumns,
}

func runColumns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	client, err := newCodaClient(cfg, logger)
	if err != nil {
		return err
	}
	mapping := portfolio.DefaultColumns()
	service := portfolio.NewService(client, portfolio.NewMapper(mapping), logger.Named("portfolio"))

	res := service.Columns(cmd.Context())
	if !res.Success {
		return fmt.Errorf("failed to list columns: %s", res.Error)
	}

	seen := make(map[string]bool, len(res.Columns))
	table := NewTable([]string{"Column ID", "Name", "Field"})
	for _, col := range res.Columns {
		field, _ := mapping.Field(col.ID)
		seen[col.ID] = true
		table.AddRow(col.ID, col.Name, field)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, table.Render())

	for _, field := range mapping.Fields() {
		if id, _ := mapping.ColumnFor(field); !seen[id] {
			fmt.Fprintf(out, "warning: field %s is mapped to missing column %s\n", field, id)
		}
	}
	return nil
}
