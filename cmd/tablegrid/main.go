// Package main provides the CLI entry point for tablegrid-go.
package main

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/htmltable"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/xlsxtable"
)

var (
	outputPath string
	sheetName  string
	asJSON     bool
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tablegrid",
		Short: "Inspect and edit row/column span structure of tables",
		Long: `tablegrid builds a logical grid model over HTML or xlsx tables
and supports merging rectangular cell regions and splitting spanned
cells back into unit cells.`,
	}

	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout, or input path for xlsx)")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "Sheet1", "Worksheet name for xlsx input/output")

	showCmd := &cobra.Command{
		Use:   "show [input]",
		Short: "Print the logical grid of a table",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Output the grid layout as JSON")
	showCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	mergeCmd := &cobra.Command{
		Use:   "merge [input] [startRow] [startCol] [endRow] [endCol]",
		Short: "Merge a rectangular region of cells into one",
		Args:  cobra.ExactArgs(5),
		RunE:  runMerge,
	}

	splitCmd := &cobra.Command{
		Use:   "split [input] [row] [col]",
		Short: "Split a spanned cell into unit cells",
		Args:  cobra.ExactArgs(3),
		RunE:  runSplit,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a table between HTML and xlsx",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}

	rootCmd.AddCommand(showCmd, mergeCmd, splitCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// document holds a loaded table together with what is needed to write
// it back in its source format.
type document struct {
	grid *tablegrid.Grid
	html *htmltable.Table // non-nil for HTML input
	path string
}

func load(path string) (*document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		t, err := htmltable.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return &document{grid: tablegrid.NewGrid(t), html: t, path: path}, nil
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		t, err := xlsxtable.Import(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", path, err)
		}
		return &document{grid: tablegrid.NewGrid(t), path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", path)
	}
}

// save writes the mutated table back out. HTML goes to the output path
// or stdout; xlsx is rebuilt from the layout and defaults to the input
// path.
func (d *document) save() error {
	if d.html != nil {
		if outputPath == "" {
			return d.html.Render(os.Stdout)
		}
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return d.html.Render(f)
	}

	out := outputPath
	if out == "" {
		out = d.path
	}
	return saveXLSX(out, d.grid.Layout())
}

func saveXLSX(path string, l tablegrid.Layout) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := xlsxtable.Export(f, sheetName, l); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func runShow(cmd *cobra.Command, args []string) error {
	doc, err := load(args[0])
	if err != nil {
		return err
	}

	if asJSON {
		var data []byte
		if pretty {
			data, err = json.MarshalIndent(doc.grid.Layout(), "", "  ")
		} else {
			data, err = json.Marshal(doc.grid.Layout())
		}
		if err != nil {
			return err
		}
		return writeOutput(append(data, '\n'))
	}
	return writeOutput([]byte(renderGrid(doc.grid)))
}

func writeOutput(data []byte) error {
	if outputPath != "" {
		return os.WriteFile(outputPath, data, 0644)
	}
	_, err := os.Stdout.Write(data)
	return err
}

func runMerge(cmd *cobra.Command, args []string) error {
	coords, err := parseCoords(args[1:])
	if err != nil {
		return err
	}
	doc, err := load(args[0])
	if err != nil {
		return err
	}
	if err := doc.grid.MergeCells(coords[0], coords[1], coords[2], coords[3]); err != nil {
		return err
	}
	return doc.save()
}

func runSplit(cmd *cobra.Command, args []string) error {
	coords, err := parseCoords(args[1:])
	if err != nil {
		return err
	}
	doc, err := load(args[0])
	if err != nil {
		return err
	}
	if _, err := doc.grid.SplitCell(coords[0], coords[1]); err != nil {
		return err
	}
	return doc.save()
}

func runConvert(cmd *cobra.Command, args []string) error {
	doc, err := load(args[0])
	if err != nil {
		return err
	}
	out := args[1]
	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		return saveXLSX(out, doc.grid.Layout())
	case ".html", ".htm":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		return writeHTML(f, doc.grid.Layout())
	default:
		return fmt.Errorf("unsupported output format: %s", out)
	}
}

// writeHTML emits a minimal table document from a layout snapshot.
func writeHTML(f *os.File, l tablegrid.Layout) error {
	var sb strings.Builder
	sb.WriteString("<table>\n")
	for _, row := range l.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row.Cells {
			sb.WriteString("<td")
			if cell.RowSpan > 1 {
				fmt.Fprintf(&sb, " rowspan=\"%d\"", cell.RowSpan)
			}
			if cell.ColSpan > 1 {
				fmt.Fprintf(&sb, " colspan=\"%d\"", cell.ColSpan)
			}
			sb.WriteString(">")
			sb.WriteString(html.EscapeString(cell.Text))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n")
	_, err := f.WriteString(sb.String())
	return err
}

func parseCoords(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid coordinate %q: expected a non-negative integer", a)
		}
		out[i] = v
	}
	return out, nil
}
