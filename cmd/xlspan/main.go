// Package main provides the xlspan command for inspecting and editing merged
// cell ranges in xlsx workbooks.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/javajack/xlspan"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var errIssuesFound = errors.New("validation issues found")

type globalFlags struct {
	sheet   string
	output  string
	verbose bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "xlspan",
		Short: "Inspect and edit merged cells in xlsx workbooks",
		Long: `xlspan loads the merged ranges of a worksheet, checks that none
overlap, and merges or splits ranges without breaking the sheet's layout.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&flags.sheet, "sheet", "", "Worksheet name (default: first sheet)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	describeCmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Print a map of the sheet's merged ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(flags, args[0], func(sg *xlspan.SheetGrid) error {
				desc, err := xlspan.Describe(sg.Grid())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sheet: %s\n%s", sg.Sheet(), desc)
				return nil
			})
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Verify that no merged ranges overlap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(flags, args[0], func(sg *xlspan.SheetGrid) error {
				issues, err := xlspan.Validate(sg.Grid())
				if err != nil {
					return err
				}
				for _, issue := range issues {
					fmt.Fprintln(cmd.OutOrStdout(), issue)
				}
				if xlspan.HasErrors(issues) {
					return errIssuesFound
				}
				spans, err := sg.Controller().Spans()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d merged ranges in %s\n", len(spans), sg.Sheet())
				return nil
			})
		},
	}

	mergeCmd := &cobra.Command{
		Use:   "merge FILE RANGE",
		Short: "Merge a range such as A1:C3",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := xlspan.ParseAreaRef(args[1])
			if err != nil {
				return err
			}
			return withSheet(flags, args[0], func(sg *xlspan.SheetGrid) error {
				if err := sg.Controller().SetSpan(area.First, area.Span()); err != nil {
					return err
				}
				return save(cmd, sg, flags.output, args[0])
			})
		},
	}

	unmergeCmd := &cobra.Command{
		Use:   "unmerge FILE CELL",
		Short: "Split the merged range containing CELL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := xlspan.ParseCellRef(args[1])
			if err != nil {
				return err
			}
			return withSheet(flags, args[0], func(sg *xlspan.SheetGrid) error {
				ctl := sg.Controller()
				anchor, ok, err := ctl.CoveringAnchor(ref)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not merged\n", ref)
					return nil
				}
				if err := ctl.RemoveSpan(anchor); err != nil {
					return err
				}
				return save(cmd, sg, flags.output, args[0])
			})
		},
	}

	for _, c := range []*cobra.Command{mergeCmd, unmergeCmd} {
		c.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: overwrite FILE)")
	}
	rootCmd.AddCommand(describeCmd, checkCmd, mergeCmd, unmergeCmd)
	return rootCmd
}

// withSheet opens path, resolves the worksheet and runs fn on its grid.
func withSheet(flags *globalFlags, path string, fn func(sg *xlspan.SheetGrid) error) error {
	logger := zap.NewNop()
	if flags.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
		defer logger.Sync()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()

	sheet := flags.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return fmt.Errorf("workbook %q has no sheets", path)
		}
		sheet = sheets[0]
	}

	sg, err := xlspan.NewSheetGrid(f, sheet, xlspan.WithLogger(logger))
	if err != nil {
		return err
	}
	return fn(sg)
}

func save(cmd *cobra.Command, sg *xlspan.SheetGrid, output, input string) error {
	if output == "" {
		output = input
	}
	if err := sg.SaveAs(output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}
