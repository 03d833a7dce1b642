package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/bug-autopsy/pkg/config"
	"github.com/helmcode/bug-autopsy/pkg/export"
	"github.com/helmcode/bug-autopsy/pkg/formatter"
	"github.com/helmcode/bug-autopsy/pkg/model"
	"github.com/helmcode/bug-autopsy/pkg/observability"
	"github.com/helmcode/bug-autopsy/pkg/store"
)

var (
	casesConfigPath   string
	casesOutputFormat string
	casesExportPath   string
)

func NewCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Manage saved case files",
	}

	cmd.PersistentFlags().StringVar(&casesConfigPath, "config", "", "Path to config file")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all case files, most recent first",
		Args:  cobra.NoArgs,
		RunE:  runCasesList,
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one case file's analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runCasesShow,
	}
	show.Flags().StringVarP(&casesOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	status := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set a case file's status (open, resolved, archived)",
		Args:  cobra.ExactArgs(2),
		RunE:  runCasesStatus,
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a case file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCasesDelete,
	}

	exp := &cobra.Command{
		Use:   "export ID",
		Short: "Export a case file as a printable HTML report",
		Args:  cobra.ExactArgs(1),
		RunE:  runCasesExport,
	}
	exp.Flags().StringVarP(&casesExportPath, "out", "O", "", "Output file (default: bug-autopsy-<id>.html)")

	cmd.AddCommand(list, show, status, del, exp)
	return cmd
}

func openStore() (*store.Store, error) {
	cfg, err := config.Load(casesConfigPath)
	if err != nil {
		return nil, err
	}
	return store.New(cfg.Store.Path, observability.NewLogger(cfg.Logger))
}

func runCasesList(cmd *cobra.Command, args []string) error {
	cases, err := openStore()
	if err != nil {
		return err
	}

	files := cases.List()
	if len(files) == 0 {
		fmt.Println("No case files saved yet.")
		return nil
	}

	bold := color.New(color.Bold)
	for _, cf := range files {
		bold.Printf("%s  %s\n", shortID(cf.ID), cf.Title)
		fmt.Printf("         status: %s | severity: %d/10 (%s) | created: %s\n",
			cf.Status,
			cf.Analysis.SeverityScore,
			model.SeverityLabel(cf.Analysis.SeverityScore),
			cf.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// findCase resolves a full or prefix id against the stored list.
func findCase(cases *store.Store, id string) (model.CaseFile, error) {
	if cf, err := cases.Get(id); err == nil {
		return cf, nil
	}
	for _, cf := range cases.List() {
		if len(id) >= 4 && len(cf.ID) >= len(id) && cf.ID[:len(id)] == id {
			return cf, nil
		}
	}
	return model.CaseFile{}, fmt.Errorf("no case file matching %q", id)
}

func runCasesShow(cmd *cobra.Command, args []string) error {
	cases, err := openStore()
	if err != nil {
		return err
	}
	cf, err := findCase(cases, args[0])
	if err != nil {
		return err
	}
	return formatter.DisplayAnalysis(&cf.Analysis, casesOutputFormat)
}

func runCasesStatus(cmd *cobra.Command, args []string) error {
	cases, err := openStore()
	if err != nil {
		return err
	}
	cf, err := findCase(cases, args[0])
	if err != nil {
		return err
	}
	if _, err := cases.SetStatus(cf.ID, model.CaseStatus(args[1])); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Case %s is now %s", shortID(cf.ID), args[1]))
	return nil
}

func runCasesDelete(cmd *cobra.Command, args []string) error {
	cases, err := openStore()
	if err != nil {
		return err
	}
	cf, err := findCase(cases, args[0])
	if err != nil {
		// Deleting something that is already gone is not an error.
		fmt.Printf("No case file matching %q, nothing to delete.\n", args[0])
		return nil
	}
	if err := cases.Delete(cf.ID); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Deleted case %s", shortID(cf.ID)))
	return nil
}

func runCasesExport(cmd *cobra.Command, args []string) error {
	cases, err := openStore()
	if err != nil {
		return err
	}
	cf, err := findCase(cases, args[0])
	if err != nil {
		return err
	}

	out := casesExportPath
	if out == "" {
		out = fmt.Sprintf("bug-autopsy-%s.html", shortID(cf.ID))
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.Render(f, cf.Analysis); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Report written to %s", out))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
