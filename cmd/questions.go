package cmd

import (
	"fmt"
	"strconv"

	"github.com/killallgit/interviewcut/internal/questions"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the interview question catalog",
	Long: `Manage the categorized interview questions.

The catalog is read from --file, or questions.file in the settings, and
falls back to the built-in questions. Changes are written back to the
same file.`,
}

var questionsListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List categories and their questions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuestionsList,
}

var questionsAddCmd = &cobra.Command{
	Use:   "add <category> <question>",
	Short: "Append a question to an existing category",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuestionsAdd,
}

var questionsRemoveCmd = &cobra.Command{
	Use:   "remove <category> <index>",
	Short: "Remove a question by its 1-based position",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuestionsRemove,
}

var questionsExportCmd = &cobra.Command{
	Use:   "export <path.json|path.yaml>",
	Short: "Write the catalog to a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionsExport,
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <path.json|path.yaml>",
	Short: "Replace the catalog with a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionsImport,
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	questionsCmd.AddCommand(questionsListCmd, questionsAddCmd, questionsRemoveCmd, questionsExportCmd, questionsImportCmd)
	questionsCmd.PersistentFlags().String("file", "", "catalog file (overrides questions.file)")
}

// catalogPath resolves the catalog file the command works on
func catalogPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return path, nil
	}
	if err := loadConfig(); err != nil {
		return "", err
	}
	return appConfig.Questions.File, nil
}

func openCatalog(cmd *cobra.Command) (*questions.Catalog, string, error) {
	path, err := catalogPath(cmd)
	if err != nil {
		return nil, "", err
	}
	catalog, err := loadCatalog(cliFs, path)
	if err != nil {
		return nil, "", err
	}
	return catalog, path, nil
}

func saveCatalog(catalog *questions.Catalog, path string) error {
	if path == "" {
		return fmt.Errorf("no catalog file configured, pass --file or set questions.file")
	}
	return catalog.Export(cliFs, path)
}

func runQuestionsList(cmd *cobra.Command, args []string) error {
	catalog, _, err := openCatalog(cmd)
	if err != nil {
		return err
	}

	categories := catalog.Categories()
	if len(args) == 1 {
		cat, err := catalog.Category(args[0])
		if err != nil {
			return err
		}
		categories = []questions.Category{cat}
	}

	out := cmd.OutOrStdout()
	for _, cat := range categories {
		fmt.Fprintf(out, "%s\n", cat.Name)
		for i, q := range cat.Questions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, q)
		}
	}
	return nil
}

func runQuestionsAdd(cmd *cobra.Command, args []string) error {
	catalog, path, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	if err := catalog.Add(args[0], args[1]); err != nil {
		return err
	}
	if err := saveCatalog(catalog, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added to %s\n", args[0])
	return nil
}

func runQuestionsRemove(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil || index < 1 {
		return fmt.Errorf("%w: index must be 1 or more, got %q", questions.ErrQuestionNotFound, args[1])
	}

	catalog, path, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	if err := catalog.Remove(args[0], index-1); err != nil {
		return err
	}
	if err := saveCatalog(catalog, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed question %d from %s\n", index, args[0])
	return nil
}

func runQuestionsExport(cmd *cobra.Command, args []string) error {
	catalog, _, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	if err := catalog.Export(cliFs, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d questions to %s\n", catalog.Total(), args[0])
	return nil
}

func runQuestionsImport(cmd *cobra.Command, args []string) error {
	catalog, path, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	if err := catalog.Import(cliFs, args[0]); err != nil {
		return err
	}
	if err := saveCatalog(catalog, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions into %s\n", catalog.Total(), path)
	return nil
}
