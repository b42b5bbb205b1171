// Command analyze runs the resume analysis pipeline on local files and prints
// the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "analyze",
	Short:         "Analyze a resume against an optional job description",
	Long:          "Extracts text from a resume (PDF, DOC/DOCX or plain text), scores it for ATS keyword coverage and section completeness, and prints the analysis as JSON.",
	RunE:          runAnalyze,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords <file>",
	Short: "Print the ranked keywords of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywords,
}

var (
	resumePath string
	jdPath     string
	useGPT     bool
	pretty     bool
	topN       int
)

func init() {
	rootCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume (pdf, doc, docx or txt)")
	rootCmd.Flags().StringVarP(&jdPath, "jd", "j", "", "Path to the job description (optional)")
	rootCmd.Flags().BoolVar(&useGPT, "use-gpt", false, "Request rewrite suggestions (currently ignored)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	_ = rootCmd.MarkFlagRequired("resume")

	keywordsCmd.Flags().IntVarP(&topN, "top", "n", 20, "Number of keywords to return")
	rootCmd.AddCommand(keywordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, m, err := loadModels(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	uploads := services.NewUploadService(cfg.Upload.MaxFileSize)

	resume, err := uploads.ReadFile(resumePath)
	if err != nil {
		return err
	}

	var jd *models.Document
	if jdPath != "" {
		doc, err := uploads.ReadFile(jdPath)
		if err != nil {
			return err
		}
		jd = &doc
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Analysis.Timeout)
	defer cancel()

	analyzer := services.NewAnalyzerService(m, services.NewTextExtractor(), cfg.Analysis.KeywordTopN)
	result, err := analyzer.AnalyzeDocuments(ctx, resume, jd, useGPT)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", resumePath, err)
	}

	return printJSON(cmd, result)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, m, err := loadModels(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	doc, err := services.NewUploadService(cfg.Upload.MaxFileSize).ReadFile(args[0])
	if err != nil {
		return err
	}

	text, err := services.NewTextExtractor().ExtractText(doc.Filename, doc.Data)
	if err != nil {
		return err
	}

	analyzer := services.NewAnalyzerService(m, services.NewTextExtractor(), cfg.Analysis.KeywordTopN)
	return printJSON(cmd, analyzer.GetKeywords(ctx, text, topN))
}

func loadModels(ctx context.Context) (*config.Config, *services.Models, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	m, err := services.LoadModels(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
