package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"gwcheck/internal/analyzer"
	"gwcheck/internal/classifier"
	"gwcheck/internal/config"
	"gwcheck/internal/llm"
	"gwcheck/internal/oracle"
)

var (
	checkOut  string
	checkJSON bool

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a document's formatting against the official requirements",
	Long: `Classify the document into a structure tree, then submit every node
with its neighbor context to the configured chat backend for a format
compliance check. Backend credentials come from the environment
(DEEPSEEK_API_KEY or GEMINI_API_KEY, selected by LLM_BACKEND).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		client, model, err := newChatClient(cfg)
		if err != nil {
			return err
		}

		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stats := llm.NewStats(0)

		clsCfg := classifierConfig(cfg)
		var orc classifier.Oracle
		if cfg.OracleEnabled {
			orc = oracle.New(client, stats)
		}
		cls := classifier.New(clsCfg, orc, nil)
		root := cls.BuildTree(ctx, doc.Paragraphs)

		anCfg := analyzer.DefaultConfig()
		anCfg.ContextBefore = cfg.ContextBefore
		anCfg.ContextAfter = cfg.ContextAfter
		anCfg.Delay = cfg.AnalyzeDelay
		if cfg.FormatRulesFile != "" {
			rules, err := os.ReadFile(cfg.FormatRulesFile)
			if err != nil {
				return fmt.Errorf("read format rules file: %w", err)
			}
			anCfg.FormatRules = string(rules)
		}
		an := analyzer.New(client, stats, anCfg, nil)

		fmt.Fprintf(os.Stderr, "%s %s (%d nodes, model %s)\n",
			dimStyle.Render("checking"), doc.Title, len(root.Flatten()), model)

		report := an.AnalyzeAll(ctx, doc.Title, root, func(done, total int) {
			fmt.Fprintf(os.Stderr, "\r%s %d/%d", dimStyle.Render("analyzed"), done, total)
		})
		fmt.Fprintln(os.Stderr)

		if report.Failed > 0 {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("%d node(s) failed to analyze", report.Failed)))
		} else {
			fmt.Fprintln(os.Stderr, successStyle.Render("all nodes analyzed"))
		}

		if checkOut != "" {
			page, err := report.RenderHTML()
			if err != nil {
				return err
			}
			if err := os.WriteFile(checkOut, page, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s %s\n", dimStyle.Render("report written to"), checkOut)
			return nil
		}

		if checkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		for _, res := range report.Results {
			fmt.Printf("\n%s %s\n", labelStyle.Render(fmt.Sprintf("节点 %d", res.Index+1)), res.Role.Label())
			if res.Error != "" {
				fmt.Println(errorStyle.Render("分析失败: " + res.Error))
				continue
			}
			fmt.Println(res.Analysis)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkOut, "out", "o", "", "Write an HTML report to this path")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the report as JSON instead of text")
	rootCmd.AddCommand(checkCmd)
}

// classifierConfig maps the env config onto the classifier thresholds,
// including the oracle context window.
func classifierConfig(cfg config.Config) classifier.Config {
	c := classifier.DefaultConfig()
	c.H1BoldSizePt = cfg.H1BoldSizePt
	c.H2BoldSizePt = cfg.H2BoldSizePt
	c.H3BoldSizePt = cfg.H3BoldSizePt
	c.TitleMinSizePt = cfg.TitleMinSizePt
	c.ContextBefore = cfg.ContextBefore
	return c
}

func newChatClient(cfg config.Config) (llm.ChatClient, string, error) {
	switch cfg.LLMBackend {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, "", fmt.Errorf("GEMINI_API_KEY is required when LLM_BACKEND=gemini")
		}
		return llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel), cfg.GeminiModel, nil
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" {
			return nil, "", fmt.Errorf("DEEPSEEK_API_KEY is required when LLM_BACKEND=deepseek")
		}
		return llm.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekAPIURL, cfg.DeepSeekModel, cfg.LLMStream), cfg.DeepSeekModel, nil
	default:
		return nil, "", fmt.Errorf("unknown LLM_BACKEND %q (want deepseek or gemini)", cfg.LLMBackend)
	}
}
