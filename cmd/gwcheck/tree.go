package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"gwcheck/internal/classifier"
	"gwcheck/internal/doctree"
	"gwcheck/internal/parser"
)

var treeJSON bool

var (
	// headingStyle for heading and title nodes
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// labelStyle for role labels
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the classified structure tree of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		cls := classifier.New(classifier.DefaultConfig(), nil, nil)
		root := cls.BuildTree(context.Background(), doc.Paragraphs)

		if treeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"title": doc.Title,
				"tree":  root.Children,
			})
		}

		fmt.Println(headingStyle.Render(doc.Title))
		for _, child := range root.Children {
			printNode(child, 0)
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Emit the tree as JSON instead of text")
	rootCmd.AddCommand(treeCmd)
}

func printNode(n *doctree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	text := n.Attrs.Text
	if len([]rune(text)) > 60 {
		text = string([]rune(text)[:60]) + "…"
	}

	label := labelStyle.Render("[" + n.Label + "]")
	meta := dimStyle.Render(fmt.Sprintf("%s %s", n.Attrs.Font, doctree.FontSizeName(n.Attrs.SizePt)))

	switch n.Role {
	case doctree.DocumentTitle, doctree.Heading1, doctree.Heading2, doctree.Heading3, doctree.Heading4:
		fmt.Printf("%s%s %s %s\n", indent, label, headingStyle.Render(text), meta)
	default:
		fmt.Printf("%s%s %s %s\n", indent, label, text, meta)
	}

	for _, c := range n.Children {
		printNode(c, depth+1)
	}
}

func loadDocument(path string) (*parser.Document, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f, path)
}
