package cmd

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/xkilldash9x/graft/internal/observability"
	"github.com/xkilldash9x/graft/pkg/dom"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// match is the JSON shape emitted per matched element.
type match struct {
	Tag     string   `json:"tag"`
	ID      string   `json:"id,omitempty"`
	Classes []string `json:"classes,omitempty"`
	Text    string   `json:"text,omitempty"`
}

var queryCmd = &cobra.Command{
	Use:   "query <file> <selector>",
	Short: "Print every element matching a CSS selector.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()

		doc, err := parseDocument(args[0], log)
		if err != nil {
			return err
		}

		sel, err := doc.QueryAllErr(args[1])
		if err != nil {
			return err
		}
		log.Debug("selector evaluated",
			zap.String("selector", args[1]),
			zap.Int("matches", sel.Len()))

		matches := make([]match, 0, sel.Len())
		sel.Each(func(n *dom.Node) {
			id, _ := n.Attr("id")
			classes, _ := n.Attr("class")
			matches = append(matches, match{
				Tag:     n.Tag(),
				ID:      id,
				Classes: strings.Fields(classes),
				Text:    excerpt(n.Text(), 80),
			})
		})

		return writeJSON(cmd, matches)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

// parseDocument loads an HTML file and marks it fully loaded: a local file
// has no subordinate resources left to fetch once it is read.
func parseDocument(path string, log *zap.Logger) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f, dom.WithLogger(log))
	if err != nil {
		return nil, err
	}
	doc.FinishLoad()
	return doc, nil
}

func excerpt(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}

func writeJSON(cmd *cobra.Command, v any) error {
	var (
		out []byte
		err error
	)
	if cfg.Output.Pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
