package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jdlint/internal/javadoc"
	"github.com/gnolang/jdlint/lint"
)

// tagsCmd prints the tags the javadoc-tags rule requires.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the required tags and their patterns",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}
		printTags(os.Stdout, engine.Tags())
	},
}

func printTags(w io.Writer, tags *javadoc.TagRules) {
	for _, rule := range tags.Rules() {
		fmt.Fprintf(w, "@%-10s %s\n", rule.Name, rule.Pattern())
	}
}
