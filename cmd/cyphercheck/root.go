package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cyphercheck [query]",
	Short: "Check a Cypher query against the supported grammar subset",
	Long: `cyphercheck parses a MATCH/WHERE/RETURN Cypher query and reports
whether it conforms to the supported grammar subset.

The query is taken from the first argument, or from stdin if no argument
is given.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCheck,
}

var checkFlags = struct {
	tree *bool
	json *bool
}{}

func init() {
	checkFlags.tree = rootCmd.Flags().Bool("tree", false, "print the concrete parse tree")
	checkFlags.json = rootCmd.Flags().Bool("json", false, "print the parsed AST as JSON")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
