package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvitucci/parcygo/cypher"
	"github.com/nvitucci/parcygo/driver/parser"
)

const defaultQuery = `MATCH (n:Person)-[r:KNOWS]->(m:Person) WHERE n.age >= 30 RETURN n.name, m.name ORDER BY n.name LIMIT 10`

func runCheck(cmd *cobra.Command, args []string) error {
	query, err := readQuery(args)
	if err != nil {
		return err
	}

	if *checkFlags.tree {
		tree, err := cypher.ParseTree(query)
		if err != nil {
			return err
		}
		printTree(os.Stdout, tree, 0)
		return nil
	}

	q, err := cypher.Parse(query)
	if err != nil {
		return err
	}

	if *checkFlags.json {
		b, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(b))
		return nil
	}

	fmt.Fprintf(os.Stdout, "%#v\n", *q)
	return nil
}

func readQuery(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		return defaultQuery, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(b)) == "" {
		return defaultQuery, nil
	}
	return string(b), nil
}

func printTree(w io.Writer, n *parser.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Fprintf(w, "%v%q\n", indent, n.Text)
		return
	}
	fmt.Fprintf(w, "%v%v\n", indent, n.Rule)
	for _, c := range n.Children {
		printTree(w, c, depth+1)
	}
}
