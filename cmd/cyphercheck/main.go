// Command cyphercheck parses a Cypher query and prints its AST, or, on
// request, its parse tree or the AST as JSON.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
