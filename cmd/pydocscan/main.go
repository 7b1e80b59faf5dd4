// Package main provides the entry point for the pydocscan CLI.
//
// pydocscan scrapes docs.python.org and peps.python.org. Each invocation
// runs one mode:
//
//	pydocscan whats-new         list the "What's New" articles
//	pydocscan latest-versions   list the documentation versions
//	pydocscan download          save the A4 PDF documentation archive
//	pydocscan pep               count PEPs per status
//
// See --help for all available options.
package main

// main is the entry point for pydocscan.
func main() {
	Execute()
}
