package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// page is the position of a command's doc page in the navigation
type page struct {
	title    string
	navOrder int
	parent   string
}

// map from the base Markdown file name to its page
var pages = map[string]page{
	"crossdome":         {"crossdome", 0, ""},
	"crossdome_rank":    {"rank", 0, "crossdome"},
	"crossdome_summary": {"summary", 1, "crossdome"},
	"crossdome_compare": {"compare", 2, "crossdome"},
}

// docsCmd writes the Markdown documentation of every command.
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Write Markdown documentation for the commands",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs"
		if len(args) > 0 {
			dir = args[0]
		}
		return makeDocs(dir)
	},
}

func init() {
	RootCmd.AddCommand(docsCmd)
}

// makeDocs parses the commands and outputs Markdown documentation files to dir
func makeDocs(dir string) error {
	RootCmd.DisableAutoGenTag = true
	return doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler)
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	p, ok := pages[docName(filename)]
	if !ok {
		return ""
	}
	if p.parent == "" {
		return fmt.Sprintf(rootPage, p.title, p.navOrder)
	}
	return fmt.Sprintf(childPage, p.title, p.parent, p.navOrder)
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	if base := docName(filename); base != "crossdome" {
		return base
	}
	return "/"
}

func docName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}
