package main

import "fmt"

// Run executes the sections command: list the configured forum
// sections.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	for _, sec := range deps.Config.Sections {
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", sec.Name, sec.Path)
	}
	return nil
}
