package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/arjunvs/scmdiff/cmd/ui"
	"github.com/arjunvs/scmdiff/pkg/diff"
	"github.com/arjunvs/scmdiff/pkg/repository/scpath"
)

// renderStatus prints one line per changed path, sorted for stable output,
// followed by an error table when showErrors is set and errors occurred.
func renderStatus(status *diff.ScmStatus, showErrors bool) {
	fmt.Println(ui.Header(" Diff Result "))

	if len(status.Entries) == 0 {
		fmt.Println(ui.InfoMessage("  No differences found."))
	} else {
		paths := make([]scpath.RelativePath, 0, len(status.Entries))
		for p := range status.Entries {
			paths = append(paths, p)
		}
		sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

		for _, p := range paths {
			fmt.Println(formatStatusLine(status.Entries[p], p.String()))
		}
	}

	if showErrors && len(status.Errors) > 0 {
		fmt.Println()
		renderErrorTable(status.Errors)
	}
}

// renderStat prints a one-row-per-status count summary instead of the full
// path listing, for callers that only want the shape of a diff.
func renderStat(status *diff.ScmStatus) {
	fmt.Println(ui.Header(" Diff Summary "))

	counts := map[diff.Status]int{}
	for _, s := range status.Entries {
		counts[s]++
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Status", "Count")
	for _, s := range []diff.Status{diff.Added, diff.Modified, diff.Removed, diff.Ignored} {
		if counts[s] > 0 {
			table.Append(s.String(), fmt.Sprintf("%d", counts[s]))
		}
	}
	table.Render()
}

func formatStatusLine(s diff.Status, path string) string {
	switch s {
	case diff.Added:
		return ui.FormatAdded(path)
	case diff.Modified:
		return ui.FormatModified(path)
	case diff.Removed:
		return ui.FormatDeleted(path)
	case diff.Ignored:
		return ui.FormatUntracked(path)
	default:
		return path
	}
}

func renderErrorTable(errs map[scpath.RelativePath]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Path", "Error")

	paths := make([]scpath.RelativePath, 0, len(errs))
	for p := range errs {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	for _, p := range paths {
		table.Append(p.String(), errs[p])
	}
	table.Render()
}
