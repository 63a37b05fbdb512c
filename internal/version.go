package internal

import (
	"fmt"
	"runtime"
)

// Version contains version and Git commit information.
//
// The placeholders are replaced on `git archive` using the `export-subst` attribute.
var Version = version{Version: "0.1.0", Commit: "$Format:%H$"}

type version struct {
	Version string
	Commit  string
}

// Print writes verbose version output to stdout.
func (v version) Print(name string) {
	fmt.Println(name, "version:", v.Version)
	fmt.Println()
	fmt.Println("Build information:")
	fmt.Printf("  Go version: %s (%s, %s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if v.Commit != "" && v.Commit[0] != '$' {
		fmt.Println("  Git commit:", v.Commit)
	}
}
