package main

import (
	"os"

	"github.com/open-cli-collective/sitegen-cli/internal/cmd/root"
	"github.com/open-cli-collective/sitegen-cli/internal/view"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		renderer := view.NewRenderer(view.FormatPlain, false)
		renderer.SetWriter(os.Stderr)
		renderer.Error(err.Error())
		os.Exit(1)
	}
}
