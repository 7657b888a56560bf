package main

import (
	"github.com/AD7six/spfile/internal/commands/config"
	"github.com/AD7six/spfile/internal/commands/file"
	"github.com/AD7six/spfile/internal/commands/version"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "spfile",
		Short: "SharePoint file retrieval CLI",
	}

	root.AddCommand(file.NewFileCmd())
	root.AddCommand(config.NewConfigCmd())
	root.AddCommand(version.NewVersionCmd())

	cobra.CheckErr(root.Execute())
}
