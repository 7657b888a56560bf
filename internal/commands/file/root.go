package file

import (
	"github.com/spf13/cobra"
)

func NewFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Work with SharePoint files",
	}

	cmd.AddCommand(NewGetCmd())

	return cmd
}
