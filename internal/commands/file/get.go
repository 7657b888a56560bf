package file

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AD7six/spfile/internal/config"
	"github.com/AD7six/spfile/internal/httpclient"
	"github.com/AD7six/spfile/internal/logging"
	"github.com/AD7six/spfile/internal/spo/files"
)

var (
	webURL     string
	fileID     string
	fileURL    string
	asString   bool
	asListItem bool
	asFile     bool
	destPath   string
)

func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieve a file by unique ID or server-relative URL",
		Long: `Retrieves a file from the specified site. By default the file's metadata is
printed; use --asString for the contents as text, --asListItem for the list
item backing the file, or --asFile with --path to save the file locally.`,
		Run: runGet,
	}

	cmd.Flags().StringVar(&webURL, "webUrl", "", "URL of the site where the file is located")
	cmd.Flags().StringVar(&fileID, "id", "", "Unique ID (GUID) of the file; specify id or url but not both")
	cmd.Flags().StringVar(&fileURL, "url", "", "Server-relative URL of the file; specify id or url but not both")
	cmd.Flags().BoolVar(&asString, "asString", false, "Retrieve the file contents as text")
	cmd.Flags().BoolVar(&asListItem, "asListItem", false, "Retrieve the underlying list item")
	cmd.Flags().BoolVar(&asFile, "asFile", false, "Save the file to the location specified by --path")
	cmd.Flags().StringVar(&destPath, "path", "", "Local path where the file should be saved; required with --asFile")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) {
	opts := files.GetOptions{
		WebURL:     webURL,
		ID:         fileID,
		URL:        fileURL,
		AsString:   asString,
		AsListItem: asListItem,
		AsFile:     asFile,
		Path:       destPath,
	}

	request, err := opts.Validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.InitLogger(settings.LogLevel)

	client := httpclient.GetClient(settings)
	if err := files.Get(cmd.Context(), client, request, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
