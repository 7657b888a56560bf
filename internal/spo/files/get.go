package files

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Client is the part of the HTTP layer the get operation uses.
type Client interface {
	GetJSON(ctx context.Context, url string, out any) error
	GetString(ctx context.Context, url string) (string, error)
	Download(ctx context.Context, url, path string) error
}

// Get performs the single retrieval round-trip for a validated request and
// writes the result to out. File mode saves the raw bytes to the request path
// instead and confirms the saved location on out.
func Get(ctx context.Context, client Client, r *Request, out io.Writer) error {
	requestURL := BuildGetFileURL(r)

	switch r.Mode {
	case ModeFile:
		if err := client.Download(ctx, requestURL, r.Path); err != nil {
			return err
		}
		fmt.Fprintf(out, "File saved to %s\n", r.Path)
		return nil

	case ModeString:
		contents, err := client.GetString(ctx, requestURL)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, contents)
		return nil

	case ModeListItem:
		var properties map[string]any
		if err := client.GetJSON(ctx, requestURL, &properties); err != nil {
			return err
		}
		return printJSON(out, properties["ListItemAllFields"])

	default:
		var properties map[string]any
		if err := client.GetJSON(ctx, requestURL, &properties); err != nil {
			return err
		}
		return printJSON(out, properties)
	}
}

func printJSON(out io.Writer, data any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
