package files

import (
	"fmt"
	"net/url"
	"strings"
)

// escapeComponent percent-encodes a URL component the way the service
// expects: full query escaping, but spaces as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildGetFileURL maps a validated request to the REST endpoint URL.
//
// A file addressed by unique ID targets GetFileById; one addressed by
// server-relative URL targets GetFileByServerRelativePath with the encoded
// path supplied through the @f alias. The list-item expansion takes priority
// over the raw value stream; with no mode set the plain metadata endpoint is
// used. The @f parameter is introduced with '&' only when the list-item
// expansion has already opened the query string, otherwise with '?' — the
// service is sensitive to this exact precedence.
func BuildGetFileURL(r *Request) string {
	var b strings.Builder

	base := strings.TrimRight(r.WebURL, "/")
	if r.Locator.UniqueID != "" {
		fmt.Fprintf(&b, "%s/_api/web/GetFileById('%s')", base, escapeComponent(r.Locator.UniqueID))
	} else {
		fmt.Fprintf(&b, "%s/_api/web/GetFileByServerRelativePath(DecodedUrl=@f)", base)
	}

	switch r.Mode {
	case ModeListItem:
		b.WriteString("?$expand=ListItemAllFields")
	case ModeString, ModeFile:
		b.WriteString("/$value")
	}

	if r.Locator.ServerRelativeURL != "" {
		separator := "?"
		if r.Mode == ModeListItem {
			separator = "&"
		}
		fmt.Fprintf(&b, "%s@f='%s'", separator, escapeComponent(r.Locator.ServerRelativeURL))
	}

	return b.String()
}
