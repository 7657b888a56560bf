package files

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AD7six/spfile/internal/storage"
)

// RetrievalMode selects what the get operation returns.
type RetrievalMode int

const (
	// ModeMetadata returns the full file properties object (the default).
	ModeMetadata RetrievalMode = iota
	// ModeString returns the file contents as text.
	ModeString
	// ModeListItem returns the list item backing the file.
	ModeListItem
	// ModeFile saves the raw file bytes to a local path.
	ModeFile
)

// Locator addresses a file either by its unique ID or by its server-relative
// URL. Exactly one field is set after validation.
type Locator struct {
	UniqueID          string // GUID assigned by the service
	ServerRelativeURL string // path relative to the site collection root
}

// Request is a validated retrieval request. The mode is fixed here so nothing
// downstream re-checks flag combinations.
type Request struct {
	WebURL  string
	Locator Locator
	Mode    RetrievalMode
	Path    string // destination path, set for ModeFile
}

// GetOptions are the raw flag values for the file get command.
type GetOptions struct {
	WebURL     string
	ID         string
	URL        string
	AsString   bool
	AsListItem bool
	AsFile     bool
	Path       string
}

var validate = validator.New()

// Validate checks the option combination rules and returns the validated
// request. All failures are reported before any network call is made.
func (o GetOptions) Validate() (*Request, error) {
	if err := validate.Var(o.WebURL, "required,url"); err != nil {
		return nil, fmt.Errorf("%q is not a valid SharePoint site URL", o.WebURL)
	}
	if u, err := url.Parse(o.WebURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%q is not a valid SharePoint site URL", o.WebURL)
	}

	if o.ID == "" && o.URL == "" {
		return nil, errors.New("specify id or url, one is required")
	}
	if o.ID != "" && o.URL != "" {
		return nil, errors.New("specify id or url, but not both")
	}
	if o.ID != "" {
		if _, err := uuid.Parse(o.ID); err != nil {
			return nil, fmt.Errorf("%q is not a valid GUID", o.ID)
		}
	}

	set := 0
	for _, flag := range []bool{o.AsString, o.AsListItem, o.AsFile} {
		if flag {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("specify at most one of asString, asListItem or asFile")
	}

	mode := ModeMetadata
	switch {
	case o.AsListItem:
		mode = ModeListItem
	case o.AsString:
		mode = ModeString
	case o.AsFile:
		mode = ModeFile
	}

	if mode == ModeFile && o.Path == "" {
		return nil, errors.New("path is required when asFile is specified")
	}
	if o.Path != "" {
		if dir := filepath.Dir(o.Path); !storage.DirExists(dir) {
			return nil, fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	return &Request{
		WebURL: o.WebURL,
		Locator: Locator{
			UniqueID:          o.ID,
			ServerRelativeURL: o.URL,
		},
		Mode: mode,
		Path: o.Path,
	}, nil
}
