package github

// ContentItem is one entry of a contents API listing.
type ContentItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file" or "dir"
	Size        int    `json:"size"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// IsDir reports whether the item is a directory.
func (c ContentItem) IsDir() bool { return c.Type == "dir" }
