package slack

// File represents a Slack file attachment metadata
type File struct {
	id                 string
	name               string
	mimetype           string
	filetype           string
	size               int
	urlPrivate         string
	urlPrivateDownload string
}

// fileData is the wire shape of a file attachment in the Events API payload
type fileData struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Mimetype           string `json:"mimetype"`
	Filetype           string `json:"filetype"`
	Size               int    `json:"size"`
	URLPrivate         string `json:"url_private"`
	URLPrivateDownload string `json:"url_private_download"`
}

// NewFileFromData creates a File from raw data
func NewFileFromData(id, name, mimetype, filetype string, size int, urlPrivate, urlPrivateDownload string) File {
	return File{
		id:                 id,
		name:               name,
		mimetype:           mimetype,
		filetype:           filetype,
		size:               size,
		urlPrivate:         urlPrivate,
		urlPrivateDownload: urlPrivateDownload,
	}
}

// Getters
func (f File) ID() string       { return f.id }
func (f File) Name() string     { return f.name }
func (f File) Mimetype() string { return f.mimetype }
func (f File) Filetype() string { return f.filetype }
func (f File) Size() int        { return f.size }
func (f File) URLPrivate() string {
	return f.urlPrivate
}

// DownloadURL returns the best URL for fetching the file content.
// Slack sets url_private_download only for downloadable files; fall back
// to url_private otherwise.
func (f File) DownloadURL() string {
	if f.urlPrivateDownload != "" {
		return f.urlPrivateDownload
	}
	return f.urlPrivate
}
