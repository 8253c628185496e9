// Package catalog resolves free-text queries to normalized book records
// from the Google Books volumes API.
package catalog

// Item is one search result, normalized: every optional field the API
// may omit is substituted from the default table in normalize, so
// downstream code never sees a half-empty record.
type Item struct {
	ID            string
	Title         string
	Authors       []string
	Description   string
	Thumbnail     string
	Categories    []string
	Publisher     string
	PublishedDate string
	PageCount     int
	Language      string
	PreviewLink   string
}

// volumesResponse matches the volumes endpoint payload. Only the fields
// the normalizer reads are declared.
type volumesResponse struct {
	Items []struct {
		ID         string     `json:"id"`
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	PageCount     int      `json:"pageCount"`
	Language      string   `json:"language"`
	PreviewLink   string   `json:"previewLink"`
	ImageLinks    struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// normalize converts a raw volume into an Item. This is the single place
// defaults are decided; keep the table exhaustive.
func normalize(id string, v volumeInfo) Item {
	item := Item{
		ID:            id,
		Title:         v.Title,
		Authors:       v.Authors,
		Description:   v.Description,
		Thumbnail:     v.ImageLinks.Thumbnail,
		Categories:    v.Categories,
		Publisher:     v.Publisher,
		PublishedDate: v.PublishedDate,
		PageCount:     v.PageCount,
		Language:      v.Language,
		PreviewLink:   v.PreviewLink,
	}
	if item.Title == "" {
		item.Title = "Unknown Title"
	}
	if len(item.Authors) == 0 {
		item.Authors = []string{"Unknown Author"}
	}
	if item.Description == "" {
		item.Description = "No description available"
	}
	if item.Categories == nil {
		item.Categories = []string{}
	}
	if item.Publisher == "" {
		item.Publisher = "Unknown Publisher"
	}
	if item.PublishedDate == "" {
		item.PublishedDate = "Unknown Date"
	}
	if item.PageCount < 0 {
		item.PageCount = 0
	}
	if item.Language == "" {
		item.Language = "unknown"
	}
	return item
}
