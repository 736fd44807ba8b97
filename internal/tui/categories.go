package tui

type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

var Categories = []Category{
	{ID: "filter", Name: "Filter", Description: "Default extensions and process-all", Icon: ""},
	{ID: "remote", Name: "Remote", Description: "Proxy used for GitHub downloads", Icon: ""},
	{ID: "fetch", Name: "Fetch", Description: "Timeout, retries, stealth and size limit", Icon: ""},
	{ID: "archive", Name: "Archive", Description: "Per-file size limit", Icon: ""},
	{ID: "cache", Name: "Cache", Description: "Archive cache and TTL", Icon: ""},
	{ID: "concurrency", Name: "Concurrency", Description: "Decode workers", Icon: ""},
	{ID: "output", Name: "Output", Description: "Output directory and metadata", Icon: ""},
	{ID: "logging", Name: "Logging", Description: "Log level and format", Icon: ""},
}

func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
