package seedmodels

// SeedBadge is one badge catalog entry from the seed file.
type SeedBadge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}
