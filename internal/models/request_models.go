package models

type ListRequest struct {
	Items []string `json:"items"`
}

type ScrapeRequest struct {
	URL string `json:"url" binding:"required"`
}
