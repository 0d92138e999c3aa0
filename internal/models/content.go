package models

// Quote is a short reflection shown on the journal page
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// ResourceSection is a titled list on the resources page
type ResourceSection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}
