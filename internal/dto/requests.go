package dto

// StorytellingRequest тело POST /functions/v1/ai-storytelling.
type StorytellingRequest struct {
	Prompt    string `json:"prompt"`
	SaveStory bool   `json:"saveStory"`
	Title     string `json:"title"`
	Stream    bool   `json:"stream"`
	IsPublic  bool   `json:"isPublic"`
}

// GeneratePortfolioRequest тело POST /functions/v1/generate-portfolio.
// Images[i] становится изображением секции с индексом i.
type GeneratePortfolioRequest struct {
	PortfolioID string   `json:"portfolioId"`
	Prompt      string   `json:"prompt"`
	TemplateID  string   `json:"templateId"`
	Language    string   `json:"language"`
	Images      []string `json:"images"`
}

// GitHubImportRequest тело POST /functions/v1/github-import.
// Пустой список означает импорт всех репозиториев.
type GitHubImportRequest struct {
	RepoIDs []int64 `json:"repoIds"`
}
