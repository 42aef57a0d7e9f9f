package ai

import (
	"fmt"
	"strings"

	"github.com/ignatzorin/promptfolio-backend/internal/models"
)

// StorytellingSystemPrompt системная инструкция для генерации историй.
const StorytellingSystemPrompt = "You are a creative storytelling assistant. Generate engaging, well-structured content based on the user's prompt. Be creative, inspiring, and professional."

// DefaultTemplateID шаблон, который используется для неизвестных и пустых идентификаторов.
const DefaultTemplateID = "minimal-portfolio"

// Template стиль портфолио для промпта.
type Template struct {
	Name  string
	Style string
}

var templates = map[string]Template{
	"creative-portfolio": {
		Name:  "Creative Portfolio",
		Style: "Artistic, visual-focused, emphasizing design projects and creative work",
	},
	"developer-showcase": {
		Name:  "Developer Showcase",
		Style: "Technical, code-focused, highlighting programming projects and technical skills",
	},
	"minimal-portfolio": {
		Name:  "Minimal Portfolio",
		Style: "Clean, professional, concise presentation with focus on achievements",
	},
	"ai-gallery": {
		Name:  "AI Gallery",
		Style: "Modern, AI-focused, showcasing artificial intelligence and machine learning projects",
	},
}

// TemplateFor возвращает шаблон по идентификатору.
func TemplateFor(id string) Template {
	if t, ok := templates[id]; ok {
		return t
	}
	return templates[DefaultTemplateID]
}

// PortfolioPrompt входные данные для генерации секций портфолио.
type PortfolioPrompt struct {
	Language   string
	TemplateID string
	Bio        string
	Projects   []models.Project
	UserPrompt string
}

// BuildStorytellingMessages формирует диалог для генерации истории.
func BuildStorytellingMessages(prompt string) []Message {
	return []Message{
		{Role: "system", Content: StorytellingSystemPrompt},
		{Role: "user", Content: prompt},
	}
}

// BuildPortfolioMessages формирует системную инструкцию и пользовательский запрос.
func BuildPortfolioMessages(p PortfolioPrompt) []Message {
	tpl := TemplateFor(p.TemplateID)

	language := "English"
	if p.Language == "es" {
		language = "Spanish"
	}

	bio := strings.TrimSpace(p.Bio)
	if bio == "" {
		bio = "Professional"
	}

	system := fmt.Sprintf(`You are a professional portfolio generator. Create compelling portfolio content in %s.

Template style: %s
User background: %s
Recent projects: %s

Generate 4-6 portfolio sections with titles and rich content. Return ONLY valid JSON in this exact format:
{
  "sections": [
    {
      "section_type": "hero|about|skills|projects|experience|education|contact",
      "title": "Section Title",
      "content": "Rich markdown content with details, bullet points if needed"
    }
  ]
}`, language, tpl.Style, bio, formatProjects(p.Projects))

	user := strings.TrimSpace(p.UserPrompt)
	if user == "" {
		user = fmt.Sprintf("Create a %s portfolio showcasing my work and skills.", tpl.Name)
	}

	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func formatProjects(projects []models.Project) string {
	if len(projects) == 0 {
		return "None yet"
	}
	parts := make([]string, 0, len(projects))
	for _, p := range projects {
		parts = append(parts, p.Title+" - "+p.Description)
	}
	return strings.Join(parts, ", ")
}
