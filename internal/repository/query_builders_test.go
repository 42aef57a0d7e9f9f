package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/promptfolio-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildSectionsInsert(t *testing.T) {
	portfolioID := uuid.New()
	sections := []models.PortfolioSection{
		{PortfolioID: portfolioID, SectionType: "hero", Title: strPtr("Hi"), Content: strPtr("..."), OrderIndex: 0},
		{PortfolioID: portfolioID, SectionType: "about", Title: strPtr("About"), OrderIndex: 1},
		{PortfolioID: portfolioID, SectionType: "contact", ImageURL: strPtr("https://img/1.png"), OrderIndex: 2},
	}

	query, args, err := buildSectionsInsert(sections).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO portfolio_sections (portfolio_id,section_type,title,content,image_url,order_index,metadata)")
	assert.Contains(t, query, "($1,$2,$3,$4,$5,$6,$7)")
	assert.Contains(t, query, "($15,$16,$17,$18,$19,$20,$21)")
	assert.Contains(t, query, "RETURNING id, portfolio_id")
	require.Len(t, args, 21)

	// order_index каждой строки
	assert.Equal(t, 0, args[5])
	assert.Equal(t, 1, args[12])
	assert.Equal(t, 2, args[19])

	// metadata по умолчанию пустой объект
	assert.Equal(t, models.JSONMap{}, args[6])
}

func TestBuildRecentProjectsQuery(t *testing.T) {
	userID := uuid.New()

	query, args, err := buildRecentProjectsQuery(userID, 5).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM projects WHERE user_id = $1 ORDER BY created_at DESC LIMIT 5")
	// squirrel разворачивает driver.Valuer в sq.Eq, uuid приходит строкой
	assert.Equal(t, []interface{}{userID.String()}, args)
}

func TestBuildRecentProjectsQuery_DefaultLimit(t *testing.T) {
	query, _, err := buildRecentProjectsQuery(uuid.New(), 0).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "LIMIT 5")
}
