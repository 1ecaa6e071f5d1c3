package repositories

import (
	"testing"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsFollowDBTags(t *testing.T) {
	repo := NewResourceRepository(nil, MediaSchema)
	assert.Equal(t, []string{
		"id", "title", "slug", "summary", "content", "type", "featured", "status",
		"image_url", "image_public_id", "published_at", "created_at", "updated_at",
	}, repo.Columns())
}

func TestSelectBuilderUsesDefaultOrder(t *testing.T) {
	repo := NewResourceRepository(nil, TestimonialSchema)

	sql, args, err := repo.selectBuilder(Query{
		Filters: map[string]interface{}{"status": "approved"},
		Limit:   3,
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, full_name, email, content, rating, status, consent, created_at FROM testimonials WHERE status = $1 ORDER BY created_at DESC, id DESC LIMIT 3",
		sql)
	assert.Equal(t, []interface{}{"approved"}, args)
}

func TestSelectBuilderExplicitOrderAndOffset(t *testing.T) {
	repo := NewResourceRepository(nil, ResearchSchema)

	sql, _, err := repo.selectBuilder(Query{OrderBy: []string{"title ASC"}, Limit: 20, Offset: 40}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY title ASC LIMIT 20 OFFSET 40")
}

func TestSchemasNeverWriteIdentity(t *testing.T) {
	check := func(name string, values map[string]interface{}) {
		assert.NotContains(t, values, "id", name)
		assert.NotContains(t, values, "created_at", name)
	}
	check("programs", ProgramSchema.Values(&models.Program{}))
	check("team", TeamMemberSchema.Values(&models.TeamMember{}))
	check("media", MediaSchema.Values(&models.Media{}))
	check("about", AboutSectionSchema.Values(&models.AboutSection{}))

	assert.Equal(t, map[string]string{}, TeamMemberSchema.Values(&models.TeamMember{})["socials"])
	assert.Equal(t, []string{}, AboutSectionSchema.Values(&models.AboutSection{})["items"])
}
