package category

import (
	"context"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	db.AutoMigrate(&Category{})
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "机器人", Label("robot"))
	assert.Equal(t, "家具", Label("furniture"))
	assert.Equal(t, "spaceship", Label("spaceship"), "unknown codes pass through")
	assert.True(t, IsKnown(" vehicle "))
	assert.False(t, IsKnown("spaceship"))
}

func TestDefaults(t *testing.T) {
	cats := Defaults()
	require.Len(t, cats, len(Codes))
	assert.Equal(t, Codes, CodesOf(cats))
	for _, c := range cats {
		assert.Equal(t, *c.Code, *c.Slug)
		assert.Equal(t, Labels[*c.Code], *c.Label)
	}
}

func TestServiceSeedAndList(t *testing.T) {
	db := openTestDB(t)
	cs := &Service{}
	ctx := context.Background()

	require.Nil(t, cs.Seed(ctx, db))
	// Seeding twice does not duplicate.
	require.Nil(t, cs.Seed(ctx, db))

	cats, em := cs.List(db)
	require.Nil(t, em)
	assert.Equal(t, Codes, CodesOf(*cats))

	c, err := ByCode(db, "architecture")
	require.NoError(t, err)
	assert.Equal(t, "建筑", *c.Label)

	c, err = BySlug(db, "character")
	require.NoError(t, err)
	assert.Equal(t, "角色", *c.Label)

	_, err = ByCode(db, "spaceship")
	assert.Error(t, err)
}
