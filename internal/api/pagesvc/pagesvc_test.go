package pagesvc_test

import (
	"context"
	"testing"

	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"
	"orfanato-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countSections(t *testing.T, db *gorm.DB, pageID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&pages.ImageSection{}).Where("page_id = ?", pageID).Count(&n).Error)
	return n
}

// Sections removed inside the transaction must stay removed even though the
// page value still holds them in memory.
func TestRouteColumnUpdatesLeaveLoadedSectionsAlone(t *testing.T) {
	db := testutil.NewDB(t)
	deps := testutil.NewDeps(db, &testutil.FakeStorage{})
	ctx := context.Background()

	page := pages.ImagePage{Name: "Festa Junina", Public: true}
	require.NoError(t, db.Create(&page).Error)
	require.NoError(t, db.Create(&pages.ImageSection{PageID: page.ID, Caption: "a", Public: true}).Error)
	require.NoError(t, db.Create(&pages.ImageSection{PageID: page.ID, Caption: "b", Public: true, SortIndex: 1}).Error)

	var loaded pages.ImagePage
	require.NoError(t, db.Preload("Sections").First(&loaded, "id = ?", page.ID).Error)
	require.Len(t, loaded.Sections, 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", loaded.ID).Delete(&pages.ImageSection{}).Error; err != nil {
			return err
		}
		_, err := deps.AttachRoute(ctx, tx, &loaded, route.Attach{
			Title: loaded.Name, Prefix: "galeria_", Type: route.TypePage,
			EntityType: pages.EntityImagePage, EntityID: loaded.ID, Public: true,
		})
		return err
	})
	require.NoError(t, err)
	assert.Zero(t, countSections(t, db, page.ID))

	var stored pages.ImagePage
	require.NoError(t, db.First(&stored, "id = ?", page.ID).Error)
	require.NotNil(t, stored.RouteID)

	require.NoError(t, db.Create(&pages.ImageSection{PageID: page.ID, Caption: "c", Public: true}).Error)
	require.NoError(t, db.Preload("Sections").First(&loaded, "id = ?", page.ID).Error)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", loaded.ID).Delete(&pages.ImageSection{}).Error; err != nil {
			return err
		}
		return deps.DetachRoute(ctx, tx, &loaded, loaded.RouteID, pages.EntityImagePage, loaded.ID)
	})
	require.NoError(t, err)
	assert.Zero(t, countSections(t, db, page.ID))

	var routes int64
	require.NoError(t, db.Model(&route.Route{}).Count(&routes).Error)
	assert.Zero(t, routes)
}
