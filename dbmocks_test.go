package main

import (
	"math/rand"
	"net/http"
	"testing"

	mocket "github.com/Selvatico/go-mocket"
	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/models"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SetGlobalDB is a helper function to change the global DB used
// by the server.
func SetGlobalDB(db *gorm.DB) {
	globals.DB = db
}

// SetupDbMockCatcher registers custom DB drivers that support mocks
func SetupDbMockCatcher() *gorm.DB {
	// Register fake driver
	mocket.Catcher.Register()
	mocket.Catcher.Logging = false
	mockDb, _ := gorm.Open(mocket.DRIVER_NAME, "any_string")
	return mockDb
}

// SetupMockBadCommit configures the DB mock fail on transaction Commit().
func SetupMockBadCommit() {
	mocket.HookBadCommit = func() bool { return true }
}

// ClearMockBadCommit removes the bad commit hook
func ClearMockBadCommit() {
	mocket.HookBadCommit = nil
}

// withMockDB swaps the global DB for a mock during a test.
func withMockDB(t *testing.T) *gorm.DB {
	setup()
	mockDb := SetupDbMockCatcher()
	mocket.Catcher.Reset()
	orig := globals.DB
	SetGlobalDB(mockDb)
	t.Cleanup(func() {
		SetGlobalDB(orig)
		ClearMockBadCommit()
		mocket.Catcher.Reset()
	})
	return mockDb
}

func TestListingDBFailure(t *testing.T) {
	withMockDB(t)
	mocket.Catcher.NewMock().WithQuery(`FROM "models"`).WithQueryException()

	env := getEnvelope(t, "/search/list")
	assert.Equal(t, "500", env.Code)
	assert.Nil(t, env.Data)

	rec := request(t, http.MethodGet, "/api/models", nil)
	assert.GreaterOrEqual(t, rec.Code, http.StatusInternalServerError)
	assert.False(t, decodeDemoModel(t, rec).Success)
}

func TestListingWithoutDB(t *testing.T) {
	setup()
	orig := globals.DB
	SetGlobalDB(nil)
	defer SetGlobalDB(orig)

	env := getEnvelope(t, "/search/list")
	assert.Equal(t, "500", env.Code)
	assert.Nil(t, env.Data)
}

func TestPopulateBadCommit(t *testing.T) {
	mockDb := withMockDB(t)
	mocket.Catcher.NewMock().WithQuery(`SELECT count(*) FROM "models"`).
		WithRowsNum(1).WithReply([]map[string]interface{}{{"count": "0"}})
	SetupMockBadCommit()

	ctx := testContext()
	em := (&models.Service{}).Populate(ctx, mockDb, 3, globals.FileServerURL, rand.New(rand.NewSource(1)))
	require.NotNil(t, em)
	assert.Equal(t, gz.ErrorDbSave, em.ErrCode)
}
