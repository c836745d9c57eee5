package apidocs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPublishedDocument(t *testing.T) {
	path, ok := Locate("../../../")
	require.True(t, ok, "openapi document not found")

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "GymFox plan console API", doc.Info.Title)

	ops := Operations(doc)
	assert.Contains(t, ops, "GET /admin/api/plans")
	assert.Contains(t, ops, "PUT /admin/api/plans/:id/overrides/:branch")
	assert.Contains(t, ops, "POST /admin/api/plans/:id/overrides/:branch/toggle")
}

func TestLoadMissingDocument(t *testing.T) {
	_, err := Load(context.Background(), "does-not-exist.yml")
	assert.Error(t, err)

	_, ok := Locate("/nonexistent/")
	assert.False(t, ok)
}

func TestFiberPath(t *testing.T) {
	assert.Equal(t, "/plans/:id/overrides/:branch", fiberPath("/plans/{id}/overrides/{branch}"))
	assert.Equal(t, "/plans", fiberPath("/plans/"))
	assert.Equal(t, "/", fiberPath("/"))
}
