package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

func TestPermissionPredicates(t *testing.T) {
	project := models.Project{ID: 1, CreatorID: 10}
	collab := models.Collaboration{ID: 2, ProjectID: 1, UserID: 20}
	comment := models.Comment{ID: 3, ProjectID: 1, UserID: 30}

	assert.True(t, CanEditProject(10, project))
	assert.False(t, CanEditProject(20, project))
	assert.True(t, CanDeleteProject(10, project))
	assert.False(t, CanDeleteProject(30, project))

	assert.True(t, CanResolveCollaboration(10, project))
	assert.False(t, CanResolveCollaboration(20, project))

	assert.True(t, CanCancelCollaboration(20, collab))
	assert.False(t, CanCancelCollaboration(10, collab))

	assert.True(t, CanViewCollaboration(10, collab, project))
	assert.True(t, CanViewCollaboration(20, collab, project))
	assert.False(t, CanViewCollaboration(30, collab, project))

	assert.True(t, CanEditComment(30, comment))
	assert.False(t, CanEditComment(10, comment))

	assert.True(t, CanDeleteComment(30, comment, project))
	assert.True(t, CanDeleteComment(10, comment, project))
	assert.False(t, CanDeleteComment(20, comment, project))
}
