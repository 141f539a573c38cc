package services

import "github.com/yukikurage/collab-projects-api/internal/models"

// Authorization predicates. They only look at ownership and never touch the
// entity, so callers can evaluate them before applying any input.

func CanEditProject(actorID uint64, project models.Project) bool {
	return project.CreatorID == actorID
}

func CanDeleteProject(actorID uint64, project models.Project) bool {
	return project.CreatorID == actorID
}

// CanResolveCollaboration reports whether the actor may accept or reject
// requests addressed to project.
func CanResolveCollaboration(actorID uint64, project models.Project) bool {
	return project.CreatorID == actorID
}

func CanCancelCollaboration(actorID uint64, collab models.Collaboration) bool {
	return collab.UserID == actorID
}

func CanViewCollaboration(actorID uint64, collab models.Collaboration, project models.Project) bool {
	return collab.UserID == actorID || project.CreatorID == actorID
}

func CanEditComment(actorID uint64, comment models.Comment) bool {
	return comment.UserID == actorID
}

// CanDeleteComment allows the author and the creator of the commented project.
func CanDeleteComment(actorID uint64, comment models.Comment, project models.Project) bool {
	return comment.UserID == actorID || project.CreatorID == actorID
}
