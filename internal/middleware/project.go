package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/collab-projects-api/internal/errors"
	"github.com/yukikurage/collab-projects-api/internal/logger"
	"github.com/yukikurage/collab-projects-api/internal/services"
)

const contextKeyProject = "project"

// RequireProject loads the project named by the :id parameter, with its
// counters, and stores it in the context
func RequireProject(projectService *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			return
		}

		project, err := projectService.GetProject(projectID)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				apierrors.NotFound(c, "Project not found")
				return
			}
			logger.Error().Err(err).Uint64("project_id", projectID).Msg("failed to load project")
			apierrors.InternalError(c, "")
			return
		}

		c.Set(contextKeyProject, *project)
		c.Next()
	}
}

// GetProject retrieves the project stored by RequireProject
func GetProject(c *gin.Context) (services.ProjectWithStats, bool) {
	value, exists := c.Get(contextKeyProject)
	if !exists {
		return services.ProjectWithStats{}, false
	}
	project, ok := value.(services.ProjectWithStats)
	return project, ok
}

// SetProject stores a project in the context the way RequireProject does
func SetProject(c *gin.Context, project services.ProjectWithStats) {
	c.Set(contextKeyProject, project)
}
