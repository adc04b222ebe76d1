package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amos-lsl/sentry/internal/controller"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, tagController controller.TagController) {
	api := app.Group("/api")

	projects := api.Group("/projects/:projectID")
	projects.Get("/tags", tagController.GetTagKeys)
	projects.Get("/tags/:key", tagController.GetTagKey)
	projects.Get("/tags/:key/values", tagController.GetTagValues)
	projects.Get("/tags/:key/value", tagController.GetTagValue)
	projects.Get("/releases/first", tagController.GetFirstRelease)
	projects.Get("/releases/last", tagController.GetLastRelease)
	projects.Post("/event-ids", tagController.GetGroupEventIDs)
	projects.Post("/search-filter", tagController.GetGroupIDsForSearchFilter)

	issues := api.Group("/issues")
	issues.Get("/tag-value", tagController.GetGroupListTagValue)
	issues.Get("/user-counts", tagController.GetGroupsUserCounts)
	issues.Get("/:groupID/tags", tagController.GetGroupTagKeys)
	issues.Get("/:groupID/tags/:key", tagController.GetGroupTagKey)
	issues.Get("/:groupID/tags/:key/values", tagController.GetGroupTagValues)
	issues.Get("/:groupID/tags/:key/value", tagController.GetGroupTagValue)
	issues.Get("/:groupID/tags/:key/values/top", tagController.GetTopGroupTagValues)
	issues.Get("/:groupID/tags/:key/count", tagController.GetGroupTagValueCount)

	api.Get("/releases/tags", tagController.GetReleaseTags)
	api.Post("/users/issues", tagController.GetGroupIDsForUsers)
	api.Post("/users/tag-values", tagController.GetGroupTagValuesForUsers)

	app.Post("/events", tagController.CreateEvent)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
