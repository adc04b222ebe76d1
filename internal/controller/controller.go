package controller

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/amos-lsl/sentry/internal/ingest"
	"github.com/amos-lsl/sentry/internal/model"
	"github.com/amos-lsl/sentry/internal/tagstore"
)

// TagController exposes HTTP handlers for the tag store and the ingestion
// sidecar.
type TagController interface {
	GetTagKeys(c *fiber.Ctx) error
	GetTagKey(c *fiber.Ctx) error
	GetTagValues(c *fiber.Ctx) error
	GetTagValue(c *fiber.Ctx) error

	GetGroupTagKeys(c *fiber.Ctx) error
	GetGroupTagKey(c *fiber.Ctx) error
	GetGroupTagValues(c *fiber.Ctx) error
	GetGroupTagValue(c *fiber.Ctx) error
	GetTopGroupTagValues(c *fiber.Ctx) error
	GetGroupTagValueCount(c *fiber.Ctx) error

	GetGroupListTagValue(c *fiber.Ctx) error
	GetGroupsUserCounts(c *fiber.Ctx) error

	GetFirstRelease(c *fiber.Ctx) error
	GetLastRelease(c *fiber.Ctx) error
	GetReleaseTags(c *fiber.Ctx) error

	GetGroupEventIDs(c *fiber.Ctx) error
	GetGroupIDsForUsers(c *fiber.Ctx) error
	GetGroupTagValuesForUsers(c *fiber.Ctx) error
	GetGroupIDsForSearchFilter(c *fiber.Ctx) error

	CreateEvent(c *fiber.Ctx) error
}

type tagController struct {
	store           tagstore.Store
	worker          ingest.BatchWorker
	now             func() time.Time
	futureTolerance time.Duration
}

// NewTagController builds a TagController.
func NewTagController(store tagstore.Store, worker ingest.BatchWorker, futureTolerance time.Duration) TagController {
	return &tagController{
		store:           store,
		worker:          worker,
		now:             time.Now,
		futureTolerance: futureTolerance,
	}
}

// httpError translates store failures into HTTP statuses. Not-found
// sentinels become 404, the unsupported operation 501, everything else 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, tagstore.ErrTagKeyNotFound),
		errors.Is(err, tagstore.ErrGroupTagKeyNotFound),
		errors.Is(err, tagstore.ErrTagValueNotFound),
		errors.Is(err, tagstore.ErrGroupTagValueNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, tagstore.ErrNotImplemented):
		return fiber.NewError(fiber.StatusNotImplemented, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "query failed")
	}
}

func (h *tagController) GetTagKeys(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return err
	}

	keys, svcErr := h.store.GetTagKeys(c.Context(), projectID, environmentID)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(keys)
}

func (h *tagController) GetTagKey(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return err
	}

	key, svcErr := h.store.GetTagKey(c.Context(), projectID, environmentID, tagKeyParam(c))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(key)
}

func (h *tagController) GetTagValues(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return err
	}

	values, svcErr := h.store.GetTagValues(c.Context(), projectID, environmentID, tagKeyParam(c))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(values)
}

func (h *tagController) GetTagValue(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return err
	}
	value := c.Query("value")
	if value == "" {
		return fiber.NewError(fiber.StatusBadRequest, "value is required")
	}

	record, svcErr := h.store.GetTagValue(c.Context(), projectID, environmentID, tagKeyParam(c), value)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(record)
}

func (h *tagController) GetGroupTagKeys(c *fiber.Ctx) error {
	scope, err := groupScope(c)
	if err != nil {
		return err
	}

	keys, svcErr := h.store.GetGroupTagKeys(c.Context(), scope.projectID, scope.groupID, scope.environmentID, c.QueryInt("limit"))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(keys)
}

func (h *tagController) GetGroupTagKey(c *fiber.Ctx) error {
	scope, err := groupScope(c)
	if err != nil {
		return err
	}

	key, svcErr := h.store.GetGroupTagKey(c.Context(), scope.projectID, scope.groupID, scope.environmentID, tagKeyParam(c))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(key)
}

func (h *tagController) GetGroupTagValues(c *fiber.Ctx) error {
	scope, err := groupScope(c)
	if err != nil {
		return err
	}

	values, svcErr := h.store.GetGroupTagValues(c.Context(), scope.projectID, scope.groupID, scope.environmentID, tagKeyParam(c))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(values)
}

func (h *tagController) GetGroupTagValue(c *fiber.Ctx) error {
	scope, err := groupScope(c)
	if err != nil {
		return err
	}
	value := c.Query("value")
	if value == "" {
		return fiber.NewError(fiber.StatusBadRequest, "value is required")
	}

	record, svcErr := h.store.GetGroupTagValue(c.Context(), scope.projectID, scope.groupID, scope.environmentID, tagKeyParam(c), value)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(record)
}

func (h *tagController) GetTopGroupTagValues(c *fiber.Ctx) error {
	scope, err := groupScope(c)
	if err != nil {
		return err
	}

	values, svcErr := h.store.GetTopGroupTagValues(c.Context(), scope.projectID, scope.groupID, scope.environmentID, tagKeyParam(c), c.QueryInt("limit"))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(values)
}

func (h *tagController) GetGroupTagValueCount(c *fiber.Ctx) error {
	scope, err := groupScope(c)
	if err != nil {
		return err
	}

	count, svcErr := h.store.GetGroupTagValueCount(c.Context(), scope.projectID, scope.groupID, scope.environmentID, tagKeyParam(c))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *tagController) GetGroupListTagValue(c *fiber.Ctx) error {
	projectID, err := queryID(c, "project")
	if err != nil {
		return err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return err
	}
	groupIDs, err := queryIDList(c, "issues")
	if err != nil {
		return err
	}
	key := c.Query("key")
	value := c.Query("value")
	if key == "" || value == "" {
		return fiber.NewError(fiber.StatusBadRequest, "key and value are required")
	}

	records, svcErr := h.store.GetGroupListTagValue(c.Context(), projectID, groupIDs, environmentID, key, value)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(records)
}

func (h *tagController) GetGroupsUserCounts(c *fiber.Ctx) error {
	projectID, err := queryID(c, "project")
	if err != nil {
		return err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return err
	}
	groupIDs, err := queryIDList(c, "issues")
	if err != nil {
		return err
	}

	counts, svcErr := h.store.GetGroupsUserCounts(c.Context(), projectID, groupIDs, environmentID)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(counts)
}

func (h *tagController) GetFirstRelease(c *fiber.Ctx) error {
	return h.getRelease(c, true)
}

func (h *tagController) GetLastRelease(c *fiber.Ctx) error {
	return h.getRelease(c, false)
}

func (h *tagController) getRelease(c *fiber.Ctx, first bool) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return err
	}
	var groupID *int64
	if raw := c.Query("issue"); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid issue id")
		}
		groupID = &id
	}

	var (
		release string
		ok      bool
		svcErr  error
	)
	if first {
		release, ok, svcErr = h.store.GetFirstRelease(c.Context(), projectID, groupID)
	} else {
		release, ok, svcErr = h.store.GetLastRelease(c.Context(), projectID, groupID)
	}
	if svcErr != nil {
		return httpError(svcErr)
	}
	if !ok {
		return c.JSON(fiber.Map{"release": nil})
	}
	return c.JSON(fiber.Map{"release": release})
}

func (h *tagController) GetReleaseTags(c *fiber.Ctx) error {
	projectIDs, err := queryIDList(c, "projects")
	if err != nil {
		return err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return err
	}
	versions := splitList(c.Query("versions"))
	if len(versions) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "versions is required")
	}

	records, svcErr := h.store.GetReleaseTags(c.Context(), projectIDs, environmentID, versions)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(records)
}

type eventIDsRequest struct {
	Environment int64             `json:"environment"`
	Tags        map[string]string `json:"tags"`
}

func (h *tagController) GetGroupEventIDs(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return err
	}
	var req eventIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}
	if len(req.Tags) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "tags is required")
	}

	ids, svcErr := h.store.GetGroupEventIDs(c.Context(), projectID, req.Environment, req.Tags)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(fiber.Map{"event_ids": ids})
}

type usersRequest struct {
	ProjectIDs []int64           `json:"project_ids"`
	Users      []model.EventUser `json:"users"`
	Limit      int               `json:"limit"`
}

func (h *tagController) GetGroupIDsForUsers(c *fiber.Ctx) error {
	var req usersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	ids, svcErr := h.store.GetGroupIDsForUsers(c.Context(), req.ProjectIDs, req.Users, req.Limit)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(fiber.Map{"group_ids": ids})
}

func (h *tagController) GetGroupTagValuesForUsers(c *fiber.Ctx) error {
	var req usersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	records, svcErr := h.store.GetGroupTagValuesForUsers(c.Context(), req.Users, req.Limit)
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(records)
}

func (h *tagController) GetGroupIDsForSearchFilter(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return err
	}
	var req eventIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	ids, svcErr := h.store.GetGroupIDsForSearchFilter(c.Context(), projectID, req.Environment, req.Tags, c.QueryInt("limit"))
	if svcErr != nil {
		return httpError(svcErr)
	}
	return c.JSON(fiber.Map{"group_ids": ids})
}

// CreateEvent accepts single event payloads for the ingestion sidecar.
func (h *tagController) CreateEvent(c *fiber.Ctx) error {
	var req model.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	event, err := ingest.BuildEvent(req, h.now(), h.futureTolerance)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.worker.Enqueue(event)
	return c.SendStatus(fiber.StatusAccepted)
}

type issueScope struct {
	projectID     int64
	groupID       int64
	environmentID int64
}

func groupScope(c *fiber.Ctx) (issueScope, error) {
	groupID, err := paramID(c, "groupID")
	if err != nil {
		return issueScope{}, err
	}
	projectID, err := queryID(c, "project")
	if err != nil {
		return issueScope{}, err
	}
	environmentID, err := queryID(c, "environment")
	if err != nil {
		return issueScope{}, err
	}
	return issueScope{projectID: projectID, groupID: groupID, environmentID: environmentID}, nil
}

func tagKeyParam(c *fiber.Ctx) string {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil || key == "" {
		return c.Params("key")
	}
	return key
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func queryID(c *fiber.Ctx, name string) (int64, error) {
	raw := utils.Trim(c.Query(name), ' ')
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func queryIDList(c *fiber.Ctx, name string) ([]int64, error) {
	parts := splitList(c.Query(name))
	if len(parts) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	ids := make([]int64, len(parts))
	for i, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
		}
		ids[i] = id
	}
	return ids, nil
}

func splitList(raw string) []string {
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if part = utils.Trim(part, ' '); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
