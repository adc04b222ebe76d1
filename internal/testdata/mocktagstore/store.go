package mocktagstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amos-lsl/sentry/internal/model"
	"github.com/amos-lsl/sentry/internal/tagstore"
)

type Store struct {
	mock.Mock
}

// Interface compliance check
var _ tagstore.Store = &Store{}

func (m *Store) GetTagKey(ctx context.Context, projectID, environmentID int64, key string) (model.TagKey, error) {
	args := m.Called(ctx, projectID, environmentID, key)
	return args.Get(0).(model.TagKey), args.Error(1)
}

func (m *Store) GetTagKeys(ctx context.Context, projectID, environmentID int64) ([]model.TagKey, error) {
	args := m.Called(ctx, projectID, environmentID)
	return args.Get(0).([]model.TagKey), args.Error(1)
}

func (m *Store) GetTagValue(ctx context.Context, projectID, environmentID int64, key, value string) (model.TagValue, error) {
	args := m.Called(ctx, projectID, environmentID, key, value)
	return args.Get(0).(model.TagValue), args.Error(1)
}

func (m *Store) GetTagValues(ctx context.Context, projectID, environmentID int64, key string) ([]model.TagValue, error) {
	args := m.Called(ctx, projectID, environmentID, key)
	return args.Get(0).([]model.TagValue), args.Error(1)
}

func (m *Store) GetGroupTagKey(ctx context.Context, projectID, groupID, environmentID int64, key string) (model.GroupTagKey, error) {
	args := m.Called(ctx, projectID, groupID, environmentID, key)
	return args.Get(0).(model.GroupTagKey), args.Error(1)
}

func (m *Store) GetGroupTagKeys(ctx context.Context, projectID, groupID, environmentID int64, limit int) ([]model.GroupTagKey, error) {
	args := m.Called(ctx, projectID, groupID, environmentID, limit)
	return args.Get(0).([]model.GroupTagKey), args.Error(1)
}

func (m *Store) GetGroupTagValue(ctx context.Context, projectID, groupID, environmentID int64, key, value string) (model.GroupTagValue, error) {
	args := m.Called(ctx, projectID, groupID, environmentID, key, value)
	return args.Get(0).(model.GroupTagValue), args.Error(1)
}

func (m *Store) GetGroupTagValues(ctx context.Context, projectID, groupID, environmentID int64, key string) ([]model.GroupTagValue, error) {
	args := m.Called(ctx, projectID, groupID, environmentID, key)
	return args.Get(0).([]model.GroupTagValue), args.Error(1)
}

func (m *Store) GetGroupListTagValue(ctx context.Context, projectID int64, groupIDs []int64, environmentID int64, key, value string) (map[int64]model.GroupTagValue, error) {
	args := m.Called(ctx, projectID, groupIDs, environmentID, key, value)
	return args.Get(0).(map[int64]model.GroupTagValue), args.Error(1)
}

func (m *Store) GetGroupTagValueCount(ctx context.Context, projectID, groupID, environmentID int64, key string) (uint64, error) {
	args := m.Called(ctx, projectID, groupID, environmentID, key)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Store) GetTopGroupTagValues(ctx context.Context, projectID, groupID, environmentID int64, key string, limit int) ([]model.GroupTagValue, error) {
	args := m.Called(ctx, projectID, groupID, environmentID, key, limit)
	return args.Get(0).([]model.GroupTagValue), args.Error(1)
}

func (m *Store) GetFirstRelease(ctx context.Context, projectID int64, groupID *int64) (string, bool, error) {
	args := m.Called(ctx, projectID, groupID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Store) GetLastRelease(ctx context.Context, projectID int64, groupID *int64) (string, bool, error) {
	args := m.Called(ctx, projectID, groupID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Store) GetReleaseTags(ctx context.Context, projectIDs []int64, environmentID int64, versions []string) ([]model.LabeledRecord, error) {
	args := m.Called(ctx, projectIDs, environmentID, versions)
	return args.Get(0).([]model.LabeledRecord), args.Error(1)
}

func (m *Store) GetGroupEventIDs(ctx context.Context, projectID, environmentID int64, tags map[string]string) ([]string, error) {
	args := m.Called(ctx, projectID, environmentID, tags)
	return args.Get(0).([]string), args.Error(1)
}

func (m *Store) GetGroupIDsForUsers(ctx context.Context, projectIDs []int64, users []model.EventUser, limit int) ([]int64, error) {
	args := m.Called(ctx, projectIDs, users, limit)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *Store) GetGroupTagValuesForUsers(ctx context.Context, users []model.EventUser, limit int) ([]model.LabeledRecord, error) {
	args := m.Called(ctx, users, limit)
	return args.Get(0).([]model.LabeledRecord), args.Error(1)
}

func (m *Store) GetGroupsUserCounts(ctx context.Context, projectID int64, groupIDs []int64, environmentID int64) (map[int64]uint64, error) {
	args := m.Called(ctx, projectID, groupIDs, environmentID)
	return args.Get(0).(map[int64]uint64), args.Error(1)
}

func (m *Store) GetGroupIDsForSearchFilter(ctx context.Context, projectID, environmentID int64, tags map[string]string, limit int) ([]int64, error) {
	args := m.Called(ctx, projectID, environmentID, tags, limit)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}
