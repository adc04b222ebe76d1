// Package tagstore translates tag store lookups into aggregation queries
// against the analytics engine and maps the results back into domain
// records. It owns no data: every record is rebuilt from a fresh query over
// the trailing retention window.
package tagstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/amos-lsl/sentry/internal/engine"
	"github.com/amos-lsl/sentry/internal/model"
)

// seenColumn is the event timestamp column all first/last seen aggregates
// are derived from.
const seenColumn = "timestamp"

const (
	// DefaultWindow is the trailing time range queried when no override is
	// configured. There is no per-project retention awareness; the window is
	// global and re-derived on every call.
	DefaultWindow = 90 * 24 * time.Hour

	defaultKeyLimit  = 1000
	defaultTopLimit  = 3
	defaultUserLimit = 100
)

// Fixed labels used for records that are tag-shaped but not literal tags.
const (
	releaseLabel = "release"
	userTagLabel = "sentry:user"
)

// Store exposes tag statistics reconstructed from the analytics engine.
type Store interface {
	GetTagKey(ctx context.Context, projectID, environmentID int64, key string) (model.TagKey, error)
	GetTagKeys(ctx context.Context, projectID, environmentID int64) ([]model.TagKey, error)
	GetTagValue(ctx context.Context, projectID, environmentID int64, key, value string) (model.TagValue, error)
	GetTagValues(ctx context.Context, projectID, environmentID int64, key string) ([]model.TagValue, error)

	GetGroupTagKey(ctx context.Context, projectID, groupID, environmentID int64, key string) (model.GroupTagKey, error)
	GetGroupTagKeys(ctx context.Context, projectID, groupID, environmentID int64, limit int) ([]model.GroupTagKey, error)
	GetGroupTagValue(ctx context.Context, projectID, groupID, environmentID int64, key, value string) (model.GroupTagValue, error)
	GetGroupTagValues(ctx context.Context, projectID, groupID, environmentID int64, key string) ([]model.GroupTagValue, error)

	GetGroupListTagValue(ctx context.Context, projectID int64, groupIDs []int64, environmentID int64, key, value string) (map[int64]model.GroupTagValue, error)
	GetGroupTagValueCount(ctx context.Context, projectID, groupID, environmentID int64, key string) (uint64, error)
	GetTopGroupTagValues(ctx context.Context, projectID, groupID, environmentID int64, key string, limit int) ([]model.GroupTagValue, error)

	GetFirstRelease(ctx context.Context, projectID int64, groupID *int64) (string, bool, error)
	GetLastRelease(ctx context.Context, projectID int64, groupID *int64) (string, bool, error)
	GetReleaseTags(ctx context.Context, projectIDs []int64, environmentID int64, versions []string) ([]model.LabeledRecord, error)

	GetGroupEventIDs(ctx context.Context, projectID, environmentID int64, tags map[string]string) ([]string, error)
	GetGroupIDsForUsers(ctx context.Context, projectIDs []int64, users []model.EventUser, limit int) ([]int64, error)
	GetGroupTagValuesForUsers(ctx context.Context, users []model.EventUser, limit int) ([]model.LabeledRecord, error)
	GetGroupsUserCounts(ctx context.Context, projectID int64, groupIDs []int64, environmentID int64) (map[int64]uint64, error)

	GetGroupIDsForSearchFilter(ctx context.Context, projectID, environmentID int64, tags map[string]string, limit int) ([]int64, error)
}

type tagStore struct {
	engine engine.Engine
	now    func() time.Time
	window time.Duration
}

// NewStore builds a Store on top of the given engine. A non-positive window
// falls back to DefaultWindow.
func NewStore(eng engine.Engine, window time.Duration) Store {
	if window <= 0 {
		window = DefaultWindow
	}
	return &tagStore{
		engine: eng,
		now:    time.Now,
		window: window,
	}
}

// timeRange returns the [now-window, now) range, derived fresh per call.
func (s *tagStore) timeRange() (time.Time, time.Time) {
	end := s.now().UTC()
	return end.Add(-s.window), end
}

func tagExpr(key string) string {
	return fmt.Sprintf("tags[%s]", key)
}

// scopeFilters builds the base filter set for one project and environment,
// optionally narrowed to one issue.
func scopeFilters(projectID int64, groupID *int64, environmentID int64) map[string][]int64 {
	filters := map[string][]int64{
		"project_id":  {projectID},
		"environment": {environmentID},
	}
	if groupID != nil {
		filters["issue"] = []int64{*groupID}
	}
	return filters
}

// valueStat is the per-row aggregate triple shared by all value operations.
type valueStat struct {
	value     string
	timesSeen uint64
	firstSeen time.Time
	lastSeen  time.Time
}

func statAggregations() []engine.Aggregation {
	return []engine.Aggregation{
		{Function: engine.AggCount, Alias: "times_seen"},
		{Function: engine.AggMin, Column: seenColumn, Alias: "first_seen"},
		{Function: engine.AggMax, Column: seenColumn, Alias: "last_seen"},
	}
}

func statFromRow(value string, row engine.Row) valueStat {
	return valueStat{
		value:     value,
		timesSeen: row.Count("times_seen"),
		firstSeen: row.Time("first_seen"),
		lastSeen:  row.Time("last_seen"),
	}
}

// getTagKey is the scalar key lookup shared by the project- and
// issue-scoped variants.
func (s *tagStore) getTagKey(ctx context.Context, projectID int64, groupID *int64, environmentID int64, key string) (uint64, error) {
	start, end := s.timeRange()
	tag := tagExpr(key)

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		Filters: scopeFilters(projectID, groupID, environmentID),
		Conditions: []engine.Condition{
			{Column: tag, Op: engine.OpNotEq, Values: []string{""}},
		},
		Aggregations: []engine.Aggregation{
			{Function: engine.AggUniq, Column: tag, Alias: "values_seen"},
		},
	})
	if err != nil {
		return 0, err
	}

	// A missing row and a present row with zero distinct values both mean
	// the key was not observed in the window.
	var valuesSeen uint64
	if result.Totals != nil {
		valuesSeen = result.Totals.Count("values_seen")
	}
	if valuesSeen == 0 {
		if groupID == nil {
			return 0, ErrTagKeyNotFound
		}
		return 0, ErrGroupTagKeyNotFound
	}
	return valuesSeen, nil
}

func (s *tagStore) GetTagKey(ctx context.Context, projectID, environmentID int64, key string) (model.TagKey, error) {
	valuesSeen, err := s.getTagKey(ctx, projectID, nil, environmentID, key)
	if err != nil {
		return model.TagKey{}, err
	}
	return model.TagKey{Key: key, ValuesSeen: valuesSeen}, nil
}

func (s *tagStore) GetGroupTagKey(ctx context.Context, projectID, groupID, environmentID int64, key string) (model.GroupTagKey, error) {
	valuesSeen, err := s.getTagKey(ctx, projectID, &groupID, environmentID, key)
	if err != nil {
		return model.GroupTagKey{}, err
	}
	return model.GroupTagKey{GroupID: groupID, Key: key, ValuesSeen: valuesSeen}, nil
}

// keyCount is one row of a key listing.
type keyCount struct {
	key        string
	valuesSeen uint64
}

// getTagKeys lists tag keys ordered by descending distinct value count.
// Rows with a zero count are dropped.
func (s *tagStore) getTagKeys(ctx context.Context, projectID int64, groupID *int64, environmentID int64, limit int) ([]keyCount, error) {
	if limit <= 0 {
		limit = defaultKeyLimit
	}
	start, end := s.timeRange()

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{"tags_key"},
		Filters: scopeFilters(projectID, groupID, environmentID),
		Aggregations: []engine.Aggregation{
			{Function: engine.AggUniq, Column: "tags_value", Alias: "values_seen"},
		},
		Limit:   limit,
		OrderBy: engine.OrderBy{Column: "values_seen", Desc: true},
	})
	if err != nil {
		return nil, err
	}

	keys := make([]keyCount, 0, len(result.Groups))
	for _, g := range result.Groups {
		valuesSeen := g.Row.Count("values_seen")
		if valuesSeen == 0 {
			continue
		}
		keys = append(keys, keyCount{key: g.Key, valuesSeen: valuesSeen})
	}
	return keys, nil
}

func (s *tagStore) GetTagKeys(ctx context.Context, projectID, environmentID int64) ([]model.TagKey, error) {
	rows, err := s.getTagKeys(ctx, projectID, nil, environmentID, 0)
	if err != nil {
		return nil, err
	}
	keys := make([]model.TagKey, len(rows))
	for i, r := range rows {
		keys[i] = model.TagKey{Key: r.key, ValuesSeen: r.valuesSeen}
	}
	return keys, nil
}

func (s *tagStore) GetGroupTagKeys(ctx context.Context, projectID, groupID, environmentID int64, limit int) ([]model.GroupTagKey, error) {
	rows, err := s.getTagKeys(ctx, projectID, &groupID, environmentID, limit)
	if err != nil {
		return nil, err
	}
	keys := make([]model.GroupTagKey, len(rows))
	for i, r := range rows {
		keys[i] = model.GroupTagKey{GroupID: groupID, Key: r.key, ValuesSeen: r.valuesSeen}
	}
	return keys, nil
}

// getTagValue is the scalar value lookup shared by the project- and
// issue-scoped variants.
func (s *tagStore) getTagValue(ctx context.Context, projectID int64, groupID *int64, environmentID int64, key, value string) (valueStat, error) {
	start, end := s.timeRange()
	tag := tagExpr(key)

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		Filters: scopeFilters(projectID, groupID, environmentID),
		Conditions: []engine.Condition{
			{Column: tag, Op: engine.OpEq, Values: []string{value}},
		},
		Aggregations: statAggregations(),
	})
	if err != nil {
		return valueStat{}, err
	}

	if result.Totals == nil || result.Totals.Count("times_seen") == 0 {
		if groupID == nil {
			return valueStat{}, ErrTagValueNotFound
		}
		return valueStat{}, ErrGroupTagValueNotFound
	}
	return statFromRow(value, result.Totals), nil
}

func (s *tagStore) GetTagValue(ctx context.Context, projectID, environmentID int64, key, value string) (model.TagValue, error) {
	stat, err := s.getTagValue(ctx, projectID, nil, environmentID, key, value)
	if err != nil {
		return model.TagValue{}, err
	}
	return model.TagValue{
		Key:       key,
		Value:     stat.value,
		TimesSeen: stat.timesSeen,
		FirstSeen: stat.firstSeen,
		LastSeen:  stat.lastSeen,
	}, nil
}

func (s *tagStore) GetGroupTagValue(ctx context.Context, projectID, groupID, environmentID int64, key, value string) (model.GroupTagValue, error) {
	stat, err := s.getTagValue(ctx, projectID, &groupID, environmentID, key, value)
	if err != nil {
		return model.GroupTagValue{}, err
	}
	return groupTagValueFromStat(groupID, key, stat), nil
}

func groupTagValueFromStat(groupID int64, key string, stat valueStat) model.GroupTagValue {
	return model.GroupTagValue{
		GroupID:   groupID,
		Key:       key,
		Value:     stat.value,
		TimesSeen: stat.timesSeen,
		FirstSeen: stat.firstSeen,
		LastSeen:  stat.lastSeen,
	}
}

// getTagValues lists every non-empty value of one tag with its stat triple.
func (s *tagStore) getTagValues(ctx context.Context, projectID int64, groupID *int64, environmentID int64, key string) ([]valueStat, error) {
	start, end := s.timeRange()
	tag := tagExpr(key)

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{tag},
		Filters: scopeFilters(projectID, groupID, environmentID),
		Conditions: []engine.Condition{
			{Column: tag, Op: engine.OpNotEq, Values: []string{""}},
		},
		Aggregations: statAggregations(),
	})
	if err != nil {
		return nil, err
	}

	stats := make([]valueStat, len(result.Groups))
	for i, g := range result.Groups {
		stats[i] = statFromRow(g.Key, g.Row)
	}
	return stats, nil
}

func (s *tagStore) GetTagValues(ctx context.Context, projectID, environmentID int64, key string) ([]model.TagValue, error) {
	stats, err := s.getTagValues(ctx, projectID, nil, environmentID, key)
	if err != nil {
		return nil, err
	}
	values := make([]model.TagValue, len(stats))
	for i, stat := range stats {
		values[i] = model.TagValue{
			Key:       key,
			Value:     stat.value,
			TimesSeen: stat.timesSeen,
			FirstSeen: stat.firstSeen,
			LastSeen:  stat.lastSeen,
		}
	}
	return values, nil
}

func (s *tagStore) GetGroupTagValues(ctx context.Context, projectID, groupID, environmentID int64, key string) ([]model.GroupTagValue, error) {
	stats, err := s.getTagValues(ctx, projectID, &groupID, environmentID, key)
	if err != nil {
		return nil, err
	}
	values := make([]model.GroupTagValue, len(stats))
	for i, stat := range stats {
		values[i] = groupTagValueFromStat(groupID, key, stat)
	}
	return values, nil
}

// GetGroupListTagValue checks one tag/value pair across many issues at
// once. Issues with no matching events are absent from the result.
func (s *tagStore) GetGroupListTagValue(ctx context.Context, projectID int64, groupIDs []int64, environmentID int64, key, value string) (map[int64]model.GroupTagValue, error) {
	start, end := s.timeRange()
	tag := tagExpr(key)

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{"issue"},
		Filters: map[string][]int64{
			"project_id":  {projectID},
			"environment": {environmentID},
			"issue":       groupIDs,
		},
		Conditions: []engine.Condition{
			{Column: tag, Op: engine.OpEq, Values: []string{value}},
		},
		Aggregations: statAggregations(),
	})
	if err != nil {
		return nil, err
	}

	values := make(map[int64]model.GroupTagValue, len(result.Groups))
	for _, g := range result.Groups {
		groupID, err := parseGroupKey(g.Key)
		if err != nil {
			return nil, err
		}
		values[groupID] = groupTagValueFromStat(groupID, key, statFromRow(value, g.Row))
	}
	return values, nil
}

// GetGroupTagValueCount counts events carrying any non-empty value of one
// tag on one issue. Zero is a valid result, not a failure.
func (s *tagStore) GetGroupTagValueCount(ctx context.Context, projectID, groupID, environmentID int64, key string) (uint64, error) {
	start, end := s.timeRange()
	tag := tagExpr(key)

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		Filters: scopeFilters(projectID, &groupID, environmentID),
		Conditions: []engine.Condition{
			{Column: tag, Op: engine.OpNotEq, Values: []string{""}},
		},
		Aggregations: []engine.Aggregation{
			{Function: engine.AggCount, Alias: "count"},
		},
	})
	if err != nil {
		return 0, err
	}
	if result.Totals == nil {
		return 0, nil
	}
	return result.Totals.Count("count"), nil
}

// GetTopGroupTagValues returns the most frequent values of one tag on one
// issue, ordered by descending times seen.
func (s *tagStore) GetTopGroupTagValues(ctx context.Context, projectID, groupID, environmentID int64, key string, limit int) ([]model.GroupTagValue, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	start, end := s.timeRange()
	tag := tagExpr(key)

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{tag},
		Filters: scopeFilters(projectID, &groupID, environmentID),
		Conditions: []engine.Condition{
			{Column: tag, Op: engine.OpNotEq, Values: []string{""}},
		},
		Aggregations: statAggregations(),
		Limit:        limit,
		OrderBy:      engine.OrderBy{Column: "times_seen", Desc: true},
	})
	if err != nil {
		return nil, err
	}

	values := make([]model.GroupTagValue, len(result.Groups))
	for i, g := range result.Groups {
		values[i] = groupTagValueFromStat(groupID, key, statFromRow(g.Key, g.Row))
	}
	return values, nil
}

// getRelease finds the release with the earliest or latest event. A missing
// release is a valid absence reported through the ok flag.
func (s *tagStore) getRelease(ctx context.Context, projectID int64, groupID *int64, first bool) (string, bool, error) {
	start, end := s.timeRange()

	fn := engine.AggMax
	if first {
		fn = engine.AggMin
	}
	filters := map[string][]int64{
		"project_id": {projectID},
	}
	if groupID != nil {
		filters["issue"] = []int64{*groupID}
	}

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{"release"},
		Filters: filters,
		Conditions: []engine.Condition{
			{Column: "release", Op: engine.OpIsNotNull},
		},
		Aggregations: []engine.Aggregation{
			{Function: fn, Column: seenColumn, Alias: "seen"},
		},
		Limit:   1,
		OrderBy: engine.OrderBy{Column: "seen", Desc: !first},
	})
	if err != nil {
		return "", false, err
	}
	if len(result.Groups) == 0 {
		return "", false, nil
	}
	return result.Groups[0].Key, true, nil
}

func (s *tagStore) GetFirstRelease(ctx context.Context, projectID int64, groupID *int64) (string, bool, error) {
	return s.getRelease(ctx, projectID, groupID, true)
}

func (s *tagStore) GetLastRelease(ctx context.Context, projectID int64, groupID *int64) (string, bool, error) {
	return s.getRelease(ctx, projectID, groupID, false)
}

// GetReleaseTags returns tag-shaped stats for explicit release versions
// across projects. Versions are matched as literal strings in a condition
// rather than a filter; translating version strings to release ids is the
// caller's job.
func (s *tagStore) GetReleaseTags(ctx context.Context, projectIDs []int64, environmentID int64, versions []string) ([]model.LabeledRecord, error) {
	start, end := s.timeRange()

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{"release"},
		Filters: map[string][]int64{
			"project_id":  projectIDs,
			"environment": {environmentID},
		},
		Conditions: []engine.Condition{
			{Column: "release", Op: engine.OpIn, Values: versions},
		},
		Aggregations: statAggregations(),
	})
	if err != nil {
		return nil, err
	}

	records := make([]model.LabeledRecord, len(result.Groups))
	for i, g := range result.Groups {
		records[i] = labeledRecord(releaseLabel, g.Key, g.Row)
	}
	return records, nil
}

func labeledRecord(label, value string, row engine.Row) model.LabeledRecord {
	return model.LabeledRecord{
		ID:        0,
		Key:       label,
		Value:     value,
		TimesSeen: row.Count("times_seen"),
		FirstSeen: row.Time("first_seen"),
		LastSeen:  row.Time("last_seen"),
	}
}

// GetGroupEventIDs returns the ids of events matching any of the supplied
// tag/value pairs.
func (s *tagStore) GetGroupEventIDs(ctx context.Context, projectID, environmentID int64, tags map[string]string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	start, end := s.timeRange()

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	or := make([]engine.Condition, 0, len(tags))
	for _, key := range keys {
		or = append(or, engine.Condition{
			Column: tagExpr(key),
			Op:     engine.OpEq,
			Values: []string{tags[key]},
		})
	}

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{"event_id"},
		Filters: map[string][]int64{
			"project_id":  {projectID},
			"environment": {environmentID},
		},
		Conditions: []engine.Condition{{Or: or}},
		Aggregations: []engine.Aggregation{
			{Function: engine.AggCount, Alias: "times_seen"},
		},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(result.Groups))
	for i, g := range result.Groups {
		ids[i] = g.Key
	}
	return ids, nil
}

// userConditions builds the OR-group of identity IN clauses. Clauses whose
// value list is empty are dropped so a vacuous IN () can never match
// everything; an empty return means no identity was usable at all.
func userConditions(users []model.EventUser) []engine.Condition {
	fields := []struct {
		column string
		value  func(model.EventUser) string
	}{
		{"user_id", func(u model.EventUser) string { return u.Ident }},
		{"email", func(u model.EventUser) string { return u.Email }},
		{"username", func(u model.EventUser) string { return u.Username }},
		{"ip_address", func(u model.EventUser) string { return u.IPAddress }},
	}

	var or []engine.Condition
	for _, f := range fields {
		var values []string
		for _, u := range users {
			if v := f.value(u); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			or = append(or, engine.Condition{Column: f.column, Op: engine.OpIn, Values: values})
		}
	}
	return or
}

// GetGroupIDsForUsers finds issues recently touched by any of the given
// users, most recent first.
func (s *tagStore) GetGroupIDsForUsers(ctx context.Context, projectIDs []int64, users []model.EventUser, limit int) ([]int64, error) {
	or := userConditions(users)
	if len(or) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultUserLimit
	}
	start, end := s.timeRange()

	result, err := s.engine.Query(ctx, engine.Params{
		Start:      start,
		End:        end,
		GroupBy:    []string{"issue"},
		Filters:    map[string][]int64{"project_id": projectIDs},
		Conditions: []engine.Condition{{Or: or}},
		Aggregations: []engine.Aggregation{
			{Function: engine.AggMax, Column: seenColumn, Alias: "seen"},
		},
		Limit:   limit,
		OrderBy: engine.OrderBy{Column: "seen", Desc: true},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(result.Groups))
	for _, g := range result.Groups {
		id, err := parseGroupKey(g.Key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetGroupTagValuesForUsers returns per-user tag stats for the given
// identities, most recently seen first, labeled with the user dimension.
func (s *tagStore) GetGroupTagValuesForUsers(ctx context.Context, users []model.EventUser, limit int) ([]model.LabeledRecord, error) {
	or := userConditions(users)
	if len(or) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultUserLimit
	}
	start, end := s.timeRange()

	projectIDs := make([]int64, 0, len(users))
	seen := make(map[int64]bool, len(users))
	for _, u := range users {
		if !seen[u.ProjectID] {
			seen[u.ProjectID] = true
			projectIDs = append(projectIDs, u.ProjectID)
		}
	}

	result, err := s.engine.Query(ctx, engine.Params{
		Start:        start,
		End:          end,
		GroupBy:      []string{"user_id"},
		Filters:      map[string][]int64{"project_id": projectIDs},
		Conditions:   []engine.Condition{{Or: or}},
		Aggregations: statAggregations(),
		Limit:        limit,
		OrderBy:      engine.OrderBy{Column: "last_seen", Desc: true},
	})
	if err != nil {
		return nil, err
	}

	records := make([]model.LabeledRecord, len(result.Groups))
	for i, g := range result.Groups {
		records[i] = labeledRecord(userTagLabel, g.Key, g.Row)
	}
	return records, nil
}

// GetGroupsUserCounts returns the distinct user count per issue. Every
// requested issue id is present in the result, zero-filled when the engine
// returned no row for it.
func (s *tagStore) GetGroupsUserCounts(ctx context.Context, projectID int64, groupIDs []int64, environmentID int64) (map[int64]uint64, error) {
	start, end := s.timeRange()

	result, err := s.engine.Query(ctx, engine.Params{
		Start:   start,
		End:     end,
		GroupBy: []string{"issue"},
		Filters: map[string][]int64{
			"project_id":  {projectID},
			"environment": {environmentID},
			"issue":       groupIDs,
		},
		Aggregations: []engine.Aggregation{
			{Function: engine.AggUniq, Column: "user_id", Alias: "count"},
		},
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]uint64, len(groupIDs))
	for _, id := range groupIDs {
		counts[id] = 0
	}
	for _, g := range result.Groups {
		id, err := parseGroupKey(g.Key)
		if err != nil {
			return nil, err
		}
		counts[id] = g.Row.Count("count")
	}
	return counts, nil
}

// GetGroupIDsForSearchFilter is a permanent capability gap of this backend.
func (s *tagStore) GetGroupIDsForSearchFilter(ctx context.Context, projectID, environmentID int64, tags map[string]string, limit int) ([]int64, error) {
	return nil, ErrNotImplemented
}

func parseGroupKey(key string) (int64, error) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse issue id %q: %w", key, err)
	}
	return id, nil
}
