package es

import (
	"Inkwell/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 1000

type PostRepo interface {
	SearchPosts(ctx context.Context, q SearchQuery) ([]*PostES, error)
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id uint64) error
	DeletePostsByAuthor(ctx context.Context, authorID uint64) error
	UpdateAuthorName(ctx context.Context, authorID uint64, name string) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewPostRepo(client *elasticsearch.TypedClient, index string) PostRepo {
	return &PostRepoImpl{client: client, index: index}
}

// SearchPosts 按标题、标签、作者名检索，可按分类过滤
func (s *PostRepoImpl) SearchPosts(ctx context.Context, q SearchQuery) ([]*PostES, error) {
	if q.From >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	req := s.client.Search().
		Index(s.index).
		Query(buildSearchQuery(q)).
		From(q.From).
		Size(q.Size).
		Sort(buildSort(q)...)

	return s.executeSearch(ctx, req)
}

func buildSearchQuery(q SearchQuery) *types.Query {
	boolQuery := &types.BoolQuery{}
	if q.Text != "" {
		boolQuery.Must = append(boolQuery.Must, types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  q.Text,
				Fields: []string{"title^3", "tags^2", "author_name", "excerpt"},
				Boost:  util.Ptr[float32](2.0),
			},
		})
	}
	if q.Category != "" {
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{
				"category": {Value: q.Category},
			},
		})
	}
	if q.ExcludeAuthorID != 0 {
		boolQuery.MustNot = append(boolQuery.MustNot, types.Query{
			Term: map[string]types.TermQuery{
				"author_id": {Value: q.ExcludeAuthorID},
			},
		})
	}

	if len(q.PreferCategories) > 0 {
		boolQuery.Should = append(boolQuery.Should, termsQuery("category", q.PreferCategories, 3.0))
	}
	if len(q.PreferAuthorIDs) > 0 {
		boolQuery.Should = append(boolQuery.Should, termsQuery("author_id", q.PreferAuthorIDs, 2.0))
	}
	// should 只参与打分，不作为过滤条件
	if len(boolQuery.Should) > 0 {
		boolQuery.MinimumShouldMatch = 0
	}

	return &types.Query{Bool: boolQuery}
}

func termsQuery[T any](field string, values []T, boost float32) types.Query {
	fieldValues := make([]types.FieldValue, 0, len(values))
	for _, v := range values {
		fieldValues = append(fieldValues, v)
	}
	return types.Query{
		Terms: &types.TermsQuery{
			TermsQuery: map[string]types.TermsQueryField{field: fieldValues},
			Boost:      util.Ptr(boost),
		},
	}
}

// buildSort 个性化检索先按相关度排序
func buildSort(q SearchQuery) []types.SortCombinations {
	desc := func(field string) types.SortCombinations {
		return types.SortOptions{SortOptions: map[string]types.FieldSort{field: {Order: &sortorder.Desc}}}
	}

	sorts := make([]types.SortCombinations, 0, 4)
	if q.personalized() {
		sorts = append(sorts, types.SortOptions{Score_: &types.ScoreSort{Order: &sortorder.Desc}})
	}
	switch q.Sort {
	case SortPopular:
		sorts = append(sorts, desc("likes_count"), desc("views"))
	case SortViews:
		sorts = append(sorts, desc("views"))
	}
	return append(sorts, desc("created_at"))
}

// IndexPost 使用外部版本号写入，旧版本的写入被忽略
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	_, err := s.client.Index(s.index).
		Id(strconv.FormatUint(post.ID, 10)).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)
	if isStatus(err, ConflictCode) {
		return nil
	}
	return err
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	_, err := s.client.Delete(s.index, strconv.FormatUint(id, 10)).Do(ctx)
	if isStatus(err, NotFoundCode) {
		return nil
	}
	return err
}

func (s *PostRepoImpl) DeletePostsByAuthor(ctx context.Context, authorID uint64) error {
	resp, err := s.client.DeleteByQuery(s.index).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"author_id": {Value: authorID},
			},
		}).
		Conflicts(conflicts.Proceed).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("post index: delete by author failed: %w", err)
	}
	if len(resp.Failures) != 0 {
		return fmt.Errorf("post index: delete by author has failures, count: %d", len(resp.Failures))
	}
	return nil
}

// UpdateAuthorName 用户改名后同步已索引帖子中的作者名
func (s *PostRepoImpl) UpdateAuthorName(ctx context.Context, authorID uint64, name string) error {
	nameJSON, _ := json.Marshal(name)
	scriptSource := "ctx._source.author_name = params.author_name;"

	resp, err := s.client.UpdateByQuery(s.index).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"author_id": {Value: authorID},
			},
		}).
		Script(&types.Script{
			Source: &scriptSource,
			Params: map[string]json.RawMessage{"author_name": nameJSON},
		}).
		Conflicts(conflicts.Proceed).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("post index: update author name failed: %w", err)
	}
	if len(resp.Failures) != 0 {
		return fmt.Errorf("post index: update author name has failures, count: %d", len(resp.Failures))
	}
	return nil
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var post PostES
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		results = append(results, &post)
	}
	return results, nil
}

func isStatus(err error, status int) bool {
	var e *types.ElasticsearchError
	return errors.As(err, &e) && e.Status == status
}
