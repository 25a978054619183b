package es

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const (
	BadRequestCode = 400
	NotFoundCode   = 404
	ConflictCode   = 409
)

// InitClient 初始化 Elasticsearch 客户端
func InitClient(cfg config.ElasticConfig) (*elasticsearch.TypedClient, error) {
	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: []string{cfg.Address},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: &logger.ESTransport{
			Transport: http.DefaultTransport,
		},
	})
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := client.Info().Do(ctx)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	log.Info("Connected to Elasticsearch", "version", info.Version.Int)
	return client, nil
}

// EnsurePostIndex 探索索引不存在时按固定 mapping 创建
func EnsurePostIndex(ctx context.Context, client *elasticsearch.TypedClient, index string) error {
	exists, err := client.Indices.Exists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("post index: check exists failed: %w", err)
	}
	if exists {
		return nil
	}

	// 多实例同时启动时另一实例可能已创建，返回 resource_already_exists_exception
	_, err = client.Indices.Create(index).Mappings(postIndexMapping()).Do(ctx)
	if err != nil && !isStatus(err, BadRequestCode) {
		return fmt.Errorf("post index: create failed: %w", err)
	}
	log.Info("Elasticsearch index created", "index", index)
	return nil
}

// postIndexMapping category 与 author_id 用于精确过滤和个性化加权
func postIndexMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":            types.NewLongNumberProperty(),
			"author_id":     types.NewLongNumberProperty(),
			"author_name":   types.NewTextProperty(),
			"title":         types.NewTextProperty(),
			"excerpt":       types.NewTextProperty(),
			"cover_image":   types.NewKeywordProperty(),
			"image_gallery": types.NewKeywordProperty(),
			"tags":          types.NewTextProperty(),
			"category":      types.NewKeywordProperty(),
			"views":         types.NewLongNumberProperty(),
			"likes_count":   types.NewLongNumberProperty(),
			"created_at":    types.NewDateProperty(),
			"updated_at":    types.NewDateProperty(),
		},
	}
}
