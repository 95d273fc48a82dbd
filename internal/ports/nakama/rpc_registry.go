package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"otterly/internal/registry"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	toolsDataPath = "data/tools.json"
	blogsDataPath = "data/blogs.json"

	sharedRegistry     *registry.Registry
	sharedRegistryOnce sync.Once
)

// siteRegistry hands out the shared catalog. The data files load once; the
// registry keeps sane empty defaults when they are missing.
func siteRegistry(logger runtime.Logger) *registry.Registry {
	sharedRegistryOnce.Do(func() {
		sharedRegistry = registry.New(logger, toolsDataPath, blogsDataPath)
	})
	return sharedRegistry
}

func marshalResponse(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// previewRequest carries the optional item cap for preview projections.
type previewRequest struct {
	Max int `json:"max"`
}

// postRequest names a blog post by its path.
type postRequest struct {
	Path string `json:"path"`
	Max  int    `json:"max"`
}

// ToolsGridResponse carries the grid sections plus the catalog size.
type ToolsGridResponse struct {
	Sections  []registry.CategorySection `json:"sections"`
	ToolCount int                        `json:"toolCount"`
}

// RpcToolsGridFn returns every tool grouped into ordered category sections.
func RpcToolsGridFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	r := siteRegistry(logger)
	return marshalResponse(ToolsGridResponse{Sections: r.ToolsGrid(), ToolCount: r.ToolCount()})
}

// RpcToolsPreviewFn returns the featured tools for the landing page.
func RpcToolsPreviewFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req, err := decodePreview(payload)
	if err != nil {
		return "", err
	}
	return marshalResponse(siteRegistry(logger).ToolsPreview(req.Max))
}

// RpcToolsItemListFn returns the schema.org ItemList for the tools catalog.
func RpcToolsItemListFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return marshalResponse(siteRegistry(logger).ToolsItemList())
}

// RpcBlogGridFn returns every post, newest first.
func RpcBlogGridFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return marshalResponse(siteRegistry(logger).BlogGrid())
}

// RpcBlogPreviewFn returns the newest posts for the landing page.
func RpcBlogPreviewFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req, err := decodePreview(payload)
	if err != nil {
		return "", err
	}
	return marshalResponse(siteRegistry(logger).BlogPreview(req.Max))
}

// RpcPostNavFn returns the previous/next neighbours of a post.
//
// Payload: {"path": "/blog/some-post/"}
func RpcPostNavFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req, err := decodePost(payload)
	if err != nil {
		return "", err
	}
	nav := siteRegistry(logger).PostNavFor(req.Path)
	if nav == nil {
		return "", fmt.Errorf("unknown post: %s", req.Path)
	}
	return marshalResponse(nav)
}

// RpcRelatedPostsFn returns posts related to the named one, same category first.
//
// Payload: {"path": "/blog/some-post/", "max": 3}
func RpcRelatedPostsFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req, err := decodePost(payload)
	if err != nil {
		return "", err
	}
	return marshalResponse(siteRegistry(logger).RelatedPosts(req.Path, req.Max))
}

func decodePreview(payload string) (previewRequest, error) {
	var req previewRequest
	if payload == "" {
		return req, nil
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return req, fmt.Errorf("invalid payload")
	}
	return req, nil
}

func decodePost(payload string) (postRequest, error) {
	var req postRequest
	if payload == "" {
		return req, fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return req, fmt.Errorf("invalid payload")
	}
	if req.Path == "" {
		return req, fmt.Errorf("path is required")
	}
	return req, nil
}
