package memoryapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sandevgo/recallbox/internal/core"
)

type memoryDTO struct {
	FileID       string     `json:"file_id"`
	Path         string     `json:"path"`
	Score        float64    `json:"score"`
	Summary      string     `json:"summary"`
	Tags         string     `json:"tags"`
	VisionStatus string     `json:"vision_status"`
	CreatedAt    core.Stamp `json:"created_at"`
	ExifDate     string     `json:"exif_date"`
	ThumbnailB64 string     `json:"thumbnail_b64"`
}

type resultsDTO struct {
	Results []memoryDTO `json:"results"`
}

type searchRequest struct {
	Query    string `json:"query"`
	TopK     int    `json:"top_k"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

type mountRequest struct {
	Path string `json:"path"`
}

type scanRequest struct {
	Path   string `json:"path,omitempty"`
	Rescan bool   `json:"rescan"`
}

type openRequest struct {
	FileID string `json:"file_id"`
}

func (d memoryDTO) toCore() core.Memory {
	return core.Memory{
		FileID:       d.FileID,
		Path:         d.Path,
		Score:        d.Score,
		Summary:      d.Summary,
		Tags:         d.Tags,
		VisionStatus: d.VisionStatus,
		CreatedAt:    d.CreatedAt.String(),
		ExifDate:     d.ExifDate,
		Thumbnail:    decodeDataURL(d.ThumbnailB64),
	}
}

func toCore(in []memoryDTO) []core.Memory {
	out := make([]core.Memory, 0, len(in))
	for _, d := range in {
		out = append(out, d.toCore())
	}
	return out
}

// decodeDataURL accepts "data:image/jpeg;base64,...." or bare base64.
// Undecodable payloads yield nil; a missing thumbnail is not an error.
func decodeDataURL(s string) []byte {
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil
		}
		s = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return data
}

func (c *Client) Health(ctx context.Context) (core.Health, error) {
	var h core.Health
	if err := c.get(ctx, "/health", &h); err != nil {
		return core.Health{}, err
	}
	return h, nil
}

func (c *Client) Mount(ctx context.Context, path string) (core.MountResult, error) {
	var res core.MountResult
	if err := c.post(ctx, "/mount", mountRequest{Path: path}, &res); err != nil {
		return core.MountResult{}, err
	}
	return res, nil
}

func (c *Client) Scan(ctx context.Context, path string, rescan bool) (core.ScanResult, error) {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	var res core.ScanResult
	if err := c.post(ctx, "/scan", scanRequest{Path: path, Rescan: rescan}, &res); err != nil {
		return core.ScanResult{}, err
	}
	return res, nil
}

func (c *Client) RecentMemories(ctx context.Context, limit, offset int) ([]core.Memory, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var res resultsDTO
	if err := c.get(ctx, "/memories?"+q.Encode(), &res); err != nil {
		return nil, err
	}
	return toCore(res.Results), nil
}

func (c *Client) SearchMemories(ctx context.Context, query string, limit int, filter core.DateFilter) ([]core.Memory, error) {
	req := searchRequest{
		Query:    query,
		TopK:     limit,
		DateFrom: filter.From,
		DateTo:   filter.To,
	}

	var res resultsDTO
	if err := c.post(ctx, "/search", req, &res); err != nil {
		return nil, err
	}
	return toCore(res.Results), nil
}

func (c *Client) Memory(ctx context.Context, fileID string) (core.MemoryDetail, error) {
	var d core.MemoryDetail
	if err := c.get(ctx, "/memory/"+url.PathEscape(fileID), &d); err != nil {
		return core.MemoryDetail{}, err
	}
	return d, nil
}

func (c *Client) Thumbnail(ctx context.Context, fileID string) ([]byte, error) {
	var data []byte
	if err := c.get(ctx, "/thumbnail/"+url.PathEscape(fileID), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) Open(ctx context.Context, fileID string) error {
	if err := c.post(ctx, "/open", openRequest{FileID: fileID}, nil); err != nil {
		return fmt.Errorf("failed to open %s: %w", fileID, err)
	}
	return nil
}
