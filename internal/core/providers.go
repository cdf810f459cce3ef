package core

import "context"

// MemoryAPI is the RecallBox backend as seen by the client.
type MemoryAPI interface {
	Health(ctx context.Context) (Health, error)
	Mount(ctx context.Context, path string) (MountResult, error)
	Scan(ctx context.Context, path string, rescan bool) (ScanResult, error)
	RecentMemories(ctx context.Context, limit, offset int) ([]Memory, error)
	SearchMemories(ctx context.Context, query string, limit int, filter DateFilter) ([]Memory, error)
	Memory(ctx context.Context, fileID string) (MemoryDetail, error)
	Open(ctx context.Context, fileID string) error
}

type VisionAPI interface {
	VisionConfig(ctx context.Context) (VisionConfig, error)
	SaveVisionConfig(ctx context.Context, cfg VisionConfig) error
	TestVisionConfig(ctx context.Context, cfg VisionConfig) (VisionCheck, error)
}
