package core

const (
	RecallName      = "RecallBox"
	RecallUserAgent = "RecallBox-Client/0.1"
	RecallVersion   = "0.1.0"

	// DefaultPageSize bounds recent and search queries.
	DefaultPageSize = 50
)

// Memory is one indexed photo. Identity is FileID only; every other field is
// descriptive and passed through as the backend reports it.
type Memory struct {
	FileID       string
	Path         string
	Score        float64
	Summary      string
	Tags         string
	VisionStatus string
	CreatedAt    string
	ExifDate     string
	Thumbnail    []byte // preview JPEG, not decoded
}

// Date returns the best known capture date token.
func (m Memory) Date() string {
	if m.ExifDate != "" {
		return m.ExifDate
	}
	return m.CreatedAt
}

// MemoryDetail is the full record shown in the detail overlay.
type MemoryDetail struct {
	FileID        string `json:"file_id"`
	Path          string `json:"path"`
	Hash          string `json:"hash"`
	CreatedAt     Stamp  `json:"created_at"`
	ModifiedAt    Stamp  `json:"modified_at"`
	ExifDate      string `json:"exif_date"`
	OCRText       string `json:"ocr_text"`
	Caption       string `json:"caption"`
	MemorySummary string `json:"memory_summary"`
	Tags          string `json:"tags"`
	VisionJSON    string `json:"vision_json"`
	VisionStatus  string `json:"vision_status"`
}

// DateFilter bounds a search by capture date. Tokens are opaque and are sent
// to the backend unmodified.
type DateFilter struct {
	From string
	To   string
}

func (f DateFilter) IsZero() bool {
	return f.From == "" && f.To == ""
}

type Health struct {
	Status      string `json:"status"`
	MountedPath string `json:"mounted_path"`
}

type MountResult struct {
	Status string `json:"status"`
	DBPath string `json:"db_path"`
	Count  int    `json:"count"`
}

type ScanResult struct {
	Status      string `json:"status"`
	ScannedPath string `json:"scanned_path"`
	New         int    `json:"new"`
	Skipped     int    `json:"skipped"`
}

type VisionConfig struct {
	EndpointURL string `json:"endpoint_url"`
	ModelName   string `json:"model_name"`
	APIKey      string `json:"api_key"`
}

type VisionCheck struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

func (c VisionCheck) OK() bool {
	return c.Status == "ok"
}
