package media

type AssetType string

const (
	AssetTypeAvatar    AssetType = "avatar"
	AssetTypeSlide     AssetType = "slide"
	AssetTypeThumbnail AssetType = "thumbnail"
	AssetTypeUnknown   AssetType = "unknown"
)

// Probe holds the information extracted from an uploaded image: pixel
// dimensions from the decoded header and, when EXIF is present, the
// capture timestamp used to prefill a project's date.
type Probe struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	TakenAt *int64 `json:"taken_at,omitempty"`
}
