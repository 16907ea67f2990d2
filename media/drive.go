package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const driveHost = "https://drive.google.com"

var (
	drivePathIDPattern  = regexp.MustCompile(`/d/([\w-]{10,})\b`)
	driveQueryIDPattern = regexp.MustCompile(`[?&]id=([\w-]{10,})\b`)
)

// ExtractDriveFileID pulls the file id out of a Google Drive share URL,
// accepting both the /d/<id> path form and the ?id=<id> query form.
// Returns the empty string when no id is present.
func ExtractDriveFileID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if m := drivePathIDPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if m := driveQueryIDPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}

// DriveThumbnailURL builds a direct thumbnail URL for a Drive file id
// at the given pixel width.
func DriveThumbnailURL(id string, width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s/thumbnail?id=%s&sz=w%d", driveHost, url.QueryEscape(id), width)
}

// DriveIframeURL builds the embeddable preview URL for a Drive file id.
func DriveIframeURL(id string) string {
	return fmt.Sprintf("%s/file/d/%s/preview", driveHost, url.PathEscape(id))
}

// NormalizePreviewURL rewrites a Google Drive share URL into a direct
// thumbnail URL. Local paths (starting with "/") pass through untouched;
// anything unrecognized collapses to the empty string so the UI can fall
// back to a placeholder.
func NormalizePreviewURL(raw string, width int) string {
	input := strings.TrimSpace(raw)
	if input == "" {
		return ""
	}
	if strings.HasPrefix(input, "/") {
		return input
	}
	id := ExtractDriveFileID(input)
	if id == "" {
		return ""
	}
	return DriveThumbnailURL(id, width)
}
