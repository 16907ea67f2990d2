package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"path"

	"github.com/facette/natsort"

	"github.com/arden-cole/portfoliobackend/media"
	"github.com/arden-cole/portfoliobackend/workers"
)

// max accepted upload body, generous for slide-sized images
const maxUploadBytes = 32 << 20

type UploadHandler struct {
	Store     media.Store
	Processor *media.Processor
	Assets    *workers.AssetProcessor
}

func NewUploadHandler(store media.Store, processor *media.Processor, assets *workers.AssetProcessor) *UploadHandler {
	return &UploadHandler{Store: store, Processor: processor, Assets: assets}
}

func parseAssetType(raw string) (media.AssetType, error) {
	switch media.AssetType(raw) {
	case media.AssetTypeAvatar:
		return media.AssetTypeAvatar, nil
	case media.AssetTypeSlide, media.AssetType(""):
		return media.AssetTypeSlide, nil
	default:
		return media.AssetTypeUnknown, errors.New("unknown asset type")
	}
}

// UploadResponse describes a stored upload: where it landed, what the
// image header said about it, and a URL the client can serve it from.
type UploadResponse struct {
	Path  string      `json:"path"`
	URL   string      `json:"url"`
	Probe media.Probe `json:"probe"`
}

// UploadAsset accepts a multipart form with a "file" field and an
// optional "type" field (avatar or slide, slide by default). The image
// is probed synchronously; thumbnail generation is queued to the worker
// pool and reported over the websocket hub.
func (uh *UploadHandler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}

	assetType, err := parseAssetType(r.FormValue("type"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "type must be avatar or slide")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading upload '%s': %v", header.Filename, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to read upload")
		return
	}

	probe, err := uh.Processor.ProbeImage(data)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "file is not a supported image")
		return
	}

	relPath, err := uh.Store.Save(assetType, header.Filename, bytes.NewReader(data))
	if err != nil {
		log.Printf("Error storing upload '%s': %v", header.Filename, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to store upload")
		return
	}

	if assetType == media.AssetTypeSlide {
		uh.Assets.Enqueue(workers.AssetJob{RelativePath: relPath, TaskType: workers.TaskThumbnail})
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Path:  relPath,
		URL:   path.Join("/media", relPath),
		Probe: probe,
	})
}

// MediaLibraryEntry is one stored asset as shown in the admin picker.
type MediaLibraryEntry struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ListAssets serves the media library for one asset type. Entries come
// back in natural order so shot_2 sorts before shot_10.
func (uh *UploadHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assetType, err := parseAssetType(r.URL.Query().Get("type"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "type must be avatar or slide")
		return
	}

	paths, err := uh.Store.List(assetType)
	if err != nil {
		log.Printf("Error listing %s assets: %v", assetType, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to list assets")
		return
	}
	natsort.Sort(paths)

	entries := make([]MediaLibraryEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, MediaLibraryEntry{Path: p, URL: path.Join("/media", p)})
	}
	writeJSON(w, http.StatusOK, entries)
}

// DeleteAsset removes a stored file by its relative path.
func (uh *UploadHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	relPath := r.URL.Query().Get("path")
	if relPath == "" {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "path is required")
		return
	}

	if err := uh.Store.Delete(relPath); err != nil {
		log.Printf("Error deleting asset '%s': %v", relPath, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to delete asset")
		return
	}
	writeMutationOK(w, http.StatusOK, nil)
}
