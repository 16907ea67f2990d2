package workers

import (
	"log"
	"os"
	"sync"

	"github.com/arden-cole/portfoliobackend/media"
	"github.com/arden-cole/portfoliobackend/realtime"
)

const TaskThumbnail = "thumbnail"

// AssetJob asks for post-processing of an uploaded asset addressed by
// its relative storage path.
type AssetJob struct {
	RelativePath string
	TaskType     string
}

// AssetProcessor runs upload post-processing (currently thumbnail
// generation) on a fixed worker pool and reports progress through the
// realtime hub.
type AssetProcessor struct {
	JobQueue chan AssetJob
	Wg       sync.WaitGroup

	store        media.Store
	processor    *media.Processor
	hub          *realtime.Hub
	thumbMaxSize int

	mu      sync.Mutex
	pending map[string]bool
}

func NewAssetProcessor(store media.Store, processor *media.Processor, hub *realtime.Hub, thumbMaxSize, queueSize, numWorkers int) *AssetProcessor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	ap := &AssetProcessor{
		JobQueue:     make(chan AssetJob, queueSize),
		store:        store,
		processor:    processor,
		hub:          hub,
		thumbMaxSize: thumbMaxSize,
		pending:      make(map[string]bool),
	}
	ap.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go ap.worker(i)
	}
	log.Printf("Started %d asset processing worker(s) with queue size %d", numWorkers, queueSize)
	return ap
}

// Enqueue schedules a job unless the same path+task is already queued
// or running. Returns false when the job was deduplicated or the queue
// is full.
func (ap *AssetProcessor) Enqueue(job AssetJob) bool {
	key := job.RelativePath + ":" + job.TaskType

	ap.mu.Lock()
	if ap.pending[key] {
		ap.mu.Unlock()
		return false
	}
	ap.pending[key] = true
	ap.mu.Unlock()

	select {
	case ap.JobQueue <- job:
		ap.hub.Broadcast(realtime.NewUploadEvent(job.RelativePath, job.TaskType, realtime.StatusQueued, ""))
		return true
	default:
		ap.mu.Lock()
		delete(ap.pending, key)
		ap.mu.Unlock()
		log.Printf("Asset job queue full, dropping %s job for %s", job.TaskType, job.RelativePath)
		return false
	}
}

// Stop closes the queue and waits for in-flight jobs to finish
func (ap *AssetProcessor) Stop() {
	close(ap.JobQueue)
	ap.Wg.Wait()
}

func (ap *AssetProcessor) worker(id int) {
	defer ap.Wg.Done()
	log.Printf("Asset worker %d started", id)

	for job := range ap.JobQueue {
		key := job.RelativePath + ":" + job.TaskType
		ap.hub.Broadcast(realtime.NewUploadEvent(job.RelativePath, job.TaskType, realtime.StatusProcessing, ""))

		err := ap.process(job)
		if err != nil {
			log.Printf("Worker %d: %s job failed for %s: %v", id, job.TaskType, job.RelativePath, err)
			ap.hub.Broadcast(realtime.NewUploadEvent(job.RelativePath, job.TaskType, realtime.StatusError, err.Error()))
		} else {
			ap.hub.Broadcast(realtime.NewUploadEvent(job.RelativePath, job.TaskType, realtime.StatusDone, ""))
		}

		ap.mu.Lock()
		delete(ap.pending, key)
		ap.mu.Unlock()
	}
	log.Printf("Asset worker %d stopping: job queue closed", id)
}

func (ap *AssetProcessor) process(job AssetJob) error {
	switch job.TaskType {
	case TaskThumbnail:
		fullPath, err := ap.store.GetFullPath(job.RelativePath)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return err
		}
		_, err = ap.processor.GenerateThumbnail(data, job.RelativePath, ap.thumbMaxSize)
		return err
	default:
		log.Printf("Unknown asset task type '%s' for %s", job.TaskType, job.RelativePath)
		return nil
	}
}
