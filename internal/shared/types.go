package shared

// Asynq task types
const (
	TypeArchiveScanImage = "scan:archive_image"
	TypePurgeScanArchive = "scan:purge_archive"
)

// Asynq queues
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// ArchiveScanImagePayload - ảnh scan đã upload, lưu vào object storage
// làm audit trail. Image được JSON-marshal dưới dạng base64.
type ArchiveScanImagePayload struct {
	UPC         string `json:"upc"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Image       []byte `json:"image"`
}

// PurgeScanArchivePayload - scheduled cleanup của archive cũ
type PurgeScanArchivePayload struct{}
