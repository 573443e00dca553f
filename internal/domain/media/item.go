package media

import (
	"orfanato-app/internal/domain/base"
)

type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
	MediaAudio    MediaType = "audio"
)

type UploadType string

const (
	UploadTypeUpload UploadType = "upload"
	UploadTypeLink   UploadType = "link"
)

type PlatformType string

const (
	PlatformYouTube     PlatformType = "youtube"
	PlatformGoogleDrive PlatformType = "googledrive"
	PlatformOneDrive    PlatformType = "onedrive"
	PlatformDropbox     PlatformType = "dropbox"
	PlatformAny         PlatformType = "ANY"
)

// TargetType tags the owner of a media row. Owners are not foreign keys;
// (TargetID, TargetType) identifies them.
type TargetType string

const (
	TargetVideosPage   TargetType = "VideosPage"
	TargetImageSection TargetType = "ImageSection"
	TargetIdeasSection TargetType = "IdeasSection"
	TargetDocument     TargetType = "Document"
	TargetMeditation   TargetType = "Meditation"
	TargetEvent        TargetType = "Event"
	TargetInformative  TargetType = "Informative"
)

type Item struct {
	base.Model

	TargetID   string     `gorm:"type:uuid;not null;index:idx_media_items_target,priority:1" json:"targetId"`
	TargetType TargetType `gorm:"type:varchar(40);not null;index:idx_media_items_target,priority:2" json:"targetType"`

	Title       string `gorm:"not null;default:''" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`

	MediaType    MediaType     `gorm:"type:varchar(20);not null" json:"mediaType"`
	UploadType   UploadType    `gorm:"type:varchar(20);not null" json:"uploadType"`
	PlatformType *PlatformType `gorm:"type:varchar(20)" json:"platformType,omitempty"`

	URL          string  `gorm:"type:text;not null" json:"url"`
	IsLocalFile  bool    `gorm:"not null;default:false" json:"isLocalFile"`
	OriginalName *string `json:"originalName,omitempty"`
	Size         *int64  `json:"size,omitempty"`
}

func (Item) TableName() string { return "media_items" }

// ItemInput describes one attachment in a create/update payload. Upload items
// point at a multipart file part through FieldKey (or the legacy FileField).
type ItemInput struct {
	ID           string        `json:"id,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	MediaType    MediaType     `json:"mediaType" binding:"required,oneof=image video document audio"`
	UploadType   UploadType    `json:"uploadType" binding:"required,oneof=upload link"`
	PlatformType *PlatformType `json:"platformType,omitempty" binding:"omitempty,oneof=youtube googledrive onedrive dropbox ANY"`
	URL          string        `json:"url,omitempty"`
	IsLocalFile  bool          `json:"isLocalFile"`
	FieldKey     string        `json:"fieldKey,omitempty"`
	FileField    string        `json:"fileField,omitempty"`
	OriginalName string        `json:"originalName,omitempty"`
	Size         int64         `json:"size,omitempty"`
}

func (in ItemInput) fileKey() string {
	if in.FieldKey != "" {
		return in.FieldKey
	}
	return in.FileField
}

func (in ItemInput) wantsUpload() bool {
	return in.UploadType == UploadTypeUpload && in.IsLocalFile
}

// File is an uploaded multipart part held in memory.
type File struct {
	FieldName    string
	OriginalName string
	ContentType  string
	Size         int64
	Data         []byte
}

// GroupByTarget indexes items by their owner id.
func GroupByTarget(items []Item) map[string][]Item {
	out := make(map[string][]Item)
	for _, it := range items {
		out[it.TargetID] = append(out[it.TargetID], it)
	}
	return out
}
