package media

import (
	"context"

	"orfanato-app/internal/apperr"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Processor turns attachment descriptors into media_items rows. All methods
// take the gorm handle to use so they can join the caller's transaction.
type Processor struct {
	log zerolog.Logger
}

func NewProcessor(log zerolog.Logger) *Processor {
	return &Processor{log: log}
}

// ProcessPolymorphic uploads the local files referenced by items, builds one
// row per item tagged with (targetID, targetType) and inserts them in a
// single statement. Every item is checked before anything is uploaded.
func (p *Processor) ProcessPolymorphic(
	ctx context.Context,
	tx *gorm.DB,
	items []ItemInput,
	targetID string,
	targetType TargetType,
	files map[string]*File,
	upload UploadFunc,
) ([]Item, error) {
	if len(items) == 0 {
		return []Item{}, nil
	}
	if err := checkInputs(items, files); err != nil {
		return nil, err
	}

	rows := make([]Item, 0, len(items))
	for _, in := range items {
		row, err := p.build(ctx, in, targetID, targetType, files, upload)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func checkInputs(items []ItemInput, files map[string]*File) error {
	for _, in := range items {
		if in.wantsUpload() {
			key := in.fileKey()
			if key == "" {
				return apperr.Badf("media item %q has no fieldKey", in.Title)
			}
			if _, ok := files[key]; !ok {
				return apperr.Badf("file not found for media item field %q", key)
			}
			continue
		}
		if in.URL == "" {
			return apperr.Badf("media item %q needs a url", in.Title)
		}
	}
	return nil
}

func (p *Processor) build(
	ctx context.Context,
	in ItemInput,
	targetID string,
	targetType TargetType,
	files map[string]*File,
	upload UploadFunc,
) (Item, error) {
	row := Item{
		TargetID:     targetID,
		TargetType:   targetType,
		Title:        in.Title,
		Description:  in.Description,
		MediaType:    in.MediaType,
		UploadType:   in.UploadType,
		PlatformType: in.PlatformType,
	}

	if !in.wantsUpload() {
		row.URL = in.URL
		row.IsLocalFile = false
		return row, nil
	}

	f := files[in.fileKey()]
	url, err := upload(ctx, f)
	if err != nil {
		return Item{}, err
	}
	name := f.OriginalName
	size := f.Size
	row.URL = url
	row.IsLocalFile = true
	row.OriginalName = &name
	row.Size = &size
	return row, nil
}

func (p *Processor) FindByTarget(ctx context.Context, db *gorm.DB, targetID string, targetType TargetType) ([]Item, error) {
	var items []Item
	err := db.WithContext(ctx).
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (p *Processor) FindByTargets(ctx context.Context, db *gorm.DB, targetIDs []string, targetType TargetType) ([]Item, error) {
	if len(targetIDs) == 0 {
		return []Item{}, nil
	}
	var items []Item
	err := db.WithContext(ctx).
		Where("target_id IN ? AND target_type = ?", targetIDs, targetType).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// DeleteItems removes the stored file behind every local item through del,
// ignoring failures, then deletes all rows in one statement.
func (p *Processor) DeleteItems(ctx context.Context, tx *gorm.DB, items []Item, del DeleteFunc) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
		if !it.IsLocalFile || it.URL == "" {
			continue
		}
		if err := del(ctx, it.URL); err != nil {
			p.log.Warn().Err(err).Str("media_id", it.ID).Str("url", it.URL).Msg("failed to delete media file")
		}
	}
	return tx.WithContext(ctx).Where("id IN ?", ids).Delete(&Item{}).Error
}

// Sync reconciles the stored items of one target with an update payload:
// rows whose id is missing from incoming are deleted, rows referenced by id
// are merged and inputs without id are created.
func (p *Processor) Sync(
	ctx context.Context,
	tx *gorm.DB,
	existing []Item,
	incoming []ItemInput,
	targetID string,
	targetType TargetType,
	files map[string]*File,
	upload UploadFunc,
	del DeleteFunc,
) ([]Item, error) {
	byID := make(map[string]Item, len(existing))
	for _, it := range existing {
		byID[it.ID] = it
	}

	var fresh []ItemInput
	kept := make(map[string]bool)
	out := make([]Item, 0, len(incoming))

	for _, in := range incoming {
		if in.ID == "" {
			fresh = append(fresh, in)
			continue
		}
		cur, ok := byID[in.ID]
		if !ok {
			return nil, apperr.Badf("media item %s does not belong to this %s", in.ID, targetType)
		}
		kept[in.ID] = true

		updated, err := p.merge(ctx, tx, cur, in, files, upload, del)
		if err != nil {
			return nil, err
		}
		out = append(out, updated)
	}

	var stale []Item
	for _, it := range existing {
		if !kept[it.ID] {
			stale = append(stale, it)
		}
	}
	if err := p.DeleteItems(ctx, tx, stale, del); err != nil {
		return nil, err
	}

	created, err := p.ProcessPolymorphic(ctx, tx, fresh, targetID, targetType, files, upload)
	if err != nil {
		return nil, err
	}
	return append(out, created...), nil
}

func (p *Processor) merge(
	ctx context.Context,
	tx *gorm.DB,
	cur Item,
	in ItemInput,
	files map[string]*File,
	upload UploadFunc,
	del DeleteFunc,
) (Item, error) {
	cur.Title = in.Title
	cur.Description = in.Description
	if in.MediaType != "" {
		cur.MediaType = in.MediaType
	}
	if in.PlatformType != nil {
		cur.PlatformType = in.PlatformType
	}

	oldURL, oldLocal := cur.URL, cur.IsLocalFile

	switch {
	case in.wantsUpload():
		f, ok := files[in.fileKey()]
		if !ok {
			// no new file: keep the stored one
			break
		}
		url, err := upload(ctx, f)
		if err != nil {
			return Item{}, err
		}
		name, size := f.OriginalName, f.Size
		cur.URL, cur.IsLocalFile, cur.UploadType = url, true, UploadTypeUpload
		cur.OriginalName, cur.Size = &name, &size
	case in.UploadType == UploadTypeLink && in.URL != "":
		cur.URL, cur.IsLocalFile, cur.UploadType = in.URL, false, UploadTypeLink
		cur.OriginalName, cur.Size = nil, nil
	}

	if oldLocal && oldURL != cur.URL {
		if err := del(ctx, oldURL); err != nil {
			p.log.Warn().Err(err).Str("media_id", cur.ID).Str("url", oldURL).Msg("failed to delete replaced media file")
		}
	}

	if err := tx.WithContext(ctx).Save(&cur).Error; err != nil {
		return Item{}, err
	}
	return cur, nil
}
