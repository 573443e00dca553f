package media

import (
	"context"

	"github.com/rs/zerolog"
)

type UploadFunc func(ctx context.Context, f *File) (string, error)

type DeleteFunc func(ctx context.Context, url string) error

// Storage is the object store backing local-file media.
type Storage interface {
	Upload(ctx context.Context, f *File) (string, error)
	Delete(ctx context.Context, url string) error
}

// DeferredDeletes queues storage deletes issued inside a transaction so they
// only run once the transaction has committed. Its Delete method is a
// DeleteFunc.
type DeferredDeletes struct {
	del  DeleteFunc
	log  zerolog.Logger
	urls []string
}

func NewDeferredDeletes(del DeleteFunc, log zerolog.Logger) *DeferredDeletes {
	return &DeferredDeletes{del: del, log: log}
}

func (d *DeferredDeletes) Delete(_ context.Context, url string) error {
	d.urls = append(d.urls, url)
	return nil
}

func (d *DeferredDeletes) Pending() []string { return d.urls }

// Flush runs the queued deletes. Failures are logged and dropped.
func (d *DeferredDeletes) Flush(ctx context.Context) {
	for _, u := range d.urls {
		if err := d.del(ctx, u); err != nil {
			d.log.Warn().Err(err).Str("url", u).Msg("failed to delete stored file")
		}
	}
	d.urls = nil
}
