// Package pagesvc carries the dependencies and transaction plumbing shared
// by the content page services.
package pagesvc

import (
	"context"

	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/route"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Deps struct {
	DB      *gorm.DB
	Media   *media.Processor
	Routes  *route.Service
	Storage media.Storage
	Log     zerolog.Logger
}

// Create runs fn in one transaction. Failures that are not already typed
// surface as RULE 400 carrying the inner message.
//
// Files uploaded by fn before a failure stay in storage.
func (d Deps) Create(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return apperr.AsBadRequest(d.DB.WithContext(ctx).Transaction(fn))
}

// Mutate runs fn in one transaction and hands it a DeleteFunc whose storage
// deletes only run once the transaction has committed.
func (d Deps) Mutate(ctx context.Context, fn func(tx *gorm.DB, del media.DeleteFunc) error) error {
	q := media.NewDeferredDeletes(d.Storage.Delete, d.Log)
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, q.Delete)
	})
	if err != nil {
		return err
	}
	q.Flush(context.WithoutCancel(ctx))
	return nil
}

// AttachRoute creates the route of a freshly inserted entity and stores its
// id in the entity's route_id column. Loaded associations of model are not
// written back.
func (d Deps) AttachRoute(ctx context.Context, tx *gorm.DB, model any, a route.Attach) (*route.Route, error) {
	r, err := d.Routes.AttachWithTx(ctx, tx, a)
	if err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(model).Omit(clause.Associations).Update("route_id", r.ID).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// SyncRoute applies p to the entity's route, creating one from a when the
// entity has none yet.
func (d Deps) SyncRoute(ctx context.Context, tx *gorm.DB, model any, routeID *string, p route.Patch, a route.Attach) (*route.Route, error) {
	if routeID == nil || *routeID == "" {
		return d.AttachRoute(ctx, tx, model, a)
	}
	return d.Routes.Upsert(ctx, tx, *routeID, p)
}

// DetachRoute clears the entity's route_id and removes every route pointing
// at the entity.
func (d Deps) DetachRoute(ctx context.Context, tx *gorm.DB, model any, routeID *string, entityType, entityID string) error {
	if routeID != nil {
		if err := tx.WithContext(ctx).Model(model).Omit(clause.Associations).Update("route_id", nil).Error; err != nil {
			return err
		}
		if err := d.Routes.Remove(ctx, tx, *routeID); err != nil {
			return err
		}
	}
	return d.Routes.RemoveByEntity(ctx, tx, entityType, entityID)
}

// Upload is the storage upload used inside create and update flows.
func (d Deps) Upload(ctx context.Context, f *media.File) (string, error) {
	return d.Storage.Upload(ctx, f)
}

func ptr[T any](v T) *T { return &v }

// RoutePatch builds the route patch for an entity rename or visibility change.
func RoutePatch(title, description string, public *bool) route.Patch {
	return route.Patch{Title: ptr(title), Description: ptr(description), Public: public}
}
