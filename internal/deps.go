package internal

import (
	"bitwise74/videogen-api/internal/service"
	"bitwise74/videogen-api/internal/store"
)

type Deps struct {
	// Store is never nil, a missing database is a *store.Unavailable
	Store     store.Store
	Generator *service.Generator

	UploadURLPrefix string
	DatabaseURLSet  bool
}

func NewDeps(s store.Store, sampleVideoURL, uploadURLPrefix string, databaseURLSet bool) *Deps {
	if s == nil {
		s = store.NewUnavailable(store.ErrNotConfigured)
	}

	if uploadURLPrefix == "" {
		uploadURLPrefix = "/uploads"
	}

	return &Deps{
		Store:           s,
		Generator:       service.NewGenerator(s, sampleVideoURL),
		UploadURLPrefix: uploadURLPrefix,
		DatabaseURLSet:  databaseURLSet,
	}
}
