package storage

import (
	"fmt"

	"github.com/fitchallenge/backend/config"
)

// NewAdapter returns the upload adapter selected by cfg.Backend.
func NewAdapter(cfg config.StorageConfigs) (Adapter, error) {
	switch cfg.Backend {
	case "s3":
		adapter, err := NewS3Adapter(cfg)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case "media":
		return NewMediaAdapter(cfg), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
