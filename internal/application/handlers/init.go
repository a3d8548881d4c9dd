package handlers

import (
	"context"
	"fmt"

	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/config"
)

// StorageOpener opens the storage of a book.
type StorageOpener func(ctx context.Context, cfg *config.Config, book string) (ports.Storage, error)

// InitHandler handles the creation of the lms configuration.
type InitHandler struct {
	open StorageOpener
}

// NewInitHandler creates a new init handler.
func NewInitHandler(open StorageOpener) *InitHandler {
	return &InitHandler{
		open: open,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	DataDir    string
	Backend    string
}

// Handle writes the default configuration and prepares the storage of the default book.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("lms already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if h.open != nil {
		storage, err := h.open(ctx, cfg, config.DefaultBook)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		if err := storage.Close(); err != nil {
			return nil, fmt.Errorf("closing storage: %w", err)
		}
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		DataDir:    cfg.Storage.Dir,
		Backend:    cfg.Storage.Backend,
	}, nil
}
