package transport

import (
	"context"
	"errors"
	"fmt"
	"os"

	"accessiai/internal/common"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// MaxImportSize bounds the settings file accepted by ReadImport.
const MaxImportSize = 1 << 20

var (
	ErrNoFileSelected = errors.New("no file selected")
	ErrImportTooLarge = errors.New("import file too large")
)

var jsonFilters = []wailsruntime.FileFilter{
	{
		DisplayName: "Settings Files (*.json)",
		Pattern:     "*.json",
	},
}

type dialogsHandler struct {
	ctx context.Context
}

func NewDialogsHandler(ctx context.Context) DialogHandler {
	return &dialogsHandler{
		ctx: ctx,
	}
}

func (h *dialogsHandler) ChooseExportPath() (string, error) {
	return wailsruntime.SaveFileDialog(h.ctx, wailsruntime.SaveDialogOptions{
		Title:           "Export accessibility settings",
		DefaultFilename: common.ExportFileName,
		Filters:         jsonFilters,
	})
}

func (h *dialogsHandler) ChooseImportPath() (string, error) {
	return wailsruntime.OpenFileDialog(h.ctx, wailsruntime.OpenDialogOptions{
		Title:   "Import accessibility settings",
		Filters: jsonFilters,
	})
}

// WriteExport writes an exported settings document to path.
func WriteExport(path string, data []byte) error {
	if path == "" {
		return ErrNoFileSelected
	}
	if err := os.WriteFile(path, data, common.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}

// ReadImport reads a settings document from path.
func ReadImport(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrNoFileSelected
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read import %s: %w", path, err)
	}
	if info.Size() > MaxImportSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrImportTooLarge, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import %s: %w", path, err)
	}
	return data, nil
}
