package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/birdplot/internal/domain/model"
	"github.com/okian/birdplot/pkg/logger"
)

// Icons holds the bird pictures drawn in the chart corners, keyed by trait.
// A missing icon is simply not drawn.
type Icons map[model.Trait]image.Image

// IconPath returns the file an icon is read from: <dir>/<trait>.png in lower case.
func IconPath(dir string, t model.Trait) string {
	return filepath.Join(dir, strings.ToLower(string(t))+".png")
}

// LoadIcons reads one PNG per trait from dir. Missing files are logged and
// skipped; unreadable ones are returned as errors.
func LoadIcons(ctx context.Context, dir string, log logger.Logger) (Icons, error) {
	icons := make(Icons, len(model.Traits))
	if dir == "" {
		return icons, nil
	}
	for _, t := range model.Traits {
		path := IconPath(dir, t)
		img, err := decodeFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			if log != nil {
				log.Warn(ctx, "icon not found", logger.String("path", path))
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load icon %s: %w", path, err)
		}
		icons[t] = img
	}
	return icons, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}
