package organize

import (
	"path/filepath"
	"strconv"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/schema"
)

// SeasonDir builds the path to a season partition:
// {basePath}/{sport}/{year}.
func SeasonDir(basePath string, season domain.Season) string {
	return filepath.Join(basePath, string(season.Sport), strconv.Itoa(season.Year))
}

// FilePath builds the on-disk location for one artifact within a season.
func FilePath(basePath string, season domain.Season, key schema.FileKey) string {
	return filepath.Join(SeasonDir(basePath, season), filepath.FromSlash(key.Path()))
}
