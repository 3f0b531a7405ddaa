// Package addresscache loads the curated street address table, keyed by
// business name as it appears in the export's Title column.
package addresscache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Load reads the address cache JSON at path. A missing file is not an
// error: lookups are optional and the tool runs fine without curated
// addresses. Invalid JSON is fatal so a half-edited cache never silently
// produces empty streets.
func Load(path string) (map[string]string, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read address cache: %w", err)
	}

	var cache map[string]string
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, false, fmt.Errorf("parse address cache %s: %w", path, err)
	}
	if cache == nil {
		cache = map[string]string{}
	}
	return cache, true, nil
}
