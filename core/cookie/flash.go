package cookie

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// flashPrefix namespaces flash cookies away from regular ones.
const flashPrefix = "__flash_"

// SetFlash stores a one-time value as an encrypted cookie. The value is
// JSON-encoded, so anything json.Marshal accepts works.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash value: %w", err)
	}
	return m.SetEncrypted(w, flashPrefix+key, string(data))
}

// GetFlash reads a flash value into dest and expires the cookie, so a
// second read returns ErrCookieNotFound. The cookie is expired even when
// decoding into dest fails.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key

	data, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}

	m.Delete(w, name)

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshal flash value: %w", err)
	}
	return nil
}
