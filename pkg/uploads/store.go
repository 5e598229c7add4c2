package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"flyaway/pkg/utils"
)

// URLPrefix is the prefix every stored reference starts with. References
// are served relative paths, never absolute filesystem paths.
const URLPrefix = "/uploads"

// Store is the file storage boundary for trip images, activity images and
// avatars. Delete tolerates missing files so that callers can garbage
// collect references without caring whether the backing file survived.
type Store interface {
	Save(data []byte, originalName string, area string) (string, error)
	Delete(ref string) error
}

type localStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) Store {
	return &localStore{baseDir: baseDir}
}

func (s *localStore) Save(data []byte, originalName string, area string) (string, error) {
	dir := s.baseDir
	prefix := URLPrefix
	if area != "" {
		dir = filepath.Join(dir, area)
		prefix = URLPrefix + "/" + area
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Millisecond timestamp plus a uuid fragment keeps names unique even
	// for concurrent uploads of the same file.
	name := fmt.Sprintf("%d-%s-%s",
		time.Now().UnixMilli(),
		uuid.New().String()[:8],
		sanitizeName(originalName))

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}
	return prefix + "/" + name, nil
}

func (s *localStore) Delete(ref string) error {
	rel, ok := strings.CutPrefix(ref, URLPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return utils.ErrInvalidInput
	}

	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "file"
	}
	return name
}
