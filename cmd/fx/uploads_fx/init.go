package uploads_fx

import (
	"os"

	"go.uber.org/fx"

	"flyaway/pkg/uploads"
)

var Module = fx.Provide(
	provideStore)

func provideStore() uploads.Store {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return uploads.NewLocalStore(dir)
}
