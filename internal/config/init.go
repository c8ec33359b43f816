package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const initHeader = `# blogbuilder configuration
# Values may reference environment variables as ${VAR}; .env and .env.local
# in the working directory are loaded first.
`

// Init writes an example configuration file populated with the defaults.
// An existing file is only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return ferrors.FileSystemError("cannot stat configuration file").WithCause(err).Build()
	}

	var buf bytes.Buffer
	buf.WriteString(initHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return ferrors.InternalError("cannot encode example configuration").WithCause(err).Build()
	}
	if err := enc.Close(); err != nil {
		return ferrors.InternalError("cannot encode example configuration").WithCause(err).Build()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.FileSystemError("cannot create configuration directory").WithCause(err).Build()
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return ferrors.FileSystemError("cannot write configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
