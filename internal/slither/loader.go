package slither

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xab-mack/reguard/internal/cache"
	"github.com/xab-mack/reguard/internal/model"
)

// ErrLoad means the engine could not parse/compile the target project or
// produced output this loader does not understand.
var ErrLoad = errors.New("slither: project load failed")

type Options struct {
	// Path to the slither binary; defaults to "slither" on PATH.
	SlitherPath string
	// Args passed after the target directory; defaults to the JSON
	// function-summary printer.
	Args []string
}

// LoadProject runs the slither engine against a project directory and
// normalizes its JSON output into the read-only contract model.
// Output is cached by project content so unchanged projects skip the engine.
func LoadProject(ctx context.Context, path string, opts Options) (*model.Project, error) {
	bin := opts.SlitherPath
	if bin == "" {
		bin = "slither"
	}
	args := opts.Args
	if len(args) == 0 {
		args = []string{"--print", "function-summary", "--json", "-"}
	}
	abs, _ := filepath.Abs(path)

	key := cache.Key("slither-model-v1", bin, strings.Join(args, " "), abs, projectFingerprint(abs))
	if cached, ok := cache.Load(key); ok {
		if proj, err := normalize(cached); err == nil {
			return proj, nil
		}
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{abs}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrLoad, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	proj, err := normalize(out)
	if err != nil {
		return nil, err
	}
	_ = cache.Store(key, out)
	return proj, nil
}

// projectFingerprint hashes the Solidity sources under root for cache keying.
func projectFingerprint(root string) string {
	var parts []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) != ".sol" {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		parts = append(parts, path, string(b))
		return nil
	})
	return cache.Key(parts...)
}
