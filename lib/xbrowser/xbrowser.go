// Package xbrowser opens rendered output for the user, honoring $BROWSER.
package xbrowser

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/pkg/browser"
	"oss.terrastruct.com/xos"
)

// OpenURL opens url with $BROWSER when set, otherwise with the system default.
// A $BROWSER of 0 disables opening entirely.
func OpenURL(ctx context.Context, env *xos.Env, url string) error {
	browserEnv := env.Getenv("BROWSER")
	switch browserEnv {
	case "":
		return browser.OpenURL(url)
	case "0":
		return nil
	}
	browserSh := fmt.Sprintf("%s '$1'", browserEnv)
	cmd := exec.CommandContext(ctx, "sh", "-c", browserSh, "--", url)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run %v (out: %q): %w", cmd.Args, out, err)
	}
	return nil
}

// OpenFile opens a local file such as a rendered diagram.
func OpenFile(ctx context.Context, env *xos.Env, fp string) error {
	abs, err := filepath.Abs(fp)
	if err != nil {
		return err
	}
	if env.Getenv("BROWSER") != "" {
		return OpenURL(ctx, env, "file://"+filepath.ToSlash(abs))
	}
	return browser.OpenFile(abs)
}
