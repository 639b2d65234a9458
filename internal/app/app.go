package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/olusolaa/infra-board/internal/adapters/state/tfhcl"
	"github.com/olusolaa/infra-board/internal/config"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
)

// Application runs the board engine once or on every store change.
type Application struct {
	Engine ports.BoardEngine
	Logger ports.Logger
	Config *config.Config
}

func NewApplication(engine ports.BoardEngine, logger ports.Logger, cfg *config.Config) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
		Config: cfg,
	}
}

// Run builds and reports the board once.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Debugf(ctx, "Building board...")

	board, _, err := a.Engine.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Board build failed")
		return err
	}

	a.Logger.Infof(ctx, "Board built for %d resources", len(board.Cards))
	return nil
}

// Watch reports the board, then rebuilds it whenever the store changes until
// ctx is cancelled. Failed rebuilds are logged and the watch continues.
func (a *Application) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.CodeWatchError, "failed to create file watcher")
	}
	defer watcher.Close()

	dirs, match := a.watchTarget(ctx)
	if err := watcher.Add(dirs[0]); err != nil {
		return errors.WrapUserFacing(err, errors.CodeWatchError,
			"failed to watch "+dirs[0], "Check that the store path exists and is readable.")
	}
	watched := map[string]bool{dirs[0]: true}
	a.watchMore(ctx, watcher, watched, dirs[1:])
	a.Logger.Infof(ctx, "Watching %s for changes", dirs[0])

	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		a.Logger.Warnf(ctx, "Initial build failed, waiting for changes")
	}

	debounce := a.Config.Watch.Debounce
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Debugf(ctx, "Watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New(errors.CodeWatchError, "file watcher closed unexpectedly")
			}
			if !match(ev.Name) || !relevant(ev.Op) {
				continue
			}
			a.Logger.Debugf(ctx, "Store change: %s %s", ev.Op, ev.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case werr, ok := <-watcher.Errors:
			if !ok {
				return errors.New(errors.CodeWatchError, "file watcher closed unexpectedly")
			}
			a.Logger.Warnf(ctx, "File watcher error: %v", werr)
		case <-fire:
			fire = nil
			_, changed, err := a.Engine.Run(ctx)
			switch {
			case err != nil:
				a.Logger.Errorf(ctx, err, "Rebuild failed")
			case !changed:
				a.Logger.Debugf(ctx, "Store touched but snapshot unchanged")
			default:
				a.Logger.Infof(ctx, "Board rebuilt")
			}
			if more, _ := a.watchTarget(ctx); len(more) > 1 {
				a.watchMore(ctx, watcher, watched, more[1:])
			}
		}
	}
}

// watchMore adds directories not yet watched. Failures are logged since the
// store itself reports unreadable modules on the next build.
func (a *Application) watchMore(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]bool, dirs []string) {
	for _, dir := range dirs {
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			a.Logger.Warnf(ctx, "Cannot watch module directory %s: %v", dir, err)
			continue
		}
		watched[dir] = true
		a.Logger.Debugf(ctx, "Watching module directory %s", dir)
	}
}

// watchTarget returns the directories to watch, the store's own first, and a
// filter for event paths. HCL stores add every local module directory.
// Single-file stores are watched through their parent so that editors which
// replace the file on save keep triggering events.
func (a *Application) watchTarget(ctx context.Context) ([]string, func(string) bool) {
	path := filepath.Clean(a.Config.Store.Path)
	if a.Config.Store.Type == tfhcl.ProviderTypeTFHCL {
		dirs, err := tfhcl.ModuleDirs(ctx, path, log.NewNop())
		if err != nil {
			a.Logger.Debugf(ctx, "Module directories not resolved: %v", err)
		}
		if len(dirs) == 0 {
			dirs = []string{path}
		}
		return dirs, func(name string) bool {
			return strings.HasSuffix(name, ".tf") ||
				strings.HasSuffix(name, ".tf.json") ||
				strings.HasSuffix(name, ".tfvars")
		}
	}
	return []string{filepath.Dir(path)}, func(name string) bool {
		return filepath.Clean(name) == path
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename) || op.Has(fsnotify.Remove)
}
