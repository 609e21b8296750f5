package pdcli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/coachboard/playdiagram/lib/xmain"
)

type watcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ms   *xmain.State
	opts *options
	open bool

	compileCh chan struct{}
	// compiled receives after every compile attempt; nil outside tests.
	compiled chan error

	fw *fsnotify.Watcher

	closeOnce sync.Once
	errMu     sync.Mutex
	err       error
}

func newWatcher(ctx context.Context, ms *xmain.State, opts *options, open bool) (*watcher, error) {
	ctx, cancel := context.WithCancel(ctx)

	w := &watcher{
		ctx:    ctx,
		cancel: cancel,

		ms:   ms,
		opts: opts,
		open: open,

		compileCh: make(chan struct{}, 1),
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, err
	}
	w.fw = fw
	return w, nil
}

func (w *watcher) run() error {
	defer w.close()

	w.goFunc(w.watchLoop)
	w.goFunc(w.compileLoop)

	w.wg.Wait()
	w.close()
	if errors.Is(w.err, context.Canceled) {
		return nil
	}
	return w.err
}

func (w *watcher) close() {
	w.closeOnce.Do(func() {
		w.cancel()
		w.setErr(w.fw.Close())
	})
}

func (w *watcher) setErr(err error) {
	w.errMu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.errMu.Unlock()
}

func (w *watcher) goFunc(fn func(context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.cancel()

		err := fn(w.ctx)
		w.setErr(err)
	}()
}

// watchLoop requests a compile whenever the input changes. Editors often emit
// several events per save so events are batched until 32ms pass without one.
// The input is also polled every 10s in case an event was missed, e.g. after
// the file was replaced and the watch silently dropped.
func (w *watcher) watchLoop(ctx context.Context) error {
	lastModified, err := w.ensureAddWatch(ctx)
	if err != nil {
		return err
	}
	w.ms.Log.Info.Printf("compiling %v...", w.ms.HumanPath(w.opts.inputPath))
	w.requestCompile()

	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	pollTicker := time.NewTicker(time.Second * 10)
	defer pollTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if !mt.Equal(lastModified) {
				lastModified = mt
				w.requestCompile()
			}
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Debug.Printf("received file system event %v", ev)
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if ev.Op == fsnotify.Chmod {
				if mt.Equal(lastModified) {
					continue
				}
			}
			lastModified = mt
			eatBurstTimer.Reset(time.Millisecond * 32)
		case <-eatBurstTimer.C:
			w.ms.Log.Info.Printf("detected change in %v: recompiling...", w.ms.HumanPath(w.opts.inputPath))
			w.requestCompile()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Error.Printf("fsnotify error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) requestCompile() {
	select {
	case w.compileCh <- struct{}{}:
	default:
	}
}

// ensureAddWatch retries with backoff until the input can be watched.
func (w *watcher) ensureAddWatch(ctx context.Context) (time.Time, error) {
	interval := time.Second
	tc := time.NewTimer(0)
	<-tc.C
	for {
		mt, err := w.addWatch()
		if err == nil {
			return mt, nil
		}
		w.ms.Log.Error.Printf("failed to watch inputPath %q: %v (retrying in %v)", w.ms.HumanPath(w.opts.inputPath), err, interval)

		tc.Reset(interval)
		select {
		case <-tc.C:
			if interval < time.Second*16 {
				interval *= 2
			}
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (w *watcher) addWatch() (time.Time, error) {
	err := w.fw.Add(w.opts.inputPath)
	if err != nil {
		return time.Time{}, err
	}
	d, err := os.Stat(w.opts.inputPath)
	if err != nil {
		return time.Time{}, err
	}
	return d.ModTime(), nil
}

// compileLoop never exits on a compile error: the user is expected to fix
// the input and save again.
func (w *watcher) compileLoop(ctx context.Context) error {
	firstCompile := true
	for {
		select {
		case <-w.compileCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		recompiledPrefix := ""
		if !firstCompile {
			recompiledPrefix = "re"
		}

		_, err := compile(ctx, w.ms, w.opts)
		if err != nil {
			err = fmt.Errorf("failed to %scompile: %w", recompiledPrefix, err)
			w.ms.Log.Error.Print(err)
		}
		if w.compiled != nil {
			select {
			case w.compiled <- err:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if firstCompile {
			firstCompile = false
			if w.open && err == nil {
				openOutput(ctx, w.ms, w.opts.outputPath)
			}
		}
	}
}
