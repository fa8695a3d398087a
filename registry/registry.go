package registry

import (
	"errors"
	"fmt"

	"github.com/tuannh982/indexed-map/utils/collections"

	log "github.com/sirupsen/logrus"
)

var (
	ErrAlreadyRegistered = fmt.Errorf("component already registered: %w", collections.ErrValueExisted)
	ErrNotRegistered     = fmt.Errorf("component not registered: %w", collections.ErrValueNotExisted)
)

// Registry stores named components contiguously so that a whole frame can
// be processed by walking them in registration order, while single
// components stay reachable by name.
type Registry[C any] struct {
	name       string
	components *collections.IndexedMap[string, C]
	frame      uint64
	// log
	log *log.Entry
}

func NewRegistry[C any](name string, capacity int) *Registry[C] {
	logger := log.WithFields(log.Fields{"registry": name})
	logger.Logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	return &Registry[C]{
		name:       name,
		components: collections.NewIndexedMapWithCapacity[string, C](capacity),
		log:        logger,
	}
}

func (r *Registry[C]) SetLogger(logger *log.Logger) {
	r.log = logger.WithFields(log.Fields{"registry": r.name})
}

func (r *Registry[C]) Register(name string, c C) error {
	if err := r.components.Put(name, c, false); err != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.log.WithField("index", r.components.Size()-1).Info("component registered ", name)
	return nil
}

// Replace stores c under name, overwriting any previous component in place.
// It reports whether name was newly registered.
func (r *Registry[C]) Replace(name string, c C) bool {
	created := r.components.InsertOrAssign(name, c)
	if created {
		r.log.WithField("index", r.components.Size()-1).Info("component registered ", name)
	} else {
		r.log.Debug("component replaced ", name)
	}
	return created
}

func (r *Registry[C]) Unregister(name string) error {
	index, ok := r.components.IndexOf(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	shifted := r.components.Size() - index - 1
	r.components.Remove(name)
	r.log.WithFields(log.Fields{"index": index, "shifted": shifted}).Info("component unregistered ", name)
	return nil
}

func (r *Registry[C]) Lookup(name string) (c C, err error) {
	c, err = r.components.Get(name)
	if err != nil {
		return c, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return c, nil
}

// Component returns a handle for in-place updates. The handle must not be
// kept across Register, Replace of a new name, Unregister or Reset.
func (r *Registry[C]) Component(name string) (*C, bool) {
	return r.components.Ref(name)
}

func (r *Registry[C]) Len() int {
	return r.components.Size()
}

func (r *Registry[C]) Names() []string {
	return r.components.Keys()
}

func (r *Registry[C]) Frame() uint64 {
	return r.frame
}

// Tick runs fn over every component in registration order and advances the
// frame counter. All errors returned by fn are joined; a failing component
// does not stop the frame. fn must not register or unregister components.
func (r *Registry[C]) Tick(fn func(index int, c *C) error) error {
	var errs error
	data := r.components.Data()
	for i := range data {
		if err := fn(i, &data[i]); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	r.frame++
	r.log.WithFields(log.Fields{"frame": r.frame, "components": len(data)}).Debug("frame done")
	return errs
}

func (r *Registry[C]) Reset() {
	r.components.Clear()
	r.frame = 0
	r.log.Info("registry reset")
}
