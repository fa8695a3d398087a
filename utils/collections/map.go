package collections

// Map is a keyed container with fallible accessors.
// Put with forced=false refuses to overwrite and returns ErrValueExisted,
// Get and Delete return ErrValueNotExisted for absent keys.
type Map[K any, V any] interface {
	Contains(k K) bool
	Put(k K, v V, forced bool) error
	Get(k K) (V, error)
	Delete(k K) error
	Size() int
	Keys() []K
	Values() []V
}
