package upstream

// Origin indica de dónde salieron los datos de una lectura.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Listing es el resultado de un List sobre un repositorio remoto.
// Cause solo está seteado cuando Origin == OriginFallback.
type Listing[T any] struct {
	Items  []T
	Origin Origin
	Cause  error
}

func Live[T any](items []T) Listing[T] {
	if items == nil {
		items = []T{}
	}
	return Listing[T]{Items: items, Origin: OriginLive}
}

func Fallback[T any](items []T, cause error) Listing[T] {
	if items == nil {
		items = []T{}
	}
	return Listing[T]{Items: items, Origin: OriginFallback, Cause: cause}
}

func (l Listing[T]) FromFallback() bool {
	return l.Origin == OriginFallback
}
