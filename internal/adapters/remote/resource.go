// Package remote implementa los repositorios de cada entidad sobre los
// microservicios. Las lecturas degradan a datos de fallback; las escrituras no.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/platform/logger"
	"nutriplan-dashboard/internal/ports/upstream"
)

var (
	// ErrNoData: el servicio respondió 2xx sin cuerpo o con null donde se esperaba un registro.
	ErrNoData = errors.New("remote: upstream returned no data")

	// ErrNoValidRecords: la colección traía elementos pero ninguno se pudo leer.
	ErrNoValidRecords = errors.New("remote: no record in the collection could be decoded")
)

// Caller es el subconjunto de *httpclient.Client que usan los repositorios.
type Caller interface {
	Call(ctx context.Context, svc httpclient.Service, path string, opts httpclient.Options) httpclient.Result
}

type FallbackRecorder interface {
	Fallback(source, op string)
}

type Options struct {
	Logger   logger.Logger
	Recorder FallbackRecorder
}

type resource[T any] struct {
	caller Caller
	svc    httpclient.Service
	source string
	keys   *KeyMapping
	log    logger.Logger
	rec    FallbackRecorder
}

func newResource[T any](c Caller, svc httpclient.Service, source string, keys *KeyMapping, opts Options) resource[T] {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return resource[T]{
		caller: c,
		svc:    svc,
		source: source,
		keys:   keys,
		log:    log.With(map[string]any{"component": "remote", "source": source}),
		rec:    opts.Recorder,
	}
}

// list devuelve los datos vivos tal cual (un [] es un resultado real) o,
// si la llamada falla, fallback filtrado con keep.
func (r resource[T]) list(ctx context.Context, path string, q url.Values, fallback []T, keep func(T) bool) (upstream.Listing[T], error) {
	res := r.caller.Call(ctx, r.svc, path, httpclient.Options{Query: q})
	if err := ctx.Err(); err != nil {
		return upstream.Listing[T]{}, err
	}

	var cause error
	switch {
	case res.Empty():
		return upstream.Live[T](nil), nil
	case res.OK():
		items, err := r.decodeList(res.Body)
		if err != nil {
			cause = err
			break
		}
		return upstream.Live(items), nil
	default:
		cause = res.Err
	}

	r.fellBack("list", cause)
	return upstream.Fallback(filter(fallback, keep), cause), nil
}

// get busca en vivo y, si no hay dato, en el fallback con lookup.
// Sin registro en ningún lado devuelve notFound envolviendo la causa.
func (r resource[T]) get(ctx context.Context, path string, lookup func() (T, bool), notFound error) (T, upstream.Origin, error) {
	var zero T

	res := r.caller.Call(ctx, r.svc, path, httpclient.Options{})
	if err := ctx.Err(); err != nil {
		return zero, "", err
	}

	var cause error
	switch {
	case res.OK():
		var v T
		if err := r.decode(res.Body, &v); err != nil {
			cause = err
			break
		}
		return v, upstream.OriginLive, nil
	case res.Empty():
		cause = ErrNoData
	default:
		cause = res.Err
	}

	if v, ok := lookup(); ok {
		r.fellBack("get", cause)
		return v, upstream.OriginFallback, nil
	}
	return zero, "", fmt.Errorf("%w: %w", notFound, cause)
}

// write hace POST/PUT. Nunca usa fallback.
func (r resource[T]) write(ctx context.Context, method, path string, body any) (T, error) {
	var zero T

	res := r.caller.Call(ctx, r.svc, path, httpclient.Options{Method: method, Body: body})
	if res.Failed() {
		return zero, res.Err
	}
	if res.Empty() {
		return zero, ErrNoData
	}

	var v T
	if err := r.decode(res.Body, &v); err != nil {
		return zero, err
	}
	return v, nil
}

// remove acepta 2xx con o sin cuerpo.
func (r resource[T]) remove(ctx context.Context, path string) error {
	res := r.caller.Call(ctx, r.svc, path, httpclient.Options{Method: http.MethodDelete})
	if res.Failed() {
		return res.Err
	}
	return nil
}

func (r resource[T]) decode(raw []byte, out any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ErrNoData
	}
	if r.keys != nil {
		mapped, err := r.keys.ToLocal(raw)
		if err != nil {
			return fmt.Errorf("remote: map keys: %w", err)
		}
		raw = mapped
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("remote: decode %s: %w", r.source, err)
	}
	return nil
}

// decodeList decodifica elemento por elemento: un registro con tipos
// inesperados se descarta (y se loguea) sin perder el resto. Solo un cuerpo
// que no es un array, o un array sin ningún registro legible, es un fallo.
func (r resource[T]) decodeList(raw []byte) ([]T, error) {
	var elems []json.RawMessage
	if err := r.decode(raw, &elems); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(elems))
	dropped := 0
	for i, el := range elems {
		if bytes.Equal(bytes.TrimSpace(el), []byte("null")) {
			dropped++
			continue
		}
		var v T
		if err := json.Unmarshal(el, &v); err != nil {
			dropped++
			r.log.Warn("dropping undecodable record", map[string]any{"index": i, "error": err})
			continue
		}
		items = append(items, v)
	}

	if len(items) == 0 && dropped > 0 {
		return nil, fmt.Errorf("%w: %d dropped", ErrNoValidRecords, dropped)
	}
	return items, nil
}

func (r resource[T]) fellBack(op string, cause error) {
	r.log.Warn("serving fallback data", map[string]any{"op": op, "error": cause})
	if r.rec != nil {
		r.rec.Fallback(r.source, op)
	}
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func find[T any](in []T, match func(T) bool) (T, bool) {
	for _, v := range in {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func segment(id string) string {
	return url.PathEscape(id)
}
