package remote

import (
	"bytes"
	"encoding/json"
)

// KeyMapping renombra la clave primaria entre la representación remota y la local
// (p.ej. "_id" de Mongo a "id"). Se aplica a objetos, arrays y a los arrays
// anidados listados en Nested. El resto de los campos no se toca.
type KeyMapping struct {
	Remote string
	Local  string
	Nested []string
}

// PlansKeys es el mapeo del servicio de planos.
var PlansKeys = KeyMapping{Remote: "_id", Local: "id", Nested: []string{"itens"}}

// ToLocal es idempotente. Si el objeto trae las dos claves gana la remota.
func (m KeyMapping) ToLocal(raw []byte) ([]byte, error) {
	return m.apply(raw, m.Remote, m.Local)
}

func (m KeyMapping) ToRemote(raw []byte) ([]byte, error) {
	return m.apply(raw, m.Local, m.Remote)
}

func (m KeyMapping) apply(raw []byte, from, to string) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || from == to {
		return raw, nil
	}

	switch trimmed[0] {
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, err
		}
		for i := range arr {
			mapped, err := m.apply(arr[i], from, to)
			if err != nil {
				return nil, err
			}
			arr[i] = mapped
		}
		return json.Marshal(arr)

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		if v, ok := obj[from]; ok {
			obj[to] = v
			delete(obj, from)
		}
		for _, k := range m.Nested {
			v, ok := obj[k]
			if !ok {
				continue
			}
			mapped, err := m.apply(v, from, to)
			if err != nil {
				return nil, err
			}
			obj[k] = mapped
		}
		return json.Marshal(obj)

	default:
		return raw, nil
	}
}
