package source

import (
	"bytes"
	"encoding/json"
)

// object is a JSON object that keeps its field order when marshalled.
// The normalizer reads temperature zones in document order, so zones must
// not be re-sorted the way encoding/json sorts map keys.
type object []field

type field struct {
	key string
	val interface{}
}

func (o object) with(key string, val interface{}) object {
	return append(o, field{key, val})
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// failure is the backend's shape for a sub-reading that could not be read.
func failure(reason string) object {
	return object{{"error", reason}}
}
