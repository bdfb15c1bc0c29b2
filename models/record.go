package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record는 XML itemList 하나를 태그 이름 -> 텍스트로 옮긴 것입니다.
// 키 순서는 삽입 순서를 유지하고, 텍스트가 없는 태그는 JSON null로 나갑니다.
type Record struct {
	keys   []string
	values map[string]*string
}

func NewRecord() *Record {
	return &Record{values: make(map[string]*string)}
}

// Set은 값을 저장합니다. 이미 있는 키는 값만 바뀌고 위치는 그대로입니다.
func (r *Record) Set(key string, value *string) {
	if r.values == nil {
		r.values = make(map[string]*string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) SetString(key, value string) {
	r.Set(key, &value)
}

// Get은 값과 키 존재 여부를 돌려줍니다. 값이 null이면 nil입니다.
func (r *Record) Get(key string) (*string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// String은 키가 없거나 null이면 빈 문자열을 돌려줍니다.
func (r *Record) String(key string) string {
	if v, ok := r.values[key]; ok && v != nil {
		return *v
	}
	return ""
}

func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int {
	return len(r.keys)
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		v := r.values[k]
		if v == nil {
			buf.WriteString("null")
			continue
		}
		vb, err := json.Marshal(*v)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON은 캐시에 저장된 레코드를 순서 그대로 복원합니다.
// 값은 문자열 또는 null만 허용합니다.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}
	*r = Record{values: make(map[string]*string)}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key %v", kt)
		}
		vt, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := vt.(type) {
		case nil:
			r.Set(key, nil)
		case string:
			r.SetString(key, v)
		default:
			return fmt.Errorf("record: unexpected value for %q: %v", key, vt)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
