package series

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TimeSeries maps date strings to price records and remembers insertion
// order. Encoding and decoding keep the document order of the keys.
type TimeSeries struct {
	keys    []string
	records map[string]PriceRecord
}

func NewTimeSeries() *TimeSeries {
	return &TimeSeries{records: make(map[string]PriceRecord)}
}

// Set inserts or replaces the record for date. A replaced key keeps its
// original position.
func (ts *TimeSeries) Set(date string, r PriceRecord) {
	if ts.records == nil {
		ts.records = make(map[string]PriceRecord)
	}
	if _, ok := ts.records[date]; !ok {
		ts.keys = append(ts.keys, date)
	}
	ts.records[date] = r
}

func (ts *TimeSeries) Get(date string) (PriceRecord, bool) {
	if ts == nil {
		return PriceRecord{}, false
	}
	r, ok := ts.records[date]
	return r, ok
}

func (ts *TimeSeries) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.keys)
}

func (ts *TimeSeries) Keys() []string {
	if ts == nil {
		return nil
	}
	out := make([]string, len(ts.keys))
	copy(out, ts.keys)
	return out
}

func (ts *TimeSeries) Each(fn func(date string, r PriceRecord)) {
	if ts == nil {
		return
	}
	for _, k := range ts.keys {
		fn(k, ts.records[k])
	}
}

func (ts *TimeSeries) Clone() *TimeSeries {
	if ts == nil {
		return nil
	}
	cp := &TimeSeries{
		keys:    make([]string, len(ts.keys)),
		records: make(map[string]PriceRecord, len(ts.records)),
	}
	copy(cp.keys, ts.keys)
	for k, v := range ts.records {
		cp.records[k] = v
	}
	return cp
}

func (ts *TimeSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range ts.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(ts.records[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ts *TimeSeries) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("time series: expected object, got %v", tok)
	}

	ts.keys = nil
	ts.records = make(map[string]PriceRecord)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := tok.(string)
		if !ok {
			return fmt.Errorf("time series: expected date key, got %v", tok)
		}
		var r PriceRecord
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("time series %s: %w", date, err)
		}
		ts.Set(date, r)
	}
	_, err = dec.Token()
	return err
}

func (ts *TimeSeries) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range ts.keys {
		val := &yaml.Node{}
		if err := val.Encode(ts.records[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			val,
		)
	}
	return node, nil
}

func (ts *TimeSeries) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("time series: expected mapping at line %d", value.Line)
	}

	ts.keys = nil
	ts.records = make(map[string]PriceRecord)
	for i := 0; i+1 < len(value.Content); i += 2 {
		date := value.Content[i].Value
		var r PriceRecord
		if err := value.Content[i+1].Decode(&r); err != nil {
			return fmt.Errorf("time series %s: %w", date, err)
		}
		ts.Set(date, r)
	}
	return nil
}
