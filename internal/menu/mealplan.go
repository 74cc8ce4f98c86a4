package menu

import (
	"bytes"
	"encoding/json"
	"errors"
)

// MealPlan maps buckets to their sections, it remembers bucket order so the
// rendered json lists buckets in serving order rather than alphabetically.
type MealPlan struct {
	buckets []Bucket
	blocks  map[Bucket][]Block
}

func NewMealPlan(buckets ...Bucket) MealPlan {
	plan := MealPlan{blocks: make(map[Bucket][]Block)}
	for _, b := range buckets {
		plan.buckets = append(plan.buckets, b)
		plan.blocks[b] = []Block{}
	}
	return plan
}

// Set replaces the sections of bucket `b`, adding the bucket if it is new.
func (m *MealPlan) Set(b Bucket, blocks []Block) {
	if m.blocks == nil {
		m.blocks = make(map[Bucket][]Block)
	}
	if _, ok := m.blocks[b]; !ok {
		m.buckets = append(m.buckets, b)
	}
	if blocks == nil {
		blocks = []Block{}
	}
	m.blocks[b] = blocks
}

// Buckets returns the buckets of the plan in order.
func (m MealPlan) Buckets() []Bucket {
	return m.buckets
}

// Get returns the sections of bucket `b`.
func (m MealPlan) Get(b Bucket) []Block {
	return m.blocks[b]
}

// ItemCount is the amount of dishes across every bucket, counting repeats across buckets.
func (m MealPlan) ItemCount() int {
	n := 0
	for _, blocks := range m.blocks {
		for _, block := range blocks {
			n += len(block.Items)
		}
	}
	return n
}

func (m MealPlan) MarshalJSON() ([]byte, error) {
	var buff bytes.Buffer
	buff.WriteByte('{')
	for i, b := range m.buckets {
		if i > 0 {
			buff.WriteByte(',')
		}
		key, err := json.Marshal(string(b))
		if err != nil {
			return nil, err
		}
		buff.Write(key)
		buff.WriteByte(':')

		blocks := m.blocks[b]
		if blocks == nil {
			blocks = []Block{}
		}
		enc := json.NewEncoder(&buff)
		enc.SetEscapeHTML(false)
		err = enc.Encode(blocks)
		if err != nil {
			return nil, err
		}
		// Encode terminates each value with a newline
		buff.Truncate(buff.Len() - 1)
	}
	buff.WriteByte('}')
	return buff.Bytes(), nil
}

func (m *MealPlan) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("meal plan must be a json object")
	}

	*m = NewMealPlan()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var blocks []Block
		err = dec.Decode(&blocks)
		if err != nil {
			return err
		}
		m.Set(Bucket(key), blocks)
	}
	_, err = dec.Token()
	return err
}
