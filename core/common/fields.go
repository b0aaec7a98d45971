package common

import (
	"time"

	"gopkg.in/mgo.v2/bson"
)

// Raw documents come back from joins in whatever shape the persistence layer
// kept them; readers below never fail on missing or mistyped fields.

func ObjectID(doc bson.M, key string) bson.ObjectId {
	if doc == nil {
		return ""
	}
	switch v := doc[key].(type) {
	case bson.ObjectId:
		return v
	case string:
		if bson.IsObjectIdHex(v) {
			return bson.ObjectIdHex(v)
		}
	}
	return ""
}

func IDList(doc bson.M, key string) []bson.ObjectId {
	if doc == nil {
		return nil
	}
	switch v := doc[key].(type) {
	case []bson.ObjectId:
		return v
	case []interface{}:
		list := make([]bson.ObjectId, 0, len(v))
		for _, item := range v {
			if id, ok := item.(bson.ObjectId); ok {
				list = append(list, id)
			}
		}
		return list
	}
	return nil
}

// Len of an array field, zero when absent or not an array.
func Len(doc bson.M, key string) int {
	if doc == nil {
		return 0
	}
	switch v := doc[key].(type) {
	case []interface{}:
		return len(v)
	case []bson.ObjectId:
		return len(v)
	case []string:
		return len(v)
	case []int:
		return len(v)
	}
	return 0
}

func Ints(value interface{}) ([]int, bool) {
	switch v := value.(type) {
	case []int:
		return v, true
	case []interface{}:
		list := make([]int, 0, len(v))
		for _, item := range v {
			n, ok := Int(item)
			if !ok {
				return nil, false
			}
			list = append(list, n)
		}
		return list, true
	}
	return nil, false
}

func Int(value interface{}) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func String(doc bson.M, key string) string {
	if doc == nil {
		return ""
	}
	s, _ := doc[key].(string)
	return s
}

func Bool(doc bson.M, key string) bool {
	if doc == nil {
		return false
	}
	b, _ := doc[key].(bool)
	return b
}

func Time(doc bson.M, key string) time.Time {
	if doc == nil {
		return time.Time{}
	}
	t, _ := doc[key].(time.Time)
	return t
}

// Sub returns an embedded document or nil.
func Sub(doc bson.M, key string) bson.M {
	if doc == nil {
		return nil
	}
	switch v := doc[key].(type) {
	case bson.M:
		return v
	case map[string]interface{}:
		return bson.M(v)
	}
	return nil
}

// Copy is a shallow copy, enough to decorate without touching the source.
func Copy(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// ToDoc converts a typed model into its raw stored shape.
func ToDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	err = bson.Unmarshal(raw, &doc)
	return doc, err
}

// FromDoc decodes a raw document into a typed model.
func FromDoc(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
