package common

import (
	"gopkg.in/mgo.v2/bson"
)

// IDSet is a lookup set of object ids.
type IDSet map[bson.ObjectId]struct{}

func NewIDSet(list ...bson.ObjectId) IDSet {
	set := make(IDSet, len(list))
	for _, id := range list {
		set[id] = struct{}{}
	}
	return set
}

// Has is safe on a nil set.
func (s IDSet) Has(id bson.ObjectId) bool {
	if len(s) == 0 || !id.Valid() {
		return false
	}
	_, exists := s[id]
	return exists
}

func (s IDSet) Add(id bson.ObjectId) {
	s[id] = struct{}{}
}

func (s IDSet) List() []bson.ObjectId {
	list := make([]bson.ObjectId, 0, len(s))
	for id := range s {
		list = append(list, id)
	}
	return list
}

// DocsMap indexes raw documents by their _id.
type DocsMap map[bson.ObjectId]bson.M

func MapDocs(list []bson.M) DocsMap {
	m := make(DocsMap, len(list))
	for _, doc := range list {
		if id := ObjectID(doc, "_id"); id.Valid() {
			m[id] = doc
		}
	}
	return m
}
