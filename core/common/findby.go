package common

import (
	"gopkg.in/mgo.v2/bson"
)

func ById(id bson.ObjectId) bson.M {
	return bson.M{"_id": id}
}

// WithinID matches documents whose id is part of the list.
func WithinID(list []bson.ObjectId) bson.M {
	return bson.M{"_id": bson.M{"$in": list}}
}

// ValidID parses an hex id coming from the outside world.
func ValidID(hex string) (bson.ObjectId, bool) {
	if !bson.IsObjectIdHex(hex) {
		return "", false
	}
	return bson.ObjectIdHex(hex), true
}
