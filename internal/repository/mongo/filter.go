package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// nameFilter matches field against the whole of name, ignoring case. Regex
// metacharacters in name are escaped so "New York, USA" and "St. Lucia" match literally.
func nameFilter(field, name string) bson.M {
	return bson.M{
		field: primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(name) + "$",
			Options: "i",
		},
	}
}
