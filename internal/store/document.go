// Package store persists user documents in Firestore-style collections.
//
// A collection is a path like "users/{uid}/planned"; documents are flat
// JSON objects keyed by ID within their collection. Subcollections share
// a key prefix with their parent but are distinct collections.
package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Document is a schemaless document. Unknown fields round-trip untouched.
type Document map[string]any

// serverTimestampSentinel marks a field to be resolved to the store's
// wall clock at write time.
type serverTimestampSentinel struct{}

// ServerTimestamp is a sentinel value. Assign it to a Document field in
// Set or Update and the store replaces it with the current UTC time.
var ServerTimestamp = serverTimestampSentinel{}

// UsersCollection holds per-user profile documents keyed by user ID.
const UsersCollection = "users"

// UserListPath returns the collection path for one of a user's title lists.
func UserListPath(userID, list string) string {
	return "users/" + userID + "/" + list
}

// UserHistoryPath returns the collection path for a user's activity history.
func UserHistoryPath(userID string) string {
	return "users/" + userID + "/history"
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// StringField returns the named field as a string.
func (d Document) StringField(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// FloatField returns the named field as a float64, converting integer kinds.
func (d Document) FloatField(key string) (float64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// TimeField returns the named field as a time.Time. Timestamps are stored
// as RFC 3339 strings; in-memory values may still be time.Time.
func (d Document) TimeField(key string) (time.Time, bool) {
	v, ok := d[key]
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// resolveTimestamps returns a copy of doc with every ServerTimestamp
// sentinel replaced by now, formatted as RFC 3339.
func resolveTimestamps(doc Document, now func() time.Time) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if _, ok := v.(serverTimestampSentinel); ok {
			out[k] = now().UTC().Format(time.RFC3339Nano)
			continue
		}
		out[k] = v
	}
	return out
}

// sortDocuments orders docs by the named field. Documents missing the
// field sort first in ascending order. The sort is stable.
func sortDocuments(docs []Document, orderBy string, dir Direction) {
	if orderBy == "" {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		cmp := compareValues(docs[i][orderBy], docs[j][orderBy])
		if dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareValues compares two document field values. Numbers compare
// numerically, RFC 3339 strings compare as instants, everything else
// compares as text. Nil sorts before any value.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		at, aerr := time.Parse(time.RFC3339Nano, as)
		bt, berr := time.Parse(time.RFC3339Nano, bs)
		if aerr == nil && berr == nil {
			return at.Compare(bt)
		}
		return strings.Compare(as, bs)
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
