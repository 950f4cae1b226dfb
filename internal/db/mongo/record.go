package mongo

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/campusdir/internal/db"
)

// record is the stored shape of a document. Body keeps the JSON verbatim so opaque values
// (keys like "$date" included) come back unchanged; Fields mirrors the top-level string
// fields for server-side equality filters.
type record struct {
	Path   string            `bson:"_id"`
	Parent string            `bson:"parent"`
	DocID  string            `bson:"doc_id"`
	Body   string            `bson:"body"`
	Fields map[string]string `bson:"fields"`
}

func newRecord(ref db.DocRef, data []byte) (record, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return record{}, &db.Error{Op: db.OpDecode, Path: ref.Path(), Err: err}
	}

	fields := make(map[string]string, len(top))
	for k, v := range top {
		if strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil {
			fields[k] = s
		}
	}

	return record{
		Path:   ref.Path(),
		Parent: ref.Parent().Parent(),
		DocID:  ref.ID(),
		Body:   string(data),
		Fields: fields,
	}, nil
}

func (r record) document() db.Document {
	return db.Document{ID: r.DocID, Data: []byte(r.Body)}
}

func listFilter(col db.CollectionRef, filters []db.Filter) bson.M {
	f := bson.M{"parent": col.Parent()}
	for _, flt := range filters {
		f["fields."+flt.Field] = flt.Value
	}
	return f
}
