package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/process-hub/internal/domain/repository"
)

func TestTimeLogQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, timeLogQuery(repository.TimeLogFilter{}))

	q := timeLogQuery(repository.TimeLogFilter{StartDate: "2026-03-01", EndDate: "2026-03-31", UserID: "u1"})
	assert.Equal(t, "u1", q["userId"])
	assert.Equal(t, bson.M{"$gte": "2026-03-01", "$lte": "2026-03-31"}, q["date"])

	q = timeLogQuery(repository.TimeLogFilter{EndDate: "2026-03-31"})
	assert.Equal(t, bson.M{"$lte": "2026-03-31"}, q["date"])
	assert.NotContains(t, q, "userId")
}

func TestDocID(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), docID(oid))
	assert.Equal(t, "seo-p1", docID("seo-p1"))
	assert.Equal(t, "", docID(nil))
}

func TestIDFilter(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "acme"}, idFilter("acme"))

	oid := primitive.NewObjectID()
	f := idFilter(oid.Hex())
	assert.Equal(t, bson.M{"$in": bson.A{oid.Hex(), oid}}, f["_id"])
}
