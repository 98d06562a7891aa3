package store

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKeys(t *testing.T) {
	assert.Equal(t, "LIST#42", listPK(42))
	assert.Equal(t, "META", listSK())
	assert.Equal(t, "LISTS", listGSI1PK())
	assert.Equal(t, "LIST#0000000042", listGSI1SK(42))
	assert.Equal(t, "INVITE#ABCD1234", listGSI2PK("ABCD1234"))
	assert.Equal(t, listGSI1SK(7), listGSI2SK(7))
}

func TestListGSI1SK_SortsNumerically(t *testing.T) {
	ids := []int{100, 2, 11, 1}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = listGSI1SK(id)
	}
	sort.Strings(keys)

	assert.Equal(t, []string{listGSI1SK(1), listGSI1SK(2), listGSI1SK(11), listGSI1SK(100)}, keys)
}

func TestTableDefinition(t *testing.T) {
	def := TableDefinition("grocer")

	assert.Equal(t, "grocer", *def.TableName)
	assert.Len(t, def.AttributeDefinitions, 6)
	assert.Len(t, def.KeySchema, 2)
	assert.Equal(t, AttrPK, *def.KeySchema[0].AttributeName)

	indexes := map[string]string{}
	for _, gsi := range def.GlobalSecondaryIndexes {
		indexes[*gsi.IndexName] = *gsi.KeySchema[0].AttributeName
	}
	assert.Equal(t, map[string]string{IndexListIndex: AttrGSI1PK, IndexInviteIndex: AttrGSI2PK}, indexes)
}
