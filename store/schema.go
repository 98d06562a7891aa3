package store

import "fmt"

// DynamoDB schema constants for single-table design
const (
	// Table attributes
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrGSI1PK     = "GSI1PK"
	AttrGSI1SK     = "GSI1SK"
	AttrGSI2PK     = "GSI2PK"
	AttrGSI2SK     = "GSI2SK"
	AttrEntityType = "entity_type"

	// Entity types
	EntityTypeList = "List"

	// Index names
	IndexListIndex   = "GSI1"
	IndexInviteIndex = "GSI2"

	// Every list shares one GSI1 partition so ListLists is a single query
	listCollectionPK = "LISTS"
)

// Key builders for single-table design

// List keys: PK=LIST#{id}, SK=META
func listPK(listID int) string {
	return fmt.Sprintf("LIST#%d", listID)
}

func listSK() string {
	return "META"
}

// GSI1: all lists, sorted by zero padded ID so string order matches numeric order
func listGSI1PK() string {
	return listCollectionPK
}

func listGSI1SK(listID int) string {
	return fmt.Sprintf("LIST#%010d", listID)
}

// GSI2: invite code lookup
func listGSI2PK(code string) string {
	return fmt.Sprintf("INVITE#%s", code)
}

func listGSI2SK(listID int) string {
	return listGSI1SK(listID)
}
