package builder

import "github.com/sicko7947/grocer"

// SampleLists returns a small set of lists for demos and empty installs:
// alternating owned and shared grocery lists, the first one with content.
func SampleLists() []*grocer.List {
	lists := []*grocer.List{
		NewList(1, "Grocery List").
			WithInviteCode("GROCERY1").
			WithTag("Produce", "#4caf50").
			WithTag("Dairy", "#2196f3").
			WithItem("Apples", WithPrice("3.49"), WithTags("Produce")).
			WithItem("Milk", WithPrice("2.99"), WithNotes("2L, semi-skimmed"), WithTags("Dairy"), OnSale()).
			WithItem("Bread").
			MustBuild(),
		NewList(2, "Shared Grocery List").Shared().MustBuild(),
	}

	for id := 11; id <= 81; id += 10 {
		lists = append(lists,
			NewList(id, "Grocery List").MustBuild(),
			NewList(id+1, "Shared Grocery List").Shared().MustBuild(),
		)
	}

	return lists
}
