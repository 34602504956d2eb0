package bootstrap

import "sitereport/internal/model"

// checklistCatalog is the standard site inspection, in order.
var checklistCatalog = []string{
	"Check safety conditions on site",
	"Check construction progress against the schedule",
	"Inspect the quality of materials used",
	"Assess execution against the technical design",
	"Record problems or non-conformities found",
	"Check site cleanliness and organization",
}

type captionSeed struct {
	text     string
	category string
}

var captionCatalog = []captionSeed{
	{"Render well finished", model.CaptionCategoryFinishing},
	{"Render poorly finished", model.CaptionCategoryFinishing},
	{"Groove with irregular depth", model.CaptionCategoryFinishing},
	{"Crooked groove", model.CaptionCategoryFinishing},
	{"Sanding with flaws, correction required", model.CaptionCategoryFinishing},
	{"Sanding correctly executed", model.CaptionCategoryFinishing},
	{"Sanding done without filling bug holes", model.CaptionCategoryFinishing},
	{"Sanding done without filling the top wedge joint", model.CaptionCategoryFinishing},
	{"Block joints need filling", model.CaptionCategoryFinishing},
	{"Labels need removing", model.CaptionCategoryFinishing},
	{"Wood embedded in concrete needs removing", model.CaptionCategoryFinishing},
	{"Nails need removing", model.CaptionCategoryFinishing},
	{"Sawdust embedded in concrete needs removing", model.CaptionCategoryFinishing},
	{"Excess mortar in block joints needs removing", model.CaptionCategoryFinishing},
	{"Sanding of upper window frame reveals pending", model.CaptionCategoryFinishing},
	{"Drip edge poorly finished", model.CaptionCategoryFinishing},

	{"Inverted slope", model.CaptionCategoryStructural},
	{"Bug hole in slab", model.CaptionCategoryStructural},
	{"Bug hole in column", model.CaptionCategoryStructural},
	{"Bug hole in beam", model.CaptionCategoryStructural},
	{"Top wedge joint poorly finished", model.CaptionCategoryStructural},
	{"Top wedge joint poorly executed", model.CaptionCategoryStructural},
	{"Structure well finished", model.CaptionCategoryStructural},
	{"Structure executed according to design", model.CaptionCategoryStructural},
	{"Concreting failure", model.CaptionCategoryStructural},
	{"Honeycombing in concrete", model.CaptionCategoryStructural},
	{"Tie clamp not executed according to design", model.CaptionCategoryStructural},
	{"Slab executed according to design", model.CaptionCategoryStructural},
	{"Rebar ends need removing", model.CaptionCategoryStructural},
	{"Column executed according to design", model.CaptionCategoryStructural},
	{"Wood embedded in the concrete", model.CaptionCategoryStructural},
	{"Aggregate segregation", model.CaptionCategoryStructural},
	{"Beam executed according to design", model.CaptionCategoryStructural},
	{"Beam executed out of standard", model.CaptionCategoryStructural},

	{"Executed according to design", model.CaptionCategoryGeneral},
	{"Structure with good finish", model.CaptionCategoryGeneral},
	{"No bonding roughcast before render on ledge", model.CaptionCategoryGeneral},
	{"No bonding roughcast before render on low wall", model.CaptionCategoryGeneral},
	{"Wooden screed guide in use, removal required", model.CaptionCategoryGeneral},
	{"Incorrect use of powdered bonding roughcast", model.CaptionCategoryGeneral},

	{"Cutting of hooks pending", model.CaptionCategorySafety},
	{"Anti-corrosion paint treatment of hooks pending", model.CaptionCategorySafety},
}

func checklistItems() []model.ChecklistItem {
	items := make([]model.ChecklistItem, len(checklistCatalog))
	for i, text := range checklistCatalog {
		items[i] = model.ChecklistItem{Text: text, Order: i + 1, Active: true}
	}
	return items
}

// captionBatches splits the catalog into batches of size, all created by creatorID.
func captionBatches(creatorID uint, size int) [][]model.CaptionEntry {
	if size <= 0 {
		size = len(captionCatalog)
	}
	var batches [][]model.CaptionEntry
	for start := 0; start < len(captionCatalog); start += size {
		end := min(start+size, len(captionCatalog))
		batch := make([]model.CaptionEntry, 0, end-start)
		for _, c := range captionCatalog[start:end] {
			batch = append(batch, model.CaptionEntry{
				Text:        c.text,
				Category:    c.category,
				Active:      true,
				CreatedByID: creatorID,
			})
		}
		batches = append(batches, batch)
	}
	return batches
}
