package bootstrap

func ChecklistSize() int { return len(checklistCatalog) }

func CaptionCatalogSize() int { return len(captionCatalog) }
