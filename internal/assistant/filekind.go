package assistant

import (
	"path/filepath"
	"strings"
)

// Kind is the closed set of display groups a file can belong to.
type Kind string

const (
	KindDocument Kind = "document"
	KindTabular  Kind = "tabular"
	KindImage    Kind = "image"
	KindOther    Kind = "other"
)

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindDocument, KindTabular, KindImage, KindOther}
}

// ParseKind maps an external tag onto a Kind. Unknown tags land in KindOther.
func ParseKind(tag string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(tag))) {
	case KindDocument:
		return KindDocument
	case KindTabular:
		return KindTabular
	case KindImage:
		return KindImage
	default:
		return KindOther
	}
}

func (k Kind) Label() string {
	switch k {
	case KindDocument:
		return "Documents"
	case KindTabular:
		return "Tabular Data"
	case KindImage:
		return "Images"
	default:
		return "Other"
	}
}

func (k Kind) Icon() string {
	switch k {
	case KindDocument:
		return "📄"
	case KindTabular:
		return "📊"
	case KindImage:
		return "🖼️"
	default:
		return "📁"
	}
}

// ClassifyFile infers a kind from the filename extension.
func ClassifyFile(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".doc", ".docx", ".txt", ".md", ".markdown", ".rtf", ".odt":
		return KindDocument
	case ".csv", ".tsv", ".xls", ".xlsx", ".ods", ".parquet":
		return KindTabular
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".svg", ".tif", ".tiff":
		return KindImage
	default:
		return KindOther
	}
}

// FileGroup is one sidebar section.
type FileGroup struct {
	Kind  Kind
	Files []string
}

// GroupFiles buckets files by kind, returning every kind in display order even
// when its bucket is empty. Catalog order is kept inside each bucket.
func GroupFiles(files []string, classify func(string) Kind) []FileGroup {
	if classify == nil {
		classify = ClassifyFile
	}
	buckets := make(map[Kind][]string, len(Kinds()))
	for _, f := range files {
		k := ParseKind(string(classify(f)))
		buckets[k] = append(buckets[k], f)
	}

	groups := make([]FileGroup, 0, len(Kinds()))
	for _, k := range Kinds() {
		groups = append(groups, FileGroup{Kind: k, Files: buckets[k]})
	}
	return groups
}
