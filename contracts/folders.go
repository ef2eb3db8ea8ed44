package contracts

// SourceFile is one qualifying image inside a folder. SortKey is the
// case-folded filename the resolver ordered by; entries are created
// during the directory scan and never mutated afterwards.
type SourceFile struct {
	Path    string
	SortKey string
}

// ImageFolder describes one input directory after pre-flight
// validation: its ordered image files and the sibling path the PDF
// will be written to.
type ImageFolder struct {
	Files      []SourceFile
	Name       string
	Path       string
	OutputPath string
	TotalSize  int64
}
