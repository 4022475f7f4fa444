package optimize

import "io/fs"

// File is one asset moving through the pipeline.
type File struct {
	// Path is the absolute or pipeline-relative location of the file
	Path string
	// Relative is the slash separated path used for matching
	Relative string
	// Contents is nil for entries without content, such as directories
	Contents []byte
	// SourceSize is the size of the contents as read from the source
	SourceSize int64
	Mode       fs.FileMode
}

// IsNull reports whether the file carries no content.
func (f *File) IsNull() bool {
	return f == nil || f.Contents == nil
}

// IsDir reports whether the file is a directory placeholder.
func (f *File) IsDir() bool {
	return f != nil && f.Mode.IsDir()
}
