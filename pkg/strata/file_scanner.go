package strata

// CorpusScanner enumerates the documents of a layered corpus.
// Implementations must be safe for concurrent use by multiple goroutines.
type CorpusScanner interface {
	// ScanCorpus lists the document files of every layer in layerNames,
	// in the given order, under root.
	ScanCorpus(root string, layerNames []string) (CorpusScanResult, error)
}

// CorpusScanResult contains the results of scanning a corpus root.
type CorpusScanResult struct {
	Root   string
	Layers []LayerFiles
}

// LayerFiles lists the documents found in one layer directory.
type LayerFiles struct {
	Layer string
	// Missing is true when the layer directory does not exist.
	Missing bool
	Files   []DocumentFile
}

// DocumentFile identifies one document on disk.
type DocumentFile struct {
	// Path is the file path as seen by the filesystem provider.
	Path string
	// RelativePath is the slash-separated path relative to the corpus root.
	RelativePath string
	Layer        string
}

// TotalFiles returns the number of documents across all layers.
func (r CorpusScanResult) TotalFiles() int {
	n := 0
	for _, l := range r.Layers {
		n += len(l.Files)
	}
	return n
}
