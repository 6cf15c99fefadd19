package embedding

// Embedder converts free text into a fixed-length numeric vector.
// Implementations may require a preparation phase over the corpus.
// The same embedder (type, model and dimension) must be used at index-build
// time and at query time; a mismatch is a configuration error, not
// something to tolerate silently.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float32, error)
}
