package alerts

// SourceAdapter detects one category of alert condition against its backing
// data source. Detect returns an empty slice, not an error, when nothing
// matches. Every alert it emits must carry the adapter's own category.
type SourceAdapter interface {
	Category() Category
	Detect() ([]Alert, error)
}
