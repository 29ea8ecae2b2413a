package locations

// Config holds configuration for product location extraction.
type Config struct {
	// Workers is the number of parallel extraction workers per collection.
	Workers int `mapstructure:"workers" default:"4"`
	// PrimaryExt is the data object extension scanned for first.
	PrimaryExt string `mapstructure:"primary_ext" default:"cram"`
	// FallbackExt is scanned for when the primary pass yields no products.
	FallbackExt string `mapstructure:"fallback_ext" default:"bam"`
}
