package vitae

import (
	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/pdfsource"
)

// ParseOptions holds configuration for the parse pipeline.
type ParseOptions struct {
	// Component configuration
	lineConfig       layout.LineConfig
	sectionConfig    layout.SectionConfig
	subsectionConfig layout.SubsectionConfig
	furnitureConfig  layout.FurnitureConfig
	readerConfig     pdfsource.Config

	// Pipeline switches
	skipPrivacyFilter bool
	ignoreEmbedded    bool
	keepFurniture     bool
}

// defaultOptions returns the default parse options.
func defaultOptions() ParseOptions {
	return ParseOptions{
		lineConfig:       layout.DefaultLineConfig(),
		sectionConfig:    layout.DefaultSectionConfig(),
		subsectionConfig: layout.DefaultSubsectionConfig(),
		furnitureConfig:  layout.DefaultFurnitureConfig(),
		readerConfig:     pdfsource.DefaultConfig(),
	}
}

// clone creates a deep copy of ParseOptions.
func (o ParseOptions) clone() ParseOptions {
	newOpts := o

	// Deep copy keyword slice
	if o.sectionConfig.Keywords != nil {
		newOpts.sectionConfig.Keywords = append([]string(nil), o.sectionConfig.Keywords...)
	}

	return newOpts
}
