// Package layout recovers the visual structure of a resume from positioned
// text fragments: lines, named sections, repeated entries and bullet lists.
//
// # Lines
//
// The [LineGrouper] clusters fragments into lines by vertical position and
// orders each line left to right:
//
//	grouper := layout.NewLineGrouper()
//	lines := grouper.Group(fragments).Lines
//
// Malformed fragments (NaN coordinates, negative sizes) are dropped and
// counted in [LineLayout.Dropped]. Neighbouring fragments closer than the
// document's typical character width are merged into one.
//
// # Sections
//
// The [SectionGrouper] walks the lines once and splits them at title lines.
// A title is a single-fragment line, never one of the first two lines, that is
// either bold and upper case or a short capitalised phrase naming a known
// section ("Work Experience", "Skills & Interests"):
//
//	sections := layout.NewSectionGrouper().Group(lines)
//	for _, s := range sections.All() {
//	    fmt.Println(s.Name, len(s.Lines))
//	}
//
// Everything before the first title lands in the [ProfileSection].
//
// # Entries and Descriptions
//
// [DivideSubsections] splits a section into one line range per repeated
// entry (one job, one degree). [DescriptionsStart] finds where an entry's
// header ends and its descriptions begin, and [BulletPoints] turns
// description lines into individual bullet strings.
//
// # Multi-page Documents
//
// The [FurnitureDetector] removes running headers, footers and page numbers
// that repeat in the same margin position across pages, so they do not end
// up inside a section. The [ColumnDetector] reports pages with a column
// gutter; resumes with a sidebar are read across both columns.
//
// # Configuration
//
// Each component can be configured independently:
//
//	config := layout.DefaultLineConfig()
//	config.MergeAdjacent = false
//	grouper := layout.NewLineGrouperWithConfig(config)
package layout
