// Package model defines the structured output of the resume parser.
//
// # Resume Structure
//
// A [ParseResult] holds a [Resume] and the [PrivacyFlags] found while parsing:
//
//	result.Resume.Profile.Name
//	result.Resume.Educations[0].School
//	result.Privacy.Italy
//
// The repeatable parts of a resume are slices of [Education], [WorkExperience]
// and [Project]. [Skills] always carries exactly [FeaturedSkillCapacity]
// featured slots; unused slots are zero values.
//
// Use [NewResume] to build an empty resume that serialises with empty arrays
// instead of nulls, and [Resume.Normalize] to bring decoded values into the
// same shape.
//
// # Validation
//
// The JSON shape is described by an embedded JSON schema. [Validate] and
// [ValidateJSON] check values against it.
//
// # Geometry
//
// [BBox] is the bounding rectangle used by the layout stages.
package model
