// Package domain models Indian district employment statistics and the
// location types used to resolve a coordinate to a district.
//
// # Data Source
//
// District statistics originate from the MGNREGA open-data resource on
// data.gov.in. The ingest package fetches the resource on a schedule,
// transforms each record into a [District], and replaces the catalog
// wholesale (the upstream resource is a full snapshot, not a delta feed).
//
// # Administrative Naming Conventions
//
// District names in the wild are inconsistent between the statistics
// resource, reverse-geocoding providers, and common usage:
//
//	"Varanasi District"  →  "Varanasi"    (trailing District suffix)
//	"Pune Zilla"         →  "Pune"        (Hindi/Marathi suffix)
//	"District Shimla"    →  "Shimla"      (leading District prefix)
//	"Bengaluru Urban" vs "Bengaluru Rural" vs plain "Bengaluru"
//
// [CleanDistrictName] strips the prefix/suffix noise; the Urban/Rural
// variants are handled by the catalog matcher since only the catalog knows
// which variant it actually carries.
//
// # Operating Domain
//
// Coordinates are only meaningful inside the national bounding box
// [6.0, 37.0] latitude × [68.0, 97.0] longitude. Anything outside is
// rejected before any lookup work happens; the box deliberately overshoots
// the land border because rejecting a valid user is worse than running a
// lookup that finds nothing.
package domain
